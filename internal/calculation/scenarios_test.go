package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/rpgo/savings-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "Steady", ProjectionInput: domain.ProjectionInput{MonthlyContribution: 1000, AnnualInterestRate: 7}},
			{Name: "Aggressive", ProjectionInput: domain.ProjectionInput{MonthlyContribution: 2500, AnnualInterestRate: 9}},
			{Name: "Broken", ProjectionInput: domain.ProjectionInput{MonthlyContribution: 0, AnnualInterestRate: 7}},
			{Name: "Runaway", ProjectionInput: domain.ProjectionInput{MonthlyContribution: 100, AnnualInterestRate: 1, AnnualInflationRate: 50}},
		},
	}
}

func TestRunScenarios(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine()
	engine.Now = func() time.Time { return fixed }

	comparison, err := engine.RunScenarios(context.Background(), testConfiguration())
	require.NoError(t, err)
	require.Len(t, comparison.Scenarios, 4)

	assert.Equal(t, fixed, comparison.GeneratedAt)
	assert.Equal(t, DefaultMaxMonths, comparison.MaxMonths)

	byName := map[string]domain.ScenarioSummary{}
	for _, sc := range comparison.Scenarios {
		byName[sc.Name] = sc
	}

	assert.True(t, byName["Steady"].Succeeded())
	assert.True(t, byName["Aggressive"].Succeeded())
	assert.False(t, byName["Broken"].Succeeded())
	assert.Equal(t, domain.ErrorKindInvalidInput, byName["Broken"].ErrorKind)
	assert.Equal(t, domain.ErrorKindNonTerminating, byName["Runaway"].ErrorKind)
	assert.NotEmpty(t, byName["Runaway"].Error)

	assert.Equal(t, "Aggressive", comparison.Fastest)
}

func TestRunScenarios_ClockCarriesToOverriddenCeiling(t *testing.T) {
	fixed := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine()
	engine.Now = func() time.Time { return fixed }

	cfg := testConfiguration()
	cfg.MaxMonths = 600
	comparison, err := engine.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, fixed, comparison.GeneratedAt)
	assert.Equal(t, 600, comparison.MaxMonths)
}

func TestRunScenarios_OverflowRecordedAsNonTerminating(t *testing.T) {
	cfg := &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "Huge", ProjectionInput: domain.ProjectionInput{MonthlyContribution: 1.79e308, AnnualInterestRate: 12}},
	}}
	comparison, err := NewEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	sc := comparison.Scenarios[0]
	assert.Nil(t, sc.Result)
	assert.Equal(t, domain.ErrorKindNonTerminating, sc.ErrorKind)
	assert.Contains(t, sc.Error, "overflowed")
	assert.Empty(t, comparison.Fastest)
}

func TestRunScenarios_PreservesOrderAndNames(t *testing.T) {
	cfg := &domain.Configuration{Scenarios: []domain.Scenario{
		{ProjectionInput: domain.ProjectionInput{MonthlyContribution: 100, AnnualInterestRate: 5, TargetAmount: target(5000)}},
		{Name: "Second", ProjectionInput: domain.ProjectionInput{MonthlyContribution: 200, AnnualInterestRate: 5, TargetAmount: target(5000)}},
	}}
	comparison, err := NewEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "Scenario 1", comparison.Scenarios[0].Name)
	assert.Equal(t, "Second", comparison.Scenarios[1].Name)
}

func TestRunScenarios_ConfigCeiling(t *testing.T) {
	cfg := &domain.Configuration{
		MaxMonths: 12,
		Scenarios: []domain.Scenario{{Name: "Slow", ProjectionInput: domain.ProjectionInput{MonthlyContribution: 1000, AnnualInterestRate: 12}}},
	}
	comparison, err := NewEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 12, comparison.MaxMonths)
	assert.Equal(t, domain.ErrorKindNonTerminating, comparison.Scenarios[0].ErrorKind)
	assert.Empty(t, comparison.Fastest)
}

func TestRunScenarios_Empty(t *testing.T) {
	_, err := NewEngine().RunScenarios(context.Background(), &domain.Configuration{})
	assert.Error(t, err)

	_, err = NewEngine().RunScenarios(context.Background(), nil)
	assert.Error(t, err)
}

func TestRunScenarios_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().RunScenarios(ctx, testConfiguration())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
