package calculation

import (
	"testing"

	"github.com/rpgo/savings-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func summary(name string, months int, interest float64) domain.ScenarioSummary {
	return domain.ScenarioSummary{Name: name, Result: &domain.ProjectionResult{MonthsToGoal: months, InterestEarned: interest}}
}

func TestAnalyzeScenarios_SelectsFewestMonths(t *testing.T) {
	comparison := &domain.ScenarioComparison{Scenarios: []domain.ScenarioSummary{
		summary("Slow", 400, 100),
		summary("Quick", 180, 50),
		{Name: "Failed", Error: "invalid input", ErrorKind: domain.ErrorKindInvalidInput},
		summary("Middle", 250, 70),
	}}

	rec := AnalyzeScenarios(comparison)
	assert.Equal(t, "Quick", rec.ScenarioName)
	assert.Equal(t, 180, rec.MonthsToGoal)
	assert.Equal(t, 220, rec.MonthsSaved)
	assert.Equal(t, 50.0, rec.InterestEarned)
}

func TestAnalyzeScenarios_TieBrokenByName(t *testing.T) {
	comparison := &domain.ScenarioComparison{Scenarios: []domain.ScenarioSummary{
		summary("Beta", 120, 0),
		summary("Alpha", 120, 0),
	}}
	assert.Equal(t, "Alpha", AnalyzeScenarios(comparison).ScenarioName)
}

func TestAnalyzeScenarios_NoSuccess(t *testing.T) {
	assert.Equal(t, Recommendation{}, AnalyzeScenarios(nil))
	assert.Equal(t, Recommendation{}, AnalyzeScenarios(&domain.ScenarioComparison{Scenarios: []domain.ScenarioSummary{
		{Name: "Failed", Error: "x"},
	}}))
}
