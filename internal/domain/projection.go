package domain

import (
	"time"

	"github.com/rpgo/savings-calculator/pkg/dateutil"
)

// DefaultTargetAmount is the goal used when a caller does not supply one.
const DefaultTargetAmount = 1000000.0

// ProjectionInput is a request to the projection engine. Rates are annual
// percentages (7.0 means 7%).
type ProjectionInput struct {
	MonthlyContribution float64  `json:"monthly_contribution" yaml:"monthly_contribution" toml:"monthly_contribution"`
	AnnualInterestRate  float64  `json:"annual_interest_rate" yaml:"annual_interest_rate" toml:"annual_interest_rate"`
	AnnualInflationRate float64  `json:"annual_inflation_rate,omitempty" yaml:"annual_inflation_rate,omitempty" toml:"annual_inflation_rate,omitempty"`
	InitialBalance      float64  `json:"initial_balance,omitempty" yaml:"initial_balance,omitempty" toml:"initial_balance,omitempty"`
	TargetAmount        *float64 `json:"target_amount,omitempty" yaml:"target_amount,omitempty" toml:"target_amount,omitempty"`
}

// Target returns the supplied target or DefaultTargetAmount.
func (in ProjectionInput) Target() float64 {
	if in.TargetAmount == nil {
		return DefaultTargetAmount
	}
	return *in.TargetAmount
}

// InflationAdjusted reports whether the target grows over time.
func (in ProjectionInput) InflationAdjusted() bool {
	return in.AnnualInflationRate > 0
}

// WithTarget returns a copy of the input with an explicit target amount.
func (in ProjectionInput) WithTarget(target float64) ProjectionInput {
	in.TargetAmount = &target
	return in
}

// ProjectionResult is the outcome of a successful projection. The three
// series are parallel: index i holds the values after month i+1.
type ProjectionResult struct {
	MonthsToGoal    int `json:"months_to_goal"`
	Years           int `json:"years"`
	RemainingMonths int `json:"remaining_months"`

	TargetAmount     float64 `json:"target_amount"`
	FinalTarget      float64 `json:"final_target"`
	FinalBalance     float64 `json:"final_balance"`
	TotalContributed float64 `json:"total_contributed"`
	InterestEarned   float64 `json:"interest_earned"`

	BalanceSeries  []float64 `json:"balance_series"`
	BaselineSeries []float64 `json:"baseline_series"`
	TargetSeries   []float64 `json:"target_series"`
}

// GoalDate returns the calendar month in which the goal is reached when
// saving starts in the month of start.
func (r *ProjectionResult) GoalDate(start time.Time) time.Time {
	return dateutil.AddMonths(start, r.MonthsToGoal)
}
