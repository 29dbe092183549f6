package calculation

import (
	"math"
	"strings"

	"github.com/rpgo/savings-calculator/internal/domain"
	money "github.com/rpgo/savings-calculator/pkg/decimal"
)

// Field names used in InputError.
const (
	FieldMonthlyContribution = "monthly_contribution"
	FieldAnnualInterestRate  = "annual_interest_rate"
	FieldAnnualInflationRate = "annual_inflation_rate"
	FieldInitialBalance      = "initial_balance"
	FieldTargetAmount        = "target_amount"
)

// RawInput holds unparsed candidates as they arrive from a form, a query
// string or command-line flags. Blank optional fields are treated as absent.
type RawInput struct {
	MonthlyContribution string
	AnnualInterestRate  string
	AnnualInflationRate string
	InitialBalance      string
	TargetAmount        string
}

// ParseInput converts raw candidates to a validated ProjectionInput.
func ParseInput(raw RawInput) (domain.ProjectionInput, error) {
	var in domain.ProjectionInput
	var err error

	if in.MonthlyContribution, err = parseRequired(FieldMonthlyContribution, raw.MonthlyContribution); err != nil {
		return domain.ProjectionInput{}, err
	}
	if in.AnnualInterestRate, err = parseRequired(FieldAnnualInterestRate, raw.AnnualInterestRate); err != nil {
		return domain.ProjectionInput{}, err
	}
	if in.AnnualInflationRate, _, err = parseOptional(FieldAnnualInflationRate, raw.AnnualInflationRate); err != nil {
		return domain.ProjectionInput{}, err
	}
	if in.InitialBalance, _, err = parseOptional(FieldInitialBalance, raw.InitialBalance); err != nil {
		return domain.ProjectionInput{}, err
	}
	target, ok, err := parseOptional(FieldTargetAmount, raw.TargetAmount)
	if err != nil {
		return domain.ProjectionInput{}, err
	}
	if ok {
		in.TargetAmount = &target
	}

	if err := ValidateInput(in); err != nil {
		return domain.ProjectionInput{}, err
	}
	return in, nil
}

func parseRequired(field, raw string) (float64, error) {
	v, ok, err := parseOptional(field, raw)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &InputError{Field: field, Reason: "is required"}
	}
	return v, nil
}

func parseOptional(field, raw string) (float64, bool, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false, nil
	}
	d, err := money.NewMoneyFromString(s)
	if err != nil {
		return 0, false, &InputError{Field: field, Value: raw, Reason: "is not a number"}
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false, &InputError{Field: field, Value: raw, Reason: "is not finite"}
	}
	return f, true, nil
}

// ValidateInput rejects parameter sets that would make the simulation
// undefined or non-terminating.
func ValidateInput(in domain.ProjectionInput) error {
	checks := []struct {
		field string
		value float64
	}{
		{FieldMonthlyContribution, in.MonthlyContribution},
		{FieldAnnualInterestRate, in.AnnualInterestRate},
		{FieldAnnualInflationRate, in.AnnualInflationRate},
		{FieldInitialBalance, in.InitialBalance},
	}
	if in.TargetAmount != nil {
		checks = append(checks, struct {
			field string
			value float64
		}{FieldTargetAmount, *in.TargetAmount})
	}
	for _, c := range checks {
		if math.IsInf(c.value, 0) || math.IsNaN(c.value) {
			return &InputError{Field: c.field, Reason: "must be a finite number"}
		}
	}

	if in.MonthlyContribution <= 0 {
		return &InputError{Field: FieldMonthlyContribution, Reason: "must be positive"}
	}
	// A zero rate is rejected rather than simulated; the projection assumes growth.
	if in.AnnualInterestRate <= 0 {
		return &InputError{Field: FieldAnnualInterestRate, Reason: "must be positive"}
	}
	if in.AnnualInflationRate < 0 {
		return &InputError{Field: FieldAnnualInflationRate, Reason: "cannot be negative"}
	}
	if in.InitialBalance < 0 {
		return &InputError{Field: FieldInitialBalance, Reason: "cannot be negative"}
	}
	if in.TargetAmount != nil && *in.TargetAmount <= 0 {
		return &InputError{Field: FieldTargetAmount, Reason: "must be positive"}
	}
	return nil
}
