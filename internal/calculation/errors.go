package calculation

import (
	"errors"
	"fmt"

	"github.com/rpgo/savings-calculator/internal/domain"
)

var (
	// ErrInvalidInput is returned when a parameter set cannot be simulated.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNonTerminating is returned when the target is not reached within the iteration ceiling.
	ErrNonTerminating = errors.New("goal not reached within iteration ceiling")
)

// InputError describes which field failed validation and why.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s (got %q)", ErrInvalidInput, e.Field, e.Reason, e.Value)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// NonTerminatingError carries the last finite simulation state, either at the
// ceiling or, when Overflow is set, at the month before a value left the
// float64 range.
type NonTerminatingError struct {
	MaxMonths int
	Month     int
	Balance   float64
	Target    float64
	Overflow  bool
}

func (e *NonTerminatingError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("%s: values overflowed in month %d (balance %.2f, target %.2f)",
			ErrNonTerminating, e.Month, e.Balance, e.Target)
	}
	return fmt.Sprintf("%s: balance %.2f still below target %.2f after %d months",
		ErrNonTerminating, e.Balance, e.Target, e.MaxMonths)
}

func (e *NonTerminatingError) Unwrap() error { return ErrNonTerminating }

// ErrorKind maps an engine error to the kind recorded on scenario summaries.
// Unknown errors map to the empty string.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return domain.ErrorKindInvalidInput
	case errors.Is(err, ErrNonTerminating):
		return domain.ErrorKindNonTerminating
	default:
		return ""
	}
}
