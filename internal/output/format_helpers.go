package output

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/domain"
	money "github.com/rpgo/savings-calculator/pkg/decimal"
	"github.com/rpgo/savings-calculator/pkg/dateutil"
)

// FormatCurrency formats an amount as USD with grouping and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string {
	if !finite(amount) {
		return nonFinite(amount)
	}
	return money.NewMoney(amount).Format()
}

// FormatCurrencyWhole formats an amount as USD rounded to whole dollars.
func FormatCurrencyWhole(amount float64) string {
	if !finite(amount) {
		return nonFinite(amount)
	}
	return money.NewMoney(amount).FormatWhole()
}

// FormatPercentage formats an annual percentage with 2 decimals.
func FormatPercentage(percent float64) string { return strconv.FormatFloat(percent, 'f', 2, 64) + "%" }

// FormatAmount renders a raw amount with 2 decimals for machine-readable output.
func FormatAmount(amount float64) string {
	if !finite(amount) {
		return nonFinite(amount)
	}
	return money.NewMoney(amount).String()
}

// FormatRate renders a percentage exactly as entered, with no rounding.
func FormatRate(percent float64) string { return strconv.FormatFloat(percent, 'f', -1, 64) }

// Rejected inputs can still carry an infinite value from a YAML or TOML file.
func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

func nonFinite(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// DurationSentence is the one-line answer for a successful projection.
func DurationSentence(r *domain.ProjectionResult) string {
	return fmt.Sprintf("%s to reach the target", calculation.DescribeDuration(r.MonthsToGoal))
}

// goalMonth returns the goal month label when a start date is known.
func goalMonth(start *time.Time, r *domain.ProjectionResult) string {
	if start == nil || r == nil {
		return ""
	}
	return dateutil.FormatMonth(r.GoalDate(*start))
}

func intToString(i int) string { return strconv.Itoa(i) }
