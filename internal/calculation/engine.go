package calculation

import (
	"math"
	"time"

	"github.com/rpgo/savings-calculator/internal/domain"
)

// DefaultMaxMonths is the iteration ceiling (100 years) used when none is configured.
const DefaultMaxMonths = 1200

// Engine runs savings projections. It holds configuration only; a single
// Engine may be shared by concurrent callers.
type Engine struct {
	// MaxMonths bounds the simulation. Values <= 0 mean DefaultMaxMonths.
	MaxMonths int
	Logger    Logger
	// Now stamps batch results. Nil means time.Now.
	Now func() time.Time
}

// NewEngine creates an engine with the default iteration ceiling.
func NewEngine() *Engine {
	return &Engine{
		MaxMonths: DefaultMaxMonths,
		Logger:    NopLogger{},
	}
}

// NewEngineWithMaxMonths creates an engine with a custom iteration ceiling.
func NewEngineWithMaxMonths(maxMonths int) *Engine {
	e := NewEngine()
	e.MaxMonths = maxMonths
	return e
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Ceiling returns the iteration limit, DefaultMaxMonths when unset.
func (e *Engine) Ceiling() int {
	if e.MaxMonths <= 0 {
		return DefaultMaxMonths
	}
	return e.MaxMonths
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Project simulates month-by-month growth until the balance reaches the
// (possibly inflation-adjusted) target. Each month the deposit is added
// before interest is applied.
func (e *Engine) Project(in domain.ProjectionInput) (*domain.ProjectionResult, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	maxMonths := e.Ceiling()
	monthlyRate := MonthlyRate(in.AnnualInterestRate)
	monthlyInflation := MonthlyRate(in.AnnualInflationRate)
	adjust := in.InflationAdjusted()

	balance := in.InitialBalance
	target := in.Target()
	deposit := in.MonthlyContribution

	// Series capacity is a guess; the ceiling bounds actual growth.
	guess := estimateMonths(in, maxMonths)
	balances := make([]float64, 0, guess)
	baseline := make([]float64, 0, guess)
	targets := make([]float64, 0, guess)

	month := 0
	for balance < target {
		if month >= maxMonths {
			e.logger().Warnf("projection stopped at ceiling: %d months, balance %.2f, target %.2f", maxMonths, balance, target)
			return nil, &NonTerminatingError{MaxMonths: maxMonths, Month: month, Balance: balance, Target: target}
		}
		nextBalance := (balance + deposit) * (1 + monthlyRate)
		nextTarget := target
		if adjust {
			nextTarget = target * (1 + monthlyInflation)
		}
		month++
		if !finite(nextBalance) || !finite(nextTarget) {
			e.logger().Warnf("projection overflowed in month %d: balance %.2f, target %.2f", month, balance, target)
			return nil, &NonTerminatingError{MaxMonths: maxMonths, Month: month, Balance: balance, Target: target, Overflow: true}
		}
		balance, target = nextBalance, nextTarget
		balances = append(balances, balance)
		baseline = append(baseline, deposit*float64(month))
		targets = append(targets, target)
	}

	years, remaining := SplitMonths(month)
	contributed := in.InitialBalance + deposit*float64(month)
	result := &domain.ProjectionResult{
		MonthsToGoal:     month,
		Years:            years,
		RemainingMonths:  remaining,
		TargetAmount:     in.Target(),
		FinalTarget:      target,
		FinalBalance:     balance,
		TotalContributed: contributed,
		InterestEarned:   balance - contributed,
		BalanceSeries:    balances,
		BaselineSeries:   baseline,
		TargetSeries:     targets,
	}

	e.logger().Debugf("projection reached %.2f in %d months (%s)", target, month, DescribeDuration(month))
	return result, nil
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// MonthlyRate converts an annual percentage to a monthly fraction.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / 12
}

// estimateMonths sizes the series slices without affecting the result.
func estimateMonths(in domain.ProjectionInput, maxMonths int) int {
	n := (in.Target()-in.InitialBalance)/in.MonthlyContribution + 1
	if n < 1 {
		return 0
	}
	if n > float64(maxMonths) {
		return maxMonths
	}
	return int(n)
}

// Logger receives engine diagnostics. The zero Engine logs nothing.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
