package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/domain"
	"github.com/rpgo/savings-calculator/internal/output"
	"github.com/rpgo/savings-calculator/pkg/dateutil"
)

type projectFlags struct {
	deposit   string
	rate      string
	inflation string
	initial   string
	target    string
	maxMonths int
	format    string
	start     string
	output    string
}

func (a *app) newProjectCmd() *cobra.Command {
	var f projectFlags
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the months needed to reach a savings target",
		Example: "  savings project --deposit 1000 --rate 12\n" +
			"  savings project --deposit 500 --rate 7 --inflation 2.5 --target 250000 --start 2026-01 --format html --output plan.html",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runProject(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.deposit, "deposit", "d", "", "Monthly contribution (required)")
	fl.StringVarP(&f.rate, "rate", "r", "", "Annual interest rate in percent, e.g. 7 (required)")
	fl.StringVarP(&f.inflation, "inflation", "i", "", "Annual inflation rate in percent applied to the target")
	fl.StringVar(&f.initial, "initial", "", "Starting balance")
	fl.StringVarP(&f.target, "target", "t", "", "Target amount (default 1000000)")
	fl.IntVar(&f.maxMonths, "max-months", 0, "Iteration ceiling in months (default from settings)")
	fl.StringVarP(&f.format, "format", "f", "", "Output format (see 'savings formats')")
	fl.StringVar(&f.start, "start", "", "Start month YYYY-MM, enables goal dates")
	fl.StringVarP(&f.output, "output", "o", "", "Write the report to a file instead of stdout")
	_ = cmd.MarkFlagRequired("deposit")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func (a *app) runProject(cmd *cobra.Command, f projectFlags) error {
	if f.maxMonths < 0 {
		return fmt.Errorf("--max-months cannot be negative")
	}
	start, err := parseStartFlag(f.start)
	if err != nil {
		return err
	}
	in, err := calculation.ParseInput(calculation.RawInput{
		MonthlyContribution: f.deposit,
		AnnualInterestRate:  f.rate,
		AnnualInflationRate: f.inflation,
		InitialBalance:      f.initial,
		TargetAmount:        f.target,
	})
	if err != nil {
		return err
	}

	svc, cleanup := a.newService(cmd.Context(), f.maxMonths)
	defer cleanup()

	p, err := svc.Project(cmd.Context(), in)
	if err != nil {
		var nt *calculation.NonTerminatingError
		if errors.As(err, &nt) && nt.Overflow {
			return fmt.Errorf("projection overflowed in month %d; the amounts are too large to simulate", nt.Month)
		}
		if errors.As(err, &nt) {
			return fmt.Errorf("target not reached within %d months (balance %s, target %s); raise the deposit or rate, or lower inflation",
				nt.MaxMonths, output.FormatCurrency(nt.Balance), output.FormatCurrency(nt.Target))
		}
		return err
	}

	cmp := &domain.ScenarioComparison{
		GeneratedAt: time.Now(),
		StartDate:   start,
		MaxMonths:   svc.MaxMonths(),
		Scenarios:   []domain.ScenarioSummary{{Name: "Projection", Input: in, Result: p.Result}},
		Fastest:     "Projection",
	}
	return a.writeReport(cmp, a.reportFormat(f.format), f.output)
}

// writeReport prints to stdout, or to a file when path is set.
func (a *app) writeReport(cmp *domain.ScenarioComparison, format, path string) error {
	if path == "" {
		return output.GenerateReport(a.out, cmp, format)
	}
	formatter, err := output.ResolveFormatter(format)
	if err != nil {
		return err
	}
	name, err := output.WriteFormatted(formatter, cmp, path)
	if err != nil {
		return err
	}
	a.printf("Report written to %s\n", name)
	return nil
}

func parseStartFlag(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	start, err := dateutil.ParseMonth(raw)
	if err != nil {
		return nil, fmt.Errorf("--start: %w", err)
	}
	return &start, nil
}
