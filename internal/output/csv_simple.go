package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "MonthlyContribution", "AnnualInterestRate", "AnnualInflationRate", "InitialBalance", "TargetAmount", "MonthsToGoal", "Years", "RemainingMonths", "FinalTarget", "FinalBalance", "TotalContributed", "InterestEarned", "GoalMonth", "Error"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		in := sc.Input
		row := []string{
			sc.Name,
			FormatAmount(in.MonthlyContribution),
			FormatRate(in.AnnualInterestRate),
			FormatRate(in.AnnualInflationRate),
			FormatAmount(in.InitialBalance),
			FormatAmount(in.Target()),
		}
		if r := sc.Result; r != nil {
			row = append(row,
				intToString(r.MonthsToGoal),
				intToString(r.Years),
				intToString(r.RemainingMonths),
				FormatAmount(r.FinalTarget),
				FormatAmount(r.FinalBalance),
				FormatAmount(r.TotalContributed),
				FormatAmount(r.InterestEarned),
				goalMonth(results.StartDate, r),
				"",
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "", sc.Error)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
