package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/domain"
)

// TextFormatter prints the plain summary sentence for each scenario.
type TextFormatter struct{}

func (t TextFormatter) Name() string      { return "text" }
func (t TextFormatter) Extension() string { return "txt" }

func (t TextFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	scenarios := sortedScenarios(results)
	single := len(scenarios) == 1
	for _, sc := range scenarios {
		prefix := ""
		if !single {
			prefix = sc.Name + ": "
		}
		if !sc.Succeeded() {
			fmt.Fprintf(&buf, "%sError: %s\n", prefix, sc.Error)
			continue
		}
		r := sc.Result
		fmt.Fprintf(&buf, "%s%s\n", prefix, DurationSentence(r))
		if goal := goalMonth(results.StartDate, r); goal != "" {
			fmt.Fprintf(&buf, "  goal reached in %s\n", goal)
		}
		fmt.Fprintf(&buf, "  final balance %s, contributed %s, interest %s\n",
			FormatCurrency(r.FinalBalance), FormatCurrency(r.TotalContributed), FormatCurrency(r.InterestEarned))
		if sc.Input.InflationAdjusted() {
			fmt.Fprintf(&buf, "  target grew from %s to %s at %s inflation\n",
				FormatCurrency(r.TargetAmount), FormatCurrency(r.FinalTarget), FormatPercentage(sc.Input.AnnualInflationRate))
		}
	}
	if !single {
		if rec := calculation.AnalyzeScenarios(results); rec.ScenarioName != "" {
			fmt.Fprintf(&buf, "\nFastest: %s\n", rec.ScenarioName)
		}
	}
	return buf.Bytes(), nil
}
