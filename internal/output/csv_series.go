package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-calculator/internal/domain"
	"github.com/rpgo/savings-calculator/pkg/dateutil"
)

// CSVSeriesExporter writes one row per scenario-month with the balance,
// deposit baseline and target trajectories. Failed scenarios have no rows.
type CSVSeriesExporter struct{}

func (c CSVSeriesExporter) Name() string      { return "series-csv" }
func (c CSVSeriesExporter) Extension() string { return "csv" }

func (c CSVSeriesExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Month", "Balance", "Deposited", "Target"}
	if results.StartDate != nil {
		header = append(header, "Date")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		r := sc.Result
		if r == nil {
			continue
		}
		for i := range r.BalanceSeries {
			row := []string{
				sc.Name,
				intToString(i + 1),
				FormatAmount(r.BalanceSeries[i]),
				FormatAmount(r.BaselineSeries[i]),
				FormatAmount(r.TargetSeries[i]),
			}
			if results.StartDate != nil {
				row = append(row, dateutil.AddMonths(*results.StartDate, i+1).Format(dateutil.MonthLayout))
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
