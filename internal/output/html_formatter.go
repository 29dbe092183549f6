package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a Chart.js line chart
// per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":     FormatCurrency,
	"currW":    FormatCurrencyWhole,
	"pct":      FormatPercentage,
	"duration": calculation.DescribeDuration,
	"add":      func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type htmlScenario struct {
	domain.ScenarioSummary
	GoalMonth string
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	scenarios := make([]htmlScenario, 0, len(results.Scenarios))
	for _, sc := range sortedScenarios(results) {
		scenarios = append(scenarios, htmlScenario{ScenarioSummary: sc, GoalMonth: goalMonth(results.StartDate, sc.Result)})
	}
	data := struct {
		*domain.ScenarioComparison
		Items          []htmlScenario
		Recommendation calculation.Recommendation
	}{results, scenarios, calculation.AnalyzeScenarios(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
