package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/domain"
)

var (
	colorText   = lipgloss.Color("#FFFCF0")
	colorDim    = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorBlue   = lipgloss.Color("#4385BE")
	colorRed    = lipgloss.Color("#D14D41")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Width(60).
			Align(lipgloss.Center)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	numericStyle = cellStyle.Align(lipgloss.Right)
	balanceStyle = lipgloss.NewStyle().Foreground(colorGreen)
	baseStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// sparklineWidth is the number of points drawn per series.
const sparklineWidth = 48

// ConsoleFormatter renders a styled terminal summary with a sparkline per scenario.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SAVINGS GOAL PROJECTION"))
	b.WriteString("\n\n")

	scenarios := sortedScenarios(results)
	withGoal := results.StartDate != nil

	headers := []string{"Scenario", "Time to Goal", "Months", "Target", "Final Balance", "Contributed", "Interest"}
	if withGoal {
		headers = append(headers, "Goal Month")
	}
	rows := make([][]string, 0, len(scenarios))
	for _, sc := range scenarios {
		if !sc.Succeeded() {
			row := []string{sc.Name, errorStyle.Render(failureLabel(sc.ErrorKind)), "-", FormatCurrencyWhole(sc.Input.Target()), "-", "-", "-"}
			if withGoal {
				row = append(row, "-")
			}
			rows = append(rows, row)
			continue
		}
		r := sc.Result
		row := []string{
			sc.Name,
			calculation.DescribeDuration(r.MonthsToGoal),
			intToString(r.MonthsToGoal),
			FormatCurrencyWhole(r.FinalTarget),
			FormatCurrencyWhole(r.FinalBalance),
			FormatCurrencyWhole(r.TotalContributed),
			FormatCurrencyWhole(r.InterestEarned),
		}
		if withGoal {
			row = append(row, goalMonth(results.StartDate, r))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numericStyle
			}
		})
	b.WriteString(t.String())
	b.WriteString("\n")

	for _, sc := range scenarios {
		if !sc.Succeeded() {
			fmt.Fprintf(&b, "\n%s %s\n", sc.Name, errorStyle.Render(sc.Error))
			continue
		}
		r := sc.Result
		if r.MonthsToGoal == 0 {
			fmt.Fprintf(&b, "\n%s %s\n", sc.Name, mutedStyle.Render("starts at or above the target"))
			continue
		}
		scale := seriesMax(r.BalanceSeries, r.TargetSeries)
		fmt.Fprintf(&b, "\n%s\n", sc.Name)
		fmt.Fprintf(&b, "  balance   %s\n", balanceStyle.Render(RenderSparkline(downsample(r.BalanceSeries, sparklineWidth), scale)))
		fmt.Fprintf(&b, "  deposited %s\n", baseStyle.Render(RenderSparkline(downsample(r.BaselineSeries, sparklineWidth), scale)))
	}

	rec := calculation.AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		b.WriteString("\n")
		line := fmt.Sprintf("Fastest: %s (%s)", rec.ScenarioName, calculation.DescribeDuration(rec.MonthsToGoal))
		if rec.MonthsSaved > 0 {
			line += fmt.Sprintf(", %d months sooner than the slowest", rec.MonthsSaved)
		}
		b.WriteString(headerStyle.UnsetPadding().Render(line))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// RenderSparkline draws values as unicode blocks scaled against top.
func RenderSparkline(values []float64, top float64) string {
	if len(values) == 0 {
		return ""
	}
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	if top <= 0 {
		top = 1
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(v / top * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// downsample picks n evenly spaced points, always keeping the last one.
func downsample(values []float64, n int) []float64 {
	if len(values) <= n || n <= 1 {
		return values
	}
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	return out
}

func seriesMax(series ...[]float64) float64 {
	var top float64
	for _, s := range series {
		for _, v := range s {
			top = max(top, v)
		}
	}
	return top
}

func failureLabel(kind string) string {
	switch kind {
	case domain.ErrorKindNonTerminating:
		return "not reached"
	case domain.ErrorKindInvalidInput:
		return "invalid input"
	default:
		return "failed"
	}
}
