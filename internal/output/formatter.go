package output

import (
	"errors"
	"sort"
	"strings"

	"github.com/rpgo/savings-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned for formatter names that are not registered.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(results *domain.ScenarioComparison) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when the report is written to disk.
	Extension() string
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	TextFormatter{},
	JSONFormatter{},
	CSVSummarizer{},
	CSVSeriesExporter{},
	HTMLFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"pretty":      "console",
	"table":       "console",
	"txt":         "text",
	"plain":       "text",
	"csv-summary": "csv",
	"csv-series":  "series-csv",
	"monthly-csv": "series-csv",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedScenarios returns the scenarios ordered by name.
func sortedScenarios(results *domain.ScenarioComparison) []domain.ScenarioSummary {
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios
}
