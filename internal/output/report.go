package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rpgo/savings-calculator/internal/domain"
)

// ResolveFormatter looks up a formatter and enriches the error with the
// available names and aliases.
func ResolveFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport renders results in the named format and writes them to w.
func GenerateReport(w io.Writer, results *domain.ScenarioComparison, format string) error {
	if results == nil {
		return fmt.Errorf("no results to report")
	}
	f, err := ResolveFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFormatted runs a formatter and writes the output to filename. An empty
// filename selects a timestamped name with the formatter's extension.
func WriteFormatted(f Formatter, results *domain.ScenarioComparison, filename string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = DefaultReportFilename(f, results.GeneratedAt)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// DefaultReportFilename returns savings_report_<timestamp>.<ext>.
func DefaultReportFilename(f Formatter, at time.Time) string {
	if at.IsZero() {
		at = time.Now()
	}
	return fmt.Sprintf("savings_report_%s.%s", at.Format("20060102_150405"), f.Extension())
}
