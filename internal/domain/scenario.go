package domain

import "time"

// Scenario is a named projection input as it appears in a scenario file.
type Scenario struct {
	Name            string `json:"name" yaml:"name" toml:"name"`
	ProjectionInput `yaml:",inline"`
}

// Configuration is the top-level structure of a scenario file.
type Configuration struct {
	// MaxMonths overrides the engine iteration ceiling when positive.
	MaxMonths int        `json:"max_months,omitempty" yaml:"max_months,omitempty" toml:"max_months,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty" toml:"start_date,omitempty"`
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios" toml:"scenarios"`
}

// Error kinds recorded on a ScenarioSummary.
const (
	ErrorKindInvalidInput   = "invalid_input"
	ErrorKindNonTerminating = "non_terminating"
)

// ScenarioSummary holds the outcome of one scenario in a batch. Exactly one
// of Result and Error is set.
type ScenarioSummary struct {
	Name      string            `json:"name"`
	Input     ProjectionInput   `json:"input"`
	Result    *ProjectionResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	ErrorKind string            `json:"error_kind,omitempty"`
}

// Succeeded reports whether the scenario produced a result.
func (s ScenarioSummary) Succeeded() bool {
	return s.Result != nil
}

// ScenarioComparison collects the results of a batch run.
type ScenarioComparison struct {
	GeneratedAt time.Time         `json:"generated_at"`
	StartDate   *time.Time        `json:"start_date,omitempty"`
	MaxMonths   int               `json:"max_months"`
	Scenarios   []ScenarioSummary `json:"scenarios"`
	Fastest     string            `json:"fastest,omitempty"`
}
