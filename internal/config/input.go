package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// MaxScenarios bounds the number of scenarios in one file.
const MaxScenarios = 100

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario configuration from a YAML or TOML file.
// The format is chosen by extension; anything other than .toml is read as YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config *domain.Configuration
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		config, err = ip.ParseTOML(data)
	} else {
		config, err = ip.ParseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// ParseYAML decodes a YAML scenario document without validating it.
func (ip *InputParser) ParseYAML(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &config, nil
}

// ParseTOML decodes a TOML scenario document without validating it.
func (ip *InputParser) ParseTOML(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	md, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse TOML: unknown key %q", undecoded[0].String())
	}
	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. Individual
// scenario inputs are checked with the engine's validator so that a file is
// rejected for the same reasons a single projection would be.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is empty")
	}
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	if len(config.Scenarios) > MaxScenarios {
		return fmt.Errorf("too many scenarios: %d (max %d)", len(config.Scenarios), MaxScenarios)
	}
	if config.MaxMonths < 0 {
		return fmt.Errorf("max_months cannot be negative")
	}

	seen := make(map[string]int, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if prev, dup := seen[scenario.Name]; dup {
			return fmt.Errorf("scenario %d: duplicate name %q (first used by scenario %d)", i, scenario.Name, prev)
		}
		seen[scenario.Name] = i
	}
	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	if err := calculation.ValidateInput(scenario.ProjectionInput); err != nil {
		return fmt.Errorf("%s: %w", scenario.Name, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	halfMillion := 500000.0

	return &domain.Configuration{
		MaxMonths: calculation.DefaultMaxMonths,
		StartDate: &start,
		Scenarios: []domain.Scenario{
			{
				Name: "Steady Saver",
				ProjectionInput: domain.ProjectionInput{
					MonthlyContribution: 1000,
					AnnualInterestRate:  7,
				},
			},
			{
				Name: "Inflation Aware",
				ProjectionInput: domain.ProjectionInput{
					MonthlyContribution: 1000,
					AnnualInterestRate:  7,
					AnnualInflationRate: 3,
				},
			},
			{
				Name: "Head Start",
				ProjectionInput: domain.ProjectionInput{
					MonthlyContribution: 750,
					AnnualInterestRate:  6,
					AnnualInflationRate: 2.5,
					InitialBalance:      40000,
					TargetAmount:        &halfMillion,
				},
			},
		},
	}
}

// SaveConfiguration writes a configuration as YAML, or TOML when the file
// name ends in .toml.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(config); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}
