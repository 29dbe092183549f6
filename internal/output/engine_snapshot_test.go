package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/config"
)

// TestEngineSnapshot produces a deterministic snapshot of core scenario metrics.
func TestEngineSnapshot(t *testing.T) {
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()

	eng := calculation.NewEngine()
	eng.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	res, err := eng.RunScenarios(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run scenarios: %v", err)
	}

	// Trim to stable summary fields only
	type scenario struct {
		Name         string `json:"name"`
		Months       int    `json:"months_to_goal"`
		Years        int    `json:"years"`
		Remaining    int    `json:"remaining_months"`
		FinalBalance string `json:"final_balance"`
		FinalTarget  string `json:"final_target"`
		GoalMonth    string `json:"goal_month"`
	}
	var out struct {
		Fastest   string     `json:"fastest"`
		Scenarios []scenario `json:"scenarios"`
	}
	out.Fastest = res.Fastest
	for _, sc := range res.Scenarios {
		if sc.Result == nil {
			t.Fatalf("scenario %q failed: %s", sc.Name, sc.Error)
		}
		out.Scenarios = append(out.Scenarios, scenario{
			Name:         sc.Name,
			Months:       sc.Result.MonthsToGoal,
			Years:        sc.Result.Years,
			Remaining:    sc.Result.RemainingMonths,
			FinalBalance: FormatAmount(sc.Result.FinalBalance),
			FinalTarget:  FormatAmount(sc.Result.FinalTarget),
			GoalMonth:    goalMonth(res.StartDate, sc.Result),
		})
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	data = append(data, '\n')

	goldenPath := filepath.Join("testdata", "engine_snapshot.golden.json")
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	if update {
		if err := os.WriteFile(goldenPath, data, 0644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if string(golden) != string(data) {
		t.Fatalf("engine snapshot drift; run UPDATE_GOLDEN=1 to accept\n--- have ---\n%s\n--- want ---\n%s", string(data), string(golden))
	}
}

// TestExampleThroughEveryFormatter loads a scenario file, runs it and renders
// it with every registered formatter.
func TestExampleThroughEveryFormatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	parser := config.NewInputParser()
	if err := config.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
		t.Fatalf("save example: %v", err)
	}
	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	res, err := calculation.NewEngine().RunScenarios(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run scenarios: %v", err)
	}
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		out, err := f.Format(res)
		if err != nil {
			t.Fatalf("%s: format error: %v", name, err)
		}
		if len(out) == 0 {
			t.Fatalf("%s: empty output", name)
		}
	}
}
