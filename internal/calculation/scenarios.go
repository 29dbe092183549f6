package calculation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rpgo/savings-calculator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// RunScenarios projects every scenario in the configuration concurrently.
// A scenario that fails validation or exceeds the ceiling is recorded on its
// summary; only cancellation or an empty configuration fails the batch.
func (e *Engine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if config == nil || len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}

	engine := e
	if config.MaxMonths > 0 {
		engine = &Engine{MaxMonths: config.MaxMonths, Logger: e.logger(), Now: e.Now}
	}

	summaries := make([]domain.ScenarioSummary, len(config.Scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, sc := range config.Scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summaries[i] = engine.runScenario(i, sc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scenario run cancelled: %w", err)
	}

	comparison := &domain.ScenarioComparison{
		GeneratedAt: engine.now(),
		StartDate:   config.StartDate,
		MaxMonths:   engine.Ceiling(),
		Scenarios:   summaries,
	}
	comparison.Fastest = AnalyzeScenarios(comparison).ScenarioName
	return comparison, nil
}

func (e *Engine) runScenario(index int, sc domain.Scenario) domain.ScenarioSummary {
	name := sc.Name
	if name == "" {
		name = fmt.Sprintf("Scenario %d", index+1)
	}
	summary := domain.ScenarioSummary{Name: name, Input: sc.ProjectionInput}

	result, err := e.Project(sc.ProjectionInput)
	if err != nil {
		e.logger().Infof("scenario %q failed: %v", name, err)
		summary.Error = err.Error()
		summary.ErrorKind = ErrorKind(err)
		return summary
	}
	summary.Result = result
	return summary
}
