package calculation

import (
	"sort"

	"github.com/rpgo/savings-calculator/internal/domain"
)

// Recommendation identifies the scenario that reaches its goal soonest.
type Recommendation struct {
	ScenarioName string
	MonthsToGoal int
	// MonthsSaved is the lead over the slowest successful scenario.
	MonthsSaved    int
	InterestEarned float64
}

// AnalyzeScenarios picks the successful scenario with the fewest months to
// goal; ties are broken by name. It returns a zero Recommendation when no
// scenario succeeded.
func AnalyzeScenarios(comparison *domain.ScenarioComparison) Recommendation {
	if comparison == nil {
		return Recommendation{}
	}
	ok := make([]domain.ScenarioSummary, 0, len(comparison.Scenarios))
	for _, sc := range comparison.Scenarios {
		if sc.Succeeded() {
			ok = append(ok, sc)
		}
	}
	if len(ok) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ok, func(i, j int) bool {
		if ok[i].Result.MonthsToGoal != ok[j].Result.MonthsToGoal {
			return ok[i].Result.MonthsToGoal < ok[j].Result.MonthsToGoal
		}
		return ok[i].Name < ok[j].Name
	})
	best, worst := ok[0], ok[len(ok)-1]
	return Recommendation{
		ScenarioName:   best.Name,
		MonthsToGoal:   best.Result.MonthsToGoal,
		MonthsSaved:    worst.Result.MonthsToGoal - best.Result.MonthsToGoal,
		InterestEarned: best.Result.InterestEarned,
	}
}
