package engine

import "cost-service/internal/model"

// Bucket holds the monthly-equivalent total of one classification.
type Bucket struct {
	TotalCost float64 `json:"total_cost"`
}

// ClassificationSummary partitions a scope's monthly spend into run (keep the
// lights on) versus change (new development). Spend with no classification is
// reported in its own bucket rather than dropped. LifetimeTotal is the plain
// sum of in-scope cost amounts, including sunk one-time costs that the
// monthly buckets exclude.
type ClassificationSummary struct {
	Run              Bucket  `json:"run"`
	Change           Bucket  `json:"change"`
	Unclassified     Bucket  `json:"unclassified"`
	RunPercentage    float64 `json:"run_percentage"`
	ChangePercentage float64 `json:"change_percentage"`
	LifetimeTotal    float64 `json:"lifetime_total"`
}

// Summary computes the run/change partition for every in-scope cost record,
// plus the labor cost of classified tasks that have no cost record of their
// own. A task whose spend is already represented by a task-scoped cost record
// is skipped, so no dollar is counted twice.
func Summary(snap Snapshot, filter ScopeFilter) (ClassificationSummary, []Diagnostic) {
	diags := newCollector()
	rates := NewRateResolver(snap.Resources)

	costs := inScopeCosts(snap, filter)
	costIdx := indexByScope(costs)
	checkScopeReferences(snap, costs, diags)

	var s ClassificationSummary
	for _, c := range costs {
		s.LifetimeTotal += c.Amount
		bucketFor(&s, c.CostClassification).TotalCost += MonthlyEquivalent(c)
	}

	for _, t := range inScopeTasks(snap, filter) {
		if len(costIdx[scopeKey{scope: model.ScopeTask, id: t.ID}]) > 0 {
			// A cost record already represents this task's spend.
			continue
		}
		row := taskCost(t, costIdx, rates, diags)
		if row.Classification == model.ClassificationNone {
			continue
		}
		bucketFor(&s, row.Classification).TotalCost += row.TotalCost
	}

	classified := s.Run.TotalCost + s.Change.TotalCost
	if classified > 0 {
		s.RunPercentage = s.Run.TotalCost / classified * 100
		s.ChangePercentage = s.Change.TotalCost / classified * 100
	}
	return s, diags.list()
}

func bucketFor(s *ClassificationSummary, c model.Classification) *Bucket {
	switch c {
	case model.ClassificationRun:
		return &s.Run
	case model.ClassificationChange:
		return &s.Change
	default:
		return &s.Unclassified
	}
}
