package engine

import (
	"sort"

	"cost-service/internal/model"
)

// FeatureCostRow is the rolled-up cost view of a feature: its tasks' costs
// plus any cost records scoped directly to the feature.
type FeatureCostRow struct {
	FeatureID      string               `json:"feature_id"`
	Name           string               `json:"name"`
	ModuleID       string               `json:"module_id,omitempty"`
	TotalCost      float64              `json:"total_cost"`
	EstimatedCost  float64              `json:"estimated_cost"`
	TaskCount      int                  `json:"task_count"`
	Classification model.Classification `json:"classification,omitempty"`
}

// FeatureCosts rolls task costs up into their features. Feature-scoped cost
// records enter at their monthly-equivalent rate, since recurring feature
// costs are ongoing overhead rather than task labor. Rows are ordered by
// total cost descending, feature id as tiebreak.
func FeatureCosts(snap Snapshot, filter ScopeFilter) ([]FeatureCostRow, []Diagnostic) {
	diags := newCollector()
	rates := NewRateResolver(snap.Resources)
	costs := inScopeCosts(snap, filter)
	costIdx := indexByScope(costs)
	checkScopeReferences(snap, costs, diags)

	// Task rows grouped by owning feature, with every task run through the
	// same scope filter as the costs. Filtering costs but not the tasks feeding
	// a feature rollup silently inflates totals.
	tasksByFeature := make(map[string][]TaskCostRow)
	for _, t := range inScopeTasks(snap, filter) {
		if t.FeatureID == "" {
			continue
		}
		tasksByFeature[t.FeatureID] = append(tasksByFeature[t.FeatureID], taskCost(t, costIdx, rates, diags))
	}

	rows := make([]FeatureCostRow, 0, len(snap.Features))
	for _, f := range snap.Features {
		if !filter.InScope(f.ModuleID) {
			continue
		}
		row := FeatureCostRow{
			FeatureID: f.ID,
			Name:      f.Name,
			ModuleID:  f.ModuleID,
		}
		seen := make(map[model.Classification]struct{})

		for _, tr := range tasksByFeature[f.ID] {
			row.EstimatedCost += tr.EstimatedCost
			row.TotalCost += tr.TotalCost
			row.TaskCount++
			seen[tr.Classification] = struct{}{}
		}
		for _, c := range costIdx[scopeKey{scope: model.ScopeFeature, id: f.ID}] {
			amount := MonthlyEquivalent(c)
			row.EstimatedCost += amount
			row.TotalCost += amount
			seen[c.CostClassification] = struct{}{}
		}

		row.Classification = singleClassification(seen)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalCost != rows[j].TotalCost {
			return rows[i].TotalCost > rows[j].TotalCost
		}
		return rows[i].FeatureID < rows[j].FeatureID
	})
	return rows, diags.list()
}
