package engine

import (
	"sort"

	"cost-service/internal/model"
)

// ResourceCostRow is the labor spend of one resource, derived from the hours
// of every in-scope task it is assigned to.
type ResourceCostRow struct {
	ResourceID    string  `json:"resource_id"`
	Name          string  `json:"name"`
	TotalCost     float64 `json:"total_cost"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// ResourceCostBreakdown pairs explicit resource-scoped cost records with the
// labor costs calculated from task assignments.
type ResourceCostBreakdown struct {
	DirectResourceCosts     []model.Cost      `json:"direct_resource_costs"`
	CalculatedResourceCosts []ResourceCostRow `json:"calculated_resource_costs"`
}

// ResourceCosts computes the per-resource view: cost records scoped directly
// to resources, and per-resource labor derived from estimated and actual task
// hours. Calculated rows are ordered by total cost descending, resource id as
// tiebreak.
func ResourceCosts(snap Snapshot, filter ScopeFilter) (ResourceCostBreakdown, []Diagnostic) {
	diags := newCollector()
	rates := NewRateResolver(snap.Resources)
	costs := inScopeCosts(snap, filter)
	checkScopeReferences(snap, costs, diags)

	breakdown := ResourceCostBreakdown{
		DirectResourceCosts:     []model.Cost{},
		CalculatedResourceCosts: []ResourceCostRow{},
	}
	for _, c := range costs {
		if c.Scope != model.ScopeResource {
			continue
		}
		breakdown.DirectResourceCosts = append(breakdown.DirectResourceCosts, c)
	}

	calculated := make(map[string]*ResourceCostRow)
	for _, t := range inScopeTasks(snap, filter) {
		actualHours := t.ActualHours
		if actualHours == 0 {
			actualHours = t.EstimatedHours
		}
		for _, resourceID := range t.AssigneeIDs {
			r, ok := rates.Lookup(resourceID)
			if !ok {
				diags.add(DiagMissingResource, resourceID,
					"task %s references unknown resource %s", t.ID, resourceID)
				continue
			}
			row, exists := calculated[resourceID]
			if !exists {
				row = &ResourceCostRow{ResourceID: resourceID, Name: r.Name}
				calculated[resourceID] = row
			}
			row.EstimatedCost += t.EstimatedHours * r.HourlyRate
			row.TotalCost += actualHours * r.HourlyRate
		}
	}
	for _, row := range calculated {
		breakdown.CalculatedResourceCosts = append(breakdown.CalculatedResourceCosts, *row)
	}
	sort.Slice(breakdown.CalculatedResourceCosts, func(i, j int) bool {
		a, b := breakdown.CalculatedResourceCosts[i], breakdown.CalculatedResourceCosts[j]
		if a.TotalCost != b.TotalCost {
			return a.TotalCost > b.TotalCost
		}
		return a.ResourceID < b.ResourceID
	})
	return breakdown, diags.list()
}
