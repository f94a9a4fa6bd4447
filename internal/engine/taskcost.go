package engine

import (
	"sort"

	"cost-service/internal/model"
)

// TaskCostRow is the computed cost view of a single task.
type TaskCostRow struct {
	TaskID         string               `json:"task_id"`
	Name           string               `json:"name"`
	FeatureID      string               `json:"feature_id,omitempty"`
	ModuleID       string               `json:"module_id,omitempty"`
	EstimatedCost  float64              `json:"estimated_cost"`
	ActualCost     float64              `json:"actual_cost"`
	TotalCost      float64              `json:"total_cost"`
	Classification model.Classification `json:"classification,omitempty"`
}

// TaskCosts computes a cost row for every in-scope task: labor from every
// assignee's hourly rate plus any cost records scoped directly to the task.
// Rows are ordered by total cost descending, task id as tiebreak.
func TaskCosts(snap Snapshot, filter ScopeFilter) ([]TaskCostRow, []Diagnostic) {
	diags := newCollector()
	rates := NewRateResolver(snap.Resources)
	costs := inScopeCosts(snap, filter)
	costIdx := indexByScope(costs)
	checkScopeReferences(snap, costs, diags)

	tasks := inScopeTasks(snap, filter)
	rows := make([]TaskCostRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskCost(t, costIdx, rates, diags))
	}
	sortTaskRows(rows)
	return rows, diags.list()
}

// taskCost computes one task's row against pre-indexed costs and rates.
func taskCost(t model.Task, costIdx map[scopeKey][]model.Cost, rates *RateResolver, diags *collector) TaskCostRow {
	row := TaskCostRow{
		TaskID:    t.ID,
		Name:      t.Name,
		FeatureID: t.FeatureID,
		ModuleID:  t.ModuleID,
	}

	// Actual hours fall back to the estimate when not tracked.
	actualHours := t.ActualHours
	if actualHours == 0 {
		actualHours = t.EstimatedHours
	}

	for _, resourceID := range t.AssigneeIDs {
		est, ok := rates.LaborCost(resourceID, t.EstimatedHours)
		if !ok {
			diags.add(DiagMissingResource, resourceID,
				"task %s references unknown resource %s", t.ID, resourceID)
			continue
		}
		act, _ := rates.LaborCost(resourceID, actualHours)
		row.EstimatedCost += est
		row.ActualCost += act
	}

	seen := make(map[model.Classification]struct{})
	for _, c := range costIdx[scopeKey{scope: model.ScopeTask, id: t.ID}] {
		amount := directAmount(c)
		row.EstimatedCost += amount
		row.ActualCost += amount
		seen[c.CostClassification] = struct{}{}
	}

	if t.ActualHours > 0 {
		row.TotalCost = row.ActualCost
	} else {
		row.TotalCost = row.EstimatedCost
	}

	if t.CostClassification != model.ClassificationNone {
		row.Classification = t.CostClassification
	} else {
		row.Classification = singleClassification(seen)
	}
	return row
}

func sortTaskRows(rows []TaskCostRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalCost != rows[j].TotalCost {
			return rows[i].TotalCost > rows[j].TotalCost
		}
		return rows[i].TaskID < rows[j].TaskID
	})
}
