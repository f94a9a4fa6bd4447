package engine

import (
	"testing"

	"cost-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateResolver_LaborCost(t *testing.T) {
	rr := NewRateResolver([]model.Resource{{ID: "r1", HourlyRate: 85.5}})

	amount, ok := rr.LaborCost("r1", 10)
	assert.True(t, ok)
	assert.InDelta(t, 855, amount, 1e-9)

	amount, ok = rr.LaborCost("missing", 10)
	assert.False(t, ok)
	assert.Zero(t, amount)
}

func TestResourceCosts_CalculatedFromAssignments(t *testing.T) {
	snap := Snapshot{
		Tasks: []model.Task{
			{ID: "t1", EstimatedHours: 10, ActualHours: 8, AssigneeIDs: []string{"r1"}},
			{ID: "t2", EstimatedHours: 4, AssigneeIDs: []string{"r1", "r2"}},
		},
		Resources: []model.Resource{
			{ID: "r1", Name: "Dev", HourlyRate: 100},
			{ID: "r2", Name: "QA", HourlyRate: 50},
		},
	}

	breakdown, diags := ResourceCosts(snap, FilterAll())
	assert.Empty(t, diags)
	require.Len(t, breakdown.CalculatedResourceCosts, 2)

	r1 := breakdown.CalculatedResourceCosts[0]
	assert.Equal(t, "r1", r1.ResourceID)
	assert.InDelta(t, 1400, r1.EstimatedCost, 1e-9)
	assert.InDelta(t, 1200, r1.TotalCost, 1e-9, "actuals on t1, estimate fallback on t2")

	r2 := breakdown.CalculatedResourceCosts[1]
	assert.Equal(t, "r2", r2.ResourceID)
	assert.InDelta(t, 200, r2.TotalCost, 1e-9)
}

func TestResourceCosts_DirectCostsPassThrough(t *testing.T) {
	snap := Snapshot{
		Resources: []model.Resource{{ID: "r1", Name: "Contractor", HourlyRate: 90}},
		Costs: []model.Cost{
			{ID: "c1", Scope: model.ScopeResource, ScopeID: "r1",
				Amount: 4000, Recurrence: model.RecurrenceMonthly},
			{ID: "c2", Scope: model.ScopeSoftware, Amount: 100, Recurrence: model.RecurrenceMonthly},
		},
	}

	breakdown, _ := ResourceCosts(snap, FilterAll())
	require.Len(t, breakdown.DirectResourceCosts, 1)
	assert.Equal(t, "c1", breakdown.DirectResourceCosts[0].ID)
}

func TestResourceCosts_UnknownResourceIsFlagged(t *testing.T) {
	snap := Snapshot{
		Tasks: []model.Task{
			{ID: "t1", EstimatedHours: 5, AssigneeIDs: []string{"ghost"}},
		},
		Costs: []model.Cost{
			{ID: "c1", Scope: model.ScopeResource, ScopeID: "departed",
				Amount: 100, Recurrence: model.RecurrenceMonthly},
		},
	}

	breakdown, diags := ResourceCosts(snap, FilterAll())
	assert.Empty(t, breakdown.CalculatedResourceCosts)
	require.Len(t, breakdown.DirectResourceCosts, 1, "direct cost still reported")
	require.Len(t, diags, 2)
	assert.Equal(t, DiagMissingScopeEntity, diags[0].Kind)
	assert.Equal(t, "departed", diags[0].EntityID)
	assert.Equal(t, DiagMissingResource, diags[1].Kind)
	assert.Equal(t, "ghost", diags[1].EntityID)
}

func TestResourceCosts_ScopeFilterApplied(t *testing.T) {
	snap := Snapshot{
		Tasks: []model.Task{
			{ID: "t1", ModuleID: "mod-1", EstimatedHours: 10, AssigneeIDs: []string{"r1"}},
			{ID: "t2", EstimatedHours: 2, AssigneeIDs: []string{"r1"}},
		},
		Resources: []model.Resource{{ID: "r1", HourlyRate: 100}},
	}

	breakdown, _ := ResourceCosts(snap, FilterModule("mod-1"))
	require.Len(t, breakdown.CalculatedResourceCosts, 1)
	assert.InDelta(t, 1000, breakdown.CalculatedResourceCosts[0].TotalCost, 1e-9)
}
