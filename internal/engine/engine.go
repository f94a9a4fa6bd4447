package engine

import "cost-service/internal/model"

// Snapshot is the immutable input to one aggregation call: every cost, task,
// feature and resource record of a single product. The engine never mutates
// it and never reaches outside it.
type Snapshot struct {
	Costs     []model.Cost
	Tasks     []model.Task
	Features  []model.Feature
	Resources []model.Resource
}

// scopeKey addresses the costs attached to one concrete entity.
type scopeKey struct {
	scope model.Scope
	id    string
}

// inScopeCosts applies the module filter to the snapshot's cost records.
func inScopeCosts(snap Snapshot, filter ScopeFilter) []model.Cost {
	out := make([]model.Cost, 0, len(snap.Costs))
	for _, c := range snap.Costs {
		if filter.InScope(c.ModuleID) {
			out = append(out, c)
		}
	}
	return out
}

// inScopeTasks applies the module filter to the snapshot's tasks.
func inScopeTasks(snap Snapshot, filter ScopeFilter) []model.Task {
	out := make([]model.Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if filter.InScope(t.ModuleID) {
			out = append(out, t)
		}
	}
	return out
}

// indexByScope groups cost records by the entity they are attached to.
func indexByScope(costs []model.Cost) map[scopeKey][]model.Cost {
	idx := make(map[scopeKey][]model.Cost)
	for _, c := range costs {
		if !c.Scope.RequiresScopeID() {
			continue
		}
		k := scopeKey{scope: c.Scope, id: c.ScopeID}
		idx[k] = append(idx[k], c)
	}
	return idx
}

// checkScopeReferences flags costs pointing at entities absent from the
// snapshot. The cost still aggregates normally; the dangling reference is
// only surfaced so the caller can see why a rollup looks incomplete.
func checkScopeReferences(snap Snapshot, costs []model.Cost, diags *collector) {
	taskIDs := make(map[string]struct{}, len(snap.Tasks))
	for _, t := range snap.Tasks {
		taskIDs[t.ID] = struct{}{}
	}
	featureIDs := make(map[string]struct{}, len(snap.Features))
	for _, f := range snap.Features {
		featureIDs[f.ID] = struct{}{}
	}
	resourceIDs := make(map[string]struct{}, len(snap.Resources))
	for _, r := range snap.Resources {
		resourceIDs[r.ID] = struct{}{}
	}

	for _, c := range costs {
		if !c.Scope.RequiresScopeID() {
			continue
		}
		var known bool
		switch c.Scope {
		case model.ScopeTask:
			_, known = taskIDs[c.ScopeID]
		case model.ScopeFeature:
			_, known = featureIDs[c.ScopeID]
		case model.ScopeResource:
			_, known = resourceIDs[c.ScopeID]
		default:
			// Module ownership is validated upstream by the caller.
			known = true
		}
		if !known {
			diags.add(DiagMissingScopeEntity, c.ScopeID,
				"cost %s is scoped to %s %s, which is not in the snapshot", c.ID, c.Scope, c.ScopeID)
		}
	}
}

// singleClassification reduces a set of observed classifications to one value:
// exactly one distinct non-empty classification propagates, anything mixed or
// empty stays unclassified rather than being forced to one side.
func singleClassification(seen map[model.Classification]struct{}) model.Classification {
	delete(seen, model.ClassificationNone)
	if len(seen) != 1 {
		return model.ClassificationNone
	}
	for c := range seen {
		return c
	}
	return model.ClassificationNone
}
