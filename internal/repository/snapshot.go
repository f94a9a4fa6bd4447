package repository

import (
	"context"

	"cost-service/internal/engine"

	"gorm.io/gorm"
)

// SnapshotLoader assembles the engine's immutable input for one product.
type SnapshotLoader struct {
	costs     CostRepo
	tasks     TaskRepo
	features  FeatureRepo
	resources ResourceRepo
}

// NewSnapshotLoader builds a loader over explicit repositories.
func NewSnapshotLoader(costs CostRepo, tasks TaskRepo, features FeatureRepo, resources ResourceRepo) *SnapshotLoader {
	return &SnapshotLoader{costs: costs, tasks: tasks, features: features, resources: resources}
}

// NewGormSnapshotLoader builds a loader over gorm-backed repositories.
func NewGormSnapshotLoader(db *gorm.DB) *SnapshotLoader {
	return NewSnapshotLoader(
		NewGormCostRepo(db),
		NewGormTaskRepo(db),
		NewGormFeatureRepo(db),
		NewGormResourceRepo(db),
	)
}

// Load fetches every cost, task, feature and resource record visible to one
// aggregation call. Module filtering happens inside the engine so that all
// entity types pass through the same scope resolver.
func (l *SnapshotLoader) Load(ctx context.Context, productID string) (engine.Snapshot, error) {
	var snap engine.Snapshot
	var err error

	if snap.Costs, err = l.costs.ListByProduct(ctx, productID); err != nil {
		return engine.Snapshot{}, err
	}
	if snap.Tasks, err = l.tasks.ListByProduct(ctx, productID); err != nil {
		return engine.Snapshot{}, err
	}
	if snap.Features, err = l.features.ListByProduct(ctx, productID); err != nil {
		return engine.Snapshot{}, err
	}
	if snap.Resources, err = l.resources.List(ctx); err != nil {
		return engine.Snapshot{}, err
	}
	return snap, nil
}
