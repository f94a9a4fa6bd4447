package repository

import (
	"context"

	"cost-service/internal/model"
)

// CostListFilter narrows a cost listing; zero-value fields are not applied.
type CostListFilter struct {
	ProductID      string
	ModuleID       string
	Classification string
}

// CostRepo provides access to cost ledger entries.
type CostRepo interface {
	Create(ctx context.Context, c *model.Cost) error
	GetByID(ctx context.Context, id string) (*model.Cost, error)
	List(ctx context.Context, filter CostListFilter) ([]model.Cost, error)
	ListByProduct(ctx context.Context, productID string) ([]model.Cost, error)
	Update(ctx context.Context, c *model.Cost) error
	Delete(ctx context.Context, id string) (int64, error)
}

// TaskRepo provides access to tasks.
type TaskRepo interface {
	ListByProduct(ctx context.Context, productID string) ([]model.Task, error)
}

// FeatureRepo provides access to features.
type FeatureRepo interface {
	ListByProduct(ctx context.Context, productID string) ([]model.Feature, error)
}

// ResourceRepo provides access to resources. Resources are shared across
// products, so listing is unscoped.
type ResourceRepo interface {
	List(ctx context.Context) ([]model.Resource, error)
}
