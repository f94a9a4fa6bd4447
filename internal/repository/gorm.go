package repository

import (
	"context"
	"time"

	"cost-service/internal/model"
	"cost-service/prometheus"

	"gorm.io/gorm"
)

// GormCostRepo implements CostRepo on a gorm connection.
type GormCostRepo struct {
	db *gorm.DB
}

func NewGormCostRepo(db *gorm.DB) *GormCostRepo {
	return &GormCostRepo{db: db}
}

func (r *GormCostRepo) Create(ctx context.Context, c *model.Cost) error {
	defer prometheus.TrackDBOperation("create_cost")(time.Now())
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormCostRepo) GetByID(ctx context.Context, id string) (*model.Cost, error) {
	defer prometheus.TrackDBOperation("get_cost")(time.Now())
	var c model.Cost
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCostRepo) List(ctx context.Context, filter CostListFilter) ([]model.Cost, error) {
	defer prometheus.TrackDBOperation("list_costs")(time.Now())
	query := r.db.WithContext(ctx)
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.ModuleID != "" {
		query = query.Where("module_id = ?", filter.ModuleID)
	}
	if filter.Classification != "" {
		query = query.Where("cost_classification = ?", filter.Classification)
	}
	var costs []model.Cost
	err := query.Find(&costs).Error
	return costs, err
}

func (r *GormCostRepo) ListByProduct(ctx context.Context, productID string) ([]model.Cost, error) {
	defer prometheus.TrackDBOperation("list_costs")(time.Now())
	var costs []model.Cost
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&costs).Error
	return costs, err
}

func (r *GormCostRepo) Update(ctx context.Context, c *model.Cost) error {
	defer prometheus.TrackDBOperation("update_cost")(time.Now())
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *GormCostRepo) Delete(ctx context.Context, id string) (int64, error) {
	defer prometheus.TrackDBOperation("delete_cost")(time.Now())
	result := r.db.WithContext(ctx).Delete(&model.Cost{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// GormTaskRepo implements TaskRepo on a gorm connection.
type GormTaskRepo struct {
	db *gorm.DB
}

func NewGormTaskRepo(db *gorm.DB) *GormTaskRepo {
	return &GormTaskRepo{db: db}
}

func (r *GormTaskRepo) ListByProduct(ctx context.Context, productID string) ([]model.Task, error) {
	defer prometheus.TrackDBOperation("list_tasks")(time.Now())
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&tasks).Error
	return tasks, err
}

// GormFeatureRepo implements FeatureRepo on a gorm connection.
type GormFeatureRepo struct {
	db *gorm.DB
}

func NewGormFeatureRepo(db *gorm.DB) *GormFeatureRepo {
	return &GormFeatureRepo{db: db}
}

func (r *GormFeatureRepo) ListByProduct(ctx context.Context, productID string) ([]model.Feature, error) {
	defer prometheus.TrackDBOperation("list_features")(time.Now())
	var features []model.Feature
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&features).Error
	return features, err
}

// GormResourceRepo implements ResourceRepo on a gorm connection.
type GormResourceRepo struct {
	db *gorm.DB
}

func NewGormResourceRepo(db *gorm.DB) *GormResourceRepo {
	return &GormResourceRepo{db: db}
}

func (r *GormResourceRepo) List(ctx context.Context) ([]model.Resource, error) {
	defer prometheus.TrackDBOperation("list_resources")(time.Now())
	var resources []model.Resource
	err := r.db.WithContext(ctx).Find(&resources).Error
	return resources, err
}
