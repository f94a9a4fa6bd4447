package handler

import (
	"context"
	"net/http"
	"time"

	"cost-service/internal/engine"
	"cost-service/internal/repository"
	"cost-service/pkg/database"
	"cost-service/pkg/logger"
	"cost-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// snapshotSource loads the aggregation input for one product. Tests replace
// the package-level source with a stub.
type snapshotSource interface {
	Load(ctx context.Context, productID string) (engine.Snapshot, error)
}

var (
	snapshots snapshotSource
	costRepo  repository.CostRepo
)

// Init wires the handlers to their gorm-backed repositories. It must run once
// at startup, after the database connection is established; request handlers
// only ever read these variables.
func Init() {
	db := database.GetDB()
	snapshots = repository.NewGormSnapshotLoader(db)
	costRepo = repository.NewGormCostRepo(db)
}

// GetTaskCosts handles the per-task cost breakdown for a product
func GetTaskCosts(c echo.Context) error {
	log := logger.FromContext(c)
	productID := c.Param("product_id")
	filter := engine.ParseFilter(c.QueryParam("module"))
	log.Info("Computing task costs",
		zap.String("product_id", productID),
		zap.String("module_filter", filter.String()))

	prometheus.RecordAggregationQuery("task_costs", filter.Kind())
	defer observeAggregation("task_costs")(time.Now())

	snap, err := snapshots.Load(c.Request().Context(), productID)
	if err != nil {
		log.Error("Failed to load cost snapshot",
			zap.String("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve cost data",
		})
	}

	rows, diags := engine.TaskCosts(snap, filter)
	reportDiagnostics(log, diags)

	log.Info("Task costs computed", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, echo.Map{
		"task_costs":  rows,
		"diagnostics": diags,
	})
}

// GetFeatureCosts handles the per-feature cost rollup for a product
func GetFeatureCosts(c echo.Context) error {
	log := logger.FromContext(c)
	productID := c.Param("product_id")
	filter := engine.ParseFilter(c.QueryParam("module"))
	log.Info("Computing feature costs",
		zap.String("product_id", productID),
		zap.String("module_filter", filter.String()))

	prometheus.RecordAggregationQuery("feature_costs", filter.Kind())
	defer observeAggregation("feature_costs")(time.Now())

	snap, err := snapshots.Load(c.Request().Context(), productID)
	if err != nil {
		log.Error("Failed to load cost snapshot",
			zap.String("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve cost data",
		})
	}

	rows, diags := engine.FeatureCosts(snap, filter)
	reportDiagnostics(log, diags)

	log.Info("Feature costs computed", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, echo.Map{
		"feature_costs": rows,
		"diagnostics":   diags,
	})
}

// GetClassificationSummary handles the run/change partition for a product
func GetClassificationSummary(c echo.Context) error {
	log := logger.FromContext(c)
	productID := c.Param("product_id")
	filter := engine.ParseFilter(c.QueryParam("module"))
	log.Info("Computing classification summary",
		zap.String("product_id", productID),
		zap.String("module_filter", filter.String()))

	prometheus.RecordAggregationQuery("classification_summary", filter.Kind())
	defer observeAggregation("classification_summary")(time.Now())

	snap, err := snapshots.Load(c.Request().Context(), productID)
	if err != nil {
		log.Error("Failed to load cost snapshot",
			zap.String("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve cost data",
		})
	}

	summary, diags := engine.Summary(snap, filter)
	reportDiagnostics(log, diags)

	log.Info("Classification summary computed",
		zap.Float64("run_total", summary.Run.TotalCost),
		zap.Float64("change_total", summary.Change.TotalCost),
		zap.Float64("unclassified_total", summary.Unclassified.TotalCost))
	return c.JSON(http.StatusOK, echo.Map{
		"summary":     summary,
		"diagnostics": diags,
	})
}

// GetResourceCosts handles the per-resource cost breakdown for a product
func GetResourceCosts(c echo.Context) error {
	log := logger.FromContext(c)
	productID := c.Param("product_id")
	filter := engine.ParseFilter(c.QueryParam("module"))
	log.Info("Computing resource costs",
		zap.String("product_id", productID),
		zap.String("module_filter", filter.String()))

	prometheus.RecordAggregationQuery("resource_costs", filter.Kind())
	defer observeAggregation("resource_costs")(time.Now())

	snap, err := snapshots.Load(c.Request().Context(), productID)
	if err != nil {
		log.Error("Failed to load cost snapshot",
			zap.String("product_id", productID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve cost data",
		})
	}

	breakdown, diags := engine.ResourceCosts(snap, filter)
	reportDiagnostics(log, diags)

	log.Info("Resource costs computed",
		zap.Int("direct_count", len(breakdown.DirectResourceCosts)),
		zap.Int("calculated_count", len(breakdown.CalculatedResourceCosts)))
	return c.JSON(http.StatusOK, echo.Map{
		"direct_resource_costs":     breakdown.DirectResourceCosts,
		"calculated_resource_costs": breakdown.CalculatedResourceCosts,
		"diagnostics":               diags,
	})
}

func observeAggregation(query string) func(start time.Time) {
	return func(start time.Time) {
		prometheus.AggregationDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}
}

// reportDiagnostics logs and counts soft failures without failing the request.
func reportDiagnostics(log *zap.Logger, diags []engine.Diagnostic) {
	for _, d := range diags {
		prometheus.RecordDiagnostic(string(d.Kind))
		log.Warn("Aggregation diagnostic",
			zap.String("kind", string(d.Kind)),
			zap.String("entity_id", d.EntityID),
			zap.String("detail", d.Detail))
	}
}
