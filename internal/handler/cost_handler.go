package handler

import (
	"net/http"

	"cost-service/internal/model"
	"cost-service/internal/repository"
	"cost-service/pkg/logger"
	"cost-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CostRequest defines the structure for cost creation/update requests
type CostRequest struct {
	ProductID          string               `json:"product_id" validate:"required"`
	ModuleID           string               `json:"module_id"`
	Scope              model.Scope          `json:"scope" validate:"required"`
	ScopeID            string               `json:"scope_id"`
	Category           model.CostCategory   `json:"category"`
	CostType           model.CostType       `json:"cost_type"`
	Amount             float64              `json:"amount"`
	Currency           string               `json:"currency"`
	Recurrence         model.Recurrence     `json:"recurrence" validate:"required"`
	AmortizationPeriod int                  `json:"amortization_period"`
	CostClassification model.Classification `json:"cost_classification"`
	ResourceID         string               `json:"resource_id"`
	VendorID           string               `json:"vendor_id"`
}

// ListCosts handles retrieving cost records with optional filtering
func ListCosts(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing cost records with filters")

	filter := repository.CostListFilter{
		ProductID:      c.QueryParam("product_id"),
		ModuleID:       c.QueryParam("module_id"),
		Classification: c.QueryParam("cost_classification"),
	}
	if filter.ProductID != "" {
		log.Info("Filtering costs by product", zap.String("product_id", filter.ProductID))
	}
	if filter.ModuleID != "" {
		log.Info("Filtering costs by module", zap.String("module_id", filter.ModuleID))
	}
	if filter.Classification != "" {
		log.Info("Filtering costs by classification", zap.String("cost_classification", filter.Classification))
	}

	costs, err := costRepo.List(c.Request().Context(), filter)
	if err != nil {
		log.Error("Failed to list cost records",
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve cost records",
		})
	}

	log.Info("Cost records retrieved successfully", zap.Int("count", len(costs)))
	return c.JSON(http.StatusOK, costs)
}

// GetCost handles retrieving a single cost record by ID
func GetCost(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting cost record by ID", zap.String("cost_id", id))

	cost, err := costRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		log.Error("Cost record not found",
			zap.String("cost_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Cost record not found",
		})
	}

	log.Info("Cost record retrieved successfully",
		zap.String("cost_id", id),
		zap.String("scope", string(cost.Scope)),
		zap.Float64("amount", cost.Amount))
	return c.JSON(http.StatusOK, cost)
}

// CreateCost handles creating a new cost record
func CreateCost(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new cost record")

	var req CostRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Scope.RequiresScopeID() && req.ScopeID == "" {
		log.Warn("Missing scope_id for scoped cost", zap.String("scope", string(req.Scope)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "scope_id is required for scope " + string(req.Scope),
		})
	}

	log.Info("Cost record creation request",
		zap.String("product_id", req.ProductID),
		zap.String("scope", string(req.Scope)),
		zap.Float64("amount", req.Amount),
		zap.String("recurrence", string(req.Recurrence)))

	cost := model.Cost{
		ProductID:          req.ProductID,
		ModuleID:           req.ModuleID,
		Scope:              req.Scope,
		ScopeID:            req.ScopeID,
		Category:           req.Category,
		CostType:           req.CostType,
		Amount:             req.Amount,
		Currency:           req.Currency,
		Recurrence:         req.Recurrence,
		AmortizationPeriod: req.AmortizationPeriod,
		CostClassification: req.CostClassification,
		ResourceID:         req.ResourceID,
		VendorID:           req.VendorID,
	}

	if err := costRepo.Create(c.Request().Context(), &cost); err != nil {
		log.Error("Failed to create cost record",
			zap.String("product_id", req.ProductID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create cost record",
		})
	}

	prometheus.RecordCostOperation("create")
	log.Info("Cost record created successfully",
		zap.String("cost_id", cost.ID),
		zap.String("scope", string(cost.Scope)),
		zap.Float64("amount", cost.Amount))
	return c.JSON(http.StatusCreated, cost)
}

// UpdateCost handles updating an existing cost record
func UpdateCost(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating cost record", zap.String("cost_id", id))

	var req CostRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("cost_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Find existing cost record
	cost, err := costRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		log.Error("Cost record not found for update",
			zap.String("cost_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Cost record not found",
		})
	}

	if req.Scope.RequiresScopeID() && req.ScopeID == "" {
		log.Warn("Missing scope_id for scoped cost", zap.String("scope", string(req.Scope)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "scope_id is required for scope " + string(req.Scope),
		})
	}

	oldAmount := cost.Amount

	// Update fields
	cost.ProductID = req.ProductID
	cost.ModuleID = req.ModuleID
	cost.Scope = req.Scope
	cost.ScopeID = req.ScopeID
	cost.Category = req.Category
	cost.CostType = req.CostType
	cost.Amount = req.Amount
	cost.Currency = req.Currency
	cost.Recurrence = req.Recurrence
	cost.AmortizationPeriod = req.AmortizationPeriod
	cost.CostClassification = req.CostClassification
	cost.ResourceID = req.ResourceID
	cost.VendorID = req.VendorID

	if err := costRepo.Update(c.Request().Context(), cost); err != nil {
		log.Error("Failed to update cost record",
			zap.String("cost_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update cost record",
		})
	}

	prometheus.RecordCostOperation("update")
	log.Info("Cost record updated successfully",
		zap.String("cost_id", id),
		zap.Float64("old_amount", oldAmount),
		zap.Float64("new_amount", cost.Amount))
	return c.JSON(http.StatusOK, cost)
}

// DeleteCost handles deleting a cost record (soft delete)
func DeleteCost(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting cost record", zap.String("cost_id", id))

	rowsAffected, err := costRepo.Delete(c.Request().Context(), id)
	if err != nil {
		log.Error("Failed to delete cost record",
			zap.String("cost_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete cost record",
		})
	}

	if rowsAffected == 0 {
		log.Warn("Cost record not found for deletion",
			zap.String("cost_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Cost record not found",
		})
	}

	prometheus.RecordCostOperation("delete")
	log.Info("Cost record deleted successfully",
		zap.String("cost_id", id),
		zap.Int64("rows_affected", rowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Cost record deleted successfully",
	})
}
