package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

type InsightsService interface {
	CategoryPerformance(ctx context.Context) ([]domain.CategoryPerformance, error)
	TierElasticities() []domain.TierElasticity
}

type InsightsHandler struct {
	insightsService InsightsService
	timeout         time.Duration
}

func NewInsightsHandler(insightsService InsightsService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
		timeout:         30 * time.Second,
	}
}

// GET /api/v1/insights/categories
func (h *InsightsHandler) GetCategoryPerformance(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	performance, err := h.insightsService.CategoryPerformance(ctx)
	if err != nil {
		logger.Error("Failed to get category performance", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(performance))
}

// GET /api/v1/insights/elasticity
func (h *InsightsHandler) GetTierElasticities(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.insightsService.TierElasticities()))
}
