package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"pricedeck/business/ingest"
	"pricedeck/domain"
	"pricedeck/pkg/logger"
	"pricedeck/pkg/metrics"
)

type PricingService interface {
	RecommendAll(ctx context.Context) ([]domain.Recommendation, error)
	RecommendSKU(ctx context.Context, sku string) (*domain.Recommendation, error)
	InvalidateCache(ctx context.Context) error
	FeatureImportance(ctx context.Context) (map[string]float64, error)
}

type PricingHandler struct {
	pricingService PricingService
	timeout        time.Duration
}

func NewPricingHandler(pricingService PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		timeout:        30 * time.Second,
	}
}

// GET /api/v1/recommendations
func (h *PricingHandler) GetRecommendations(c echo.Context) error {
	start := time.Now()
	metrics.RecommendationRequests.Inc()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.pricingService.RecommendAll(ctx)
	if err != nil {
		logger.Error("Failed to build recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendationLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/:sku
func (h *PricingHandler) GetRecommendationBySKU(c echo.Context) error {
	start := time.Now()
	metrics.RecommendationRequests.Inc()

	sku := c.Param("sku")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec, err := h.pricingService.RecommendSKU(ctx, sku)
	if err != nil {
		logger.Error("Failed to build recommendation", "sku", sku, err)
		if errors.Is(err, ingest.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendationLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rec))
}

// DELETE /api/v1/recommendations/cache
func (h *PricingHandler) InvalidateCache(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.pricingService.InvalidateCache(ctx); err != nil {
		logger.Error("Failed to invalidate recommendation cache", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "recommendation cache invalidated",
	})
}

// GET /api/v1/recommendations/feature-importance
func (h *PricingHandler) GetFeatureImportance(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	importance, err := h.pricingService.FeatureImportance(ctx)
	if err != nil {
		logger.Error("Failed to get feature importance", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(importance))
}
