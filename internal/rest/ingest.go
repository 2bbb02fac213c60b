package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"pricedeck/business/ingest"
	"pricedeck/pkg/logger"
)

type IngestService interface {
	ImportProductsCSV(ctx context.Context, src io.Reader) (int, error)
	ImportCompetitorPricesCSV(ctx context.Context, src io.Reader) (int, error)
	ImportOrdersCSV(ctx context.Context, src io.Reader) (int, error)
}

type IngestHandler struct {
	ingestService  IngestService
	pricingService PricingService
	timeout        time.Duration
}

func NewIngestHandler(ingestService IngestService, pricingService PricingService) *IngestHandler {
	return &IngestHandler{
		ingestService:  ingestService,
		pricingService: pricingService,
		timeout:        60 * time.Second,
	}
}

// POST /api/v1/import/products
func (h *IngestHandler) ImportProducts(c echo.Context) error {
	return h.importCSV(c, "products", h.ingestService.ImportProductsCSV)
}

// POST /api/v1/import/competitor-prices
func (h *IngestHandler) ImportCompetitorPrices(c echo.Context) error {
	return h.importCSV(c, "competitor prices", h.ingestService.ImportCompetitorPricesCSV)
}

// POST /api/v1/import/orders
func (h *IngestHandler) ImportOrders(c echo.Context) error {
	return h.importCSV(c, "orders", h.ingestService.ImportOrdersCSV)
}

func (h *IngestHandler) importCSV(
	c echo.Context,
	kind string,
	importFn func(ctx context.Context, src io.Reader) (int, error),
) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Error("Missing upload file", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open upload file", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	imported, err := importFn(ctx, src)
	if err != nil {
		logger.Error("Failed to import csv", "kind", kind, err)
		if errors.Is(err, ingest.ErrMissingSKUColumn) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	// Imported rows change the pricing inputs, so cached recommendations are stale.
	if err := h.pricingService.InvalidateCache(ctx); err != nil {
		logger.Warn("Failed to invalidate recommendation cache after import", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "import completed",
		"imported": imported,
	})
}
