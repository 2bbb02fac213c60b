package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

type CompetitorService interface {
	GetAllCompetitorPrices(ctx context.Context) ([]domain.CompetitorPrice, error)
	GetCompetitorPriceBySKU(ctx context.Context, sku string) (domain.CompetitorPrice, error)
	CreateCompetitorPrice(ctx context.Context, price *domain.CompetitorPrice) (*domain.CompetitorPrice, error)
	UpdateCompetitorPrice(ctx context.Context, price *domain.CompetitorPrice) (*domain.CompetitorPrice, error)
	DeleteCompetitorPrice(ctx context.Context, id uint64) error
}

type CompetitorHandler struct {
	competitorService CompetitorService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewCompetitorHandler(competitorService CompetitorService) *CompetitorHandler {
	return &CompetitorHandler{
		competitorService: competitorService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type CompetitorPriceRequest struct {
	SKU              string  `json:"sku" validate:"required"`
	Competitor1Price float64 `json:"competitor1_price" validate:"gte=0"`
	Competitor2Price float64 `json:"competitor2_price" validate:"gte=0"`
	Competitor3Price float64 `json:"competitor3_price" validate:"gte=0"`
	MarketOutOfStock bool    `json:"market_out_of_stock"`
}

func (h *CompetitorHandler) GetAllCompetitorPrices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prices, err := h.competitorService.GetAllCompetitorPrices(ctx)
	if err != nil {
		logger.Error("Failed to find all competitor prices", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":           "successfully get all competitor prices",
		"competitor_prices": prices,
	})
}

func (h *CompetitorHandler) GetCompetitorPriceBySKU(c echo.Context) error {
	sku := c.Param("sku")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	price, err := h.competitorService.GetCompetitorPriceBySKU(ctx, sku)
	if err != nil {
		if err.Error() == "competitor price not found" || err.Error() == "invalid competitor price sku" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":          "successfully find competitor price by sku",
		"competitor_price": price,
	})
}

func (h *CompetitorHandler) CreateCompetitorPrice(c echo.Context) error {
	var req CompetitorPriceRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate competitor price request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	price := &domain.CompetitorPrice{
		SKU:              req.SKU,
		Competitor1Price: req.Competitor1Price,
		Competitor2Price: req.Competitor2Price,
		Competitor3Price: req.Competitor3Price,
		MarketOutOfStock: req.MarketOutOfStock,
	}

	newPrice, err := h.competitorService.CreateCompetitorPrice(ctx, price)
	if err != nil {
		logger.Error("Failed to create competitor price", err)
		if err.Error() == "sku is required" ||
			err.Error() == "competitor prices cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":          "competitor price successfully created",
		"competitor_price": newPrice,
	})
}

func (h *CompetitorHandler) UpdateCompetitorPrice(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid competitor price id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req CompetitorPriceRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate competitor price request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	price := &domain.CompetitorPrice{
		ID:               id,
		SKU:              req.SKU,
		Competitor1Price: req.Competitor1Price,
		Competitor2Price: req.Competitor2Price,
		Competitor3Price: req.Competitor3Price,
		MarketOutOfStock: req.MarketOutOfStock,
	}

	updatedPrice, err := h.competitorService.UpdateCompetitorPrice(ctx, price)
	if err != nil {
		logger.Error("Failed to update competitor price", err)
		if err.Error() == "competitor price not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "competitor price ID is required" ||
			err.Error() == "competitor prices cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":          "successfully update competitor price",
		"competitor_price": updatedPrice,
	})
}

func (h *CompetitorHandler) DeleteCompetitorPrice(c echo.Context) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid competitor price id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.competitorService.DeleteCompetitorPrice(ctx, id)
	if err != nil {
		logger.Error("Failed to delete competitor price", err)
		if err.Error() == "competitor price not found" || err.Error() == "invalid competitor price id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":             "competitor price successfully deleted",
		"competitor_price_id": id,
	})
}
