package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

type OrdersService interface {
	GetAllOrderLines(ctx context.Context) ([]domain.OrderLine, error)
	GetOrderLinesBySKU(ctx context.Context, sku string) ([]domain.OrderLine, error)
	CreateOrderLine(ctx context.Context, line *domain.OrderLine) (*domain.OrderLine, error)
}

type OrdersHandler struct {
	ordersService OrdersService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type CreateOrderLineRequest struct {
	SKU       string  `json:"sku" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	PriceEach float64 `json:"price_each" validate:"gte=0"`
}

func (h *OrdersHandler) GetAllOrderLines(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lines, err := h.ordersService.GetAllOrderLines(ctx)
	if err != nil {
		logger.Error("Failed to find all order lines", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(lines))
}

func (h *OrdersHandler) GetOrderLinesBySKU(c echo.Context) error {
	sku := c.Param("sku")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	lines, err := h.ordersService.GetOrderLinesBySKU(ctx, sku)
	if err != nil {
		logger.Error("Failed to find order lines by sku", err)
		if err.Error() == "invalid order sku" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(lines))
}

func (h *OrdersHandler) CreateOrderLine(c echo.Context) error {
	var req CreateOrderLineRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	line := &domain.OrderLine{
		SKU:       req.SKU,
		Quantity:  req.Quantity,
		PriceEach: req.PriceEach,
		CreatedAt: time.Now(),
	}

	newLine, err := h.ordersService.CreateOrderLine(ctx, line)
	if err != nil {
		logger.Error("Failed to create order line", err)
		if err.Error() == "sku is required" ||
			err.Error() == "quantity must be greater than 0" ||
			err.Error() == "price cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newLine))
}
