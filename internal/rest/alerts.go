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

type AlertsService interface {
	Evaluate(ctx context.Context) ([]domain.Alert, error)
}

type AlertsHandler struct {
	alertsService AlertsService
	timeout       time.Duration
}

func NewAlertsHandler(alertsService AlertsService) *AlertsHandler {
	return &AlertsHandler{
		alertsService: alertsService,
		timeout:       30 * time.Second,
	}
}

// GET /api/v1/alerts
func (h *AlertsHandler) GetAlerts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	alerts, err := h.alertsService.Evaluate(ctx)
	if err != nil {
		logger.Error("Failed to evaluate alerts", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(alerts))
}
