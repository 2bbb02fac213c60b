package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pricedeck/business/approvals"
	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

type ApprovalsService interface {
	RefreshFromRecommendations(ctx context.Context, recs []domain.Recommendation) (int, error)
	Approve(ctx context.Context, id uint, decidedBy, notes string) (domain.PriceApproval, error)
	Reject(ctx context.Context, id uint, decidedBy, notes string) (domain.PriceApproval, error)
	Pending(ctx context.Context) ([]domain.PriceApproval, error)
	History(ctx context.Context) ([]domain.PriceApproval, error)
	Stats(ctx context.Context) (domain.WorkflowStats, error)
}

type ApprovalsHandler struct {
	approvalsService ApprovalsService
	pricingService   PricingService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewApprovalsHandler(approvalsService ApprovalsService, pricingService PricingService) *ApprovalsHandler {
	return &ApprovalsHandler{
		approvalsService: approvalsService,
		pricingService:   pricingService,
		validator:        validator.New(),
		timeout:          30 * time.Second,
	}
}

type DecisionRequest struct {
	Notes string `json:"notes"`
}

// POST /api/v1/approvals/refresh
func (h *ApprovalsHandler) RefreshApprovals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.pricingService.RecommendAll(ctx)
	if err != nil {
		logger.Error("Failed to build recommendations for approval refresh", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	queued, err := h.approvalsService.RefreshFromRecommendations(ctx, recs)
	if err != nil {
		logger.Error("Failed to refresh approval queue", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "approval queue refreshed",
		"queued":  queued,
	})
}

// GET /api/v1/approvals/pending
func (h *ApprovalsHandler) GetPendingApprovals(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pending, err := h.approvalsService.Pending(ctx)
	if err != nil {
		logger.Error("Failed to get pending approvals", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(pending))
}

// GET /api/v1/approvals/history
func (h *ApprovalsHandler) GetApprovalHistory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	history, err := h.approvalsService.History(ctx)
	if err != nil {
		logger.Error("Failed to get approval history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(history))
}

// GET /api/v1/approvals/stats
func (h *ApprovalsHandler) GetWorkflowStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.approvalsService.Stats(ctx)
	if err != nil {
		logger.Error("Failed to get workflow stats", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

// POST /api/v1/approvals/:id/approve
func (h *ApprovalsHandler) ApproveRecommendation(c echo.Context) error {
	return h.decide(c, h.approvalsService.Approve)
}

// POST /api/v1/approvals/:id/reject
func (h *ApprovalsHandler) RejectRecommendation(c echo.Context) error {
	return h.decide(c, h.approvalsService.Reject)
}

func (h *ApprovalsHandler) decide(
	c echo.Context,
	decision func(ctx context.Context, id uint, decidedBy, notes string) (domain.PriceApproval, error),
) error {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid approval id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req DecisionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var decidedBy string
	if userID, ok := c.Get("user_id").(uint); ok {
		decidedBy = "user:" + strconv.FormatUint(uint64(userID), 10)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	approval, err := decision(ctx, uint(id), decidedBy, req.Notes)
	if err != nil {
		logger.Error("Failed to decide approval", err)
		if errors.Is(err, approvals.ErrApprovalNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, approvals.ErrAlreadyDecided) {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(approval))
}
