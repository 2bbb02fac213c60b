package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"pricedeck/business/approvals"
	"pricedeck/domain"
)

type stubApprovalsService struct {
	decidedBy string
	notes     string
	err       error
}

func (s *stubApprovalsService) RefreshFromRecommendations(ctx context.Context, recs []domain.Recommendation) (int, error) {
	return 0, nil
}

func (s *stubApprovalsService) Approve(ctx context.Context, id uint, decidedBy, notes string) (domain.PriceApproval, error) {
	s.decidedBy = decidedBy
	s.notes = notes
	if s.err != nil {
		return domain.PriceApproval{}, s.err
	}
	return domain.PriceApproval{ID: id, Status: domain.ApprovalStatusApproved, DecidedBy: decidedBy}, nil
}

func (s *stubApprovalsService) Reject(ctx context.Context, id uint, decidedBy, notes string) (domain.PriceApproval, error) {
	s.decidedBy = decidedBy
	if s.err != nil {
		return domain.PriceApproval{}, s.err
	}
	return domain.PriceApproval{ID: id, Status: domain.ApprovalStatusRejected, DecidedBy: decidedBy}, nil
}

func (s *stubApprovalsService) Pending(ctx context.Context) ([]domain.PriceApproval, error) {
	return nil, nil
}

func (s *stubApprovalsService) History(ctx context.Context) ([]domain.PriceApproval, error) {
	return nil, nil
}

func (s *stubApprovalsService) Stats(ctx context.Context) (domain.WorkflowStats, error) {
	return domain.WorkflowStats{}, nil
}

func newDecisionContext(e *echo.Echo, id string, userID interface{}) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"notes":"ok"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if userID != nil {
		c.Set("user_id", userID)
	}

	return c, rec
}

func TestApproveRecommendationUsesAuthenticatedUser(t *testing.T) {
	e := echo.New()
	svc := &stubApprovalsService{}
	h := NewApprovalsHandler(svc, nil)

	c, rec := newDecisionContext(e, "7", uint(42))
	if err := h.ApproveRecommendation(c); err != nil {
		t.Fatalf("ApproveRecommendation: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.decidedBy != "user:42" {
		t.Errorf("decidedBy = %q, want %q", svc.decidedBy, "user:42")
	}
	if svc.notes != "ok" {
		t.Errorf("notes = %q, want %q", svc.notes, "ok")
	}
}

func TestDecideErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", approvals.ErrApprovalNotFound, http.StatusNotFound},
		{"already decided", approvals.ErrAlreadyDecided, http.StatusConflict},
	}

	for _, tc := range tests {
		e := echo.New()
		h := NewApprovalsHandler(&stubApprovalsService{err: tc.err}, nil)

		c, rec := newDecisionContext(e, "7", uint(42))
		if err := h.RejectRecommendation(c); err != nil {
			t.Fatalf("%s: RejectRecommendation: %v", tc.name, err)
		}

		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestDecideInvalidID(t *testing.T) {
	e := echo.New()
	h := NewApprovalsHandler(&stubApprovalsService{}, nil)

	c, rec := newDecisionContext(e, "not-a-number", uint(42))
	if err := h.ApproveRecommendation(c); err != nil {
		t.Fatalf("ApproveRecommendation: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
