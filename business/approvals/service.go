package approvals

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

var (
	ErrApprovalNotFound = errors.New("approval not found")
	ErrAlreadyDecided   = errors.New("approval already decided")
)

// Escalation bands over |price change %|.
const (
	autoApproveMaxPct = 3.0
	managerMaxPct     = 7.0
	directorMaxPct    = 15.0
)

type ApprovalRepository interface {
	Create(ctx context.Context, approval *domain.PriceApproval) error
	FetchByID(ctx context.Context, id uint) (domain.PriceApproval, error)
	FetchByStatus(ctx context.Context, status string) ([]domain.PriceApproval, error)
	FetchAll(ctx context.Context) ([]domain.PriceApproval, error)
	Update(ctx context.Context, approval *domain.PriceApproval) error
	DeletePending(ctx context.Context) error
	CountByStatusAndLevel(ctx context.Context) (domain.WorkflowStats, error)
}

type Service struct {
	repo ApprovalRepository
}

func NewService(repo ApprovalRepository) *Service {
	return &Service{repo: repo}
}

// RequiredLevelFor maps an absolute price change percentage to the sign-off
// level it needs. Boundaries are inclusive on the lower band.
func RequiredLevelFor(changePct float64) string {
	abs := math.Abs(changePct)
	switch {
	case abs <= autoApproveMaxPct:
		return domain.ApprovalLevelAuto
	case abs <= managerMaxPct:
		return domain.ApprovalLevelManager
	case abs <= directorMaxPct:
		return domain.ApprovalLevelDirector
	default:
		return domain.ApprovalLevelExecutive
	}
}

// RefreshFromRecommendations rebuilds the pending queue from a recommendation
// batch. Previously pending items are discarded first so the queue always
// mirrors the latest run; decided items stay as history. Auto-approved
// changes never enter the queue. Returns the number of items queued.
func (s *Service) RefreshFromRecommendations(ctx context.Context, recs []domain.Recommendation) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	if err := s.repo.DeletePending(ctx); err != nil {
		return 0, fmt.Errorf("clear pending approvals: %w", err)
	}

	queued := 0
	for _, rec := range recs {
		level := RequiredLevelFor(rec.PriceChangePct)
		if level == domain.ApprovalLevelAuto {
			continue
		}

		approval := domain.PriceApproval{
			SKU:              rec.SKU,
			ProductName:      rec.ProductName,
			CurrentPrice:     rec.BasePrice,
			RecommendedPrice: rec.RecommendedPrice,
			ChangePct:        rec.PriceChangePct,
			MarginPct:        rec.MarginPct,
			RequiredLevel:    level,
			Status:           domain.ApprovalStatusPending,
			Context: datatypes.JSONMap{
				"tier":             rec.Tier,
				"demand_index":     rec.DemandIndex,
				"competitor_avg":   rec.CompetitorAvg,
				"smart_tags":       rec.SmartTags,
				"rule_adjustments": rec.RuleTrace,
			},
		}

		if err := s.repo.Create(ctx, &approval); err != nil {
			return queued, fmt.Errorf("queue approval for %s: %w", rec.SKU, err)
		}
		queued++
	}

	logger.Info("approval queue refreshed",
		"recommendations", len(recs),
		"queued", queued,
	)

	return queued, nil
}

func (s *Service) Approve(ctx context.Context, id uint, decidedBy, notes string) (domain.PriceApproval, error) {
	return s.decide(ctx, id, domain.ApprovalStatusApproved, decidedBy, notes)
}

func (s *Service) Reject(ctx context.Context, id uint, decidedBy, notes string) (domain.PriceApproval, error) {
	return s.decide(ctx, id, domain.ApprovalStatusRejected, decidedBy, notes)
}

func (s *Service) decide(ctx context.Context, id uint, status, decidedBy, notes string) (domain.PriceApproval, error) {
	if err := ctx.Err(); err != nil {
		return domain.PriceApproval{}, fmt.Errorf("context error: %w", err)
	}

	approval, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PriceApproval{}, ErrApprovalNotFound
		}
		return domain.PriceApproval{}, fmt.Errorf("fetch approval: %w", err)
	}

	if approval.Status != domain.ApprovalStatusPending {
		return domain.PriceApproval{}, ErrAlreadyDecided
	}

	now := time.Now()
	approval.Status = status
	approval.DecidedBy = decidedBy
	approval.Notes = notes
	approval.DecidedAt = &now

	if err := s.repo.Update(ctx, &approval); err != nil {
		return domain.PriceApproval{}, fmt.Errorf("update approval: %w", err)
	}

	logger.Info("approval decided",
		"id", approval.ID,
		"sku", approval.SKU,
		"status", status,
		"decided_by", decidedBy,
	)

	return approval, nil
}

func (s *Service) Pending(ctx context.Context) ([]domain.PriceApproval, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.repo.FetchByStatus(ctx, domain.ApprovalStatusPending)
}

// History returns every approval record, decided and pending alike.
func (s *Service) History(ctx context.Context) ([]domain.PriceApproval, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.repo.FetchAll(ctx)
}

func (s *Service) Stats(ctx context.Context) (domain.WorkflowStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.WorkflowStats{}, fmt.Errorf("context error: %w", err)
	}

	return s.repo.CountByStatusAndLevel(ctx)
}
