package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pricedeck/domain"
)

type ApprovalRepository struct {
	DB *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{
		DB: db,
	}
}

func (r *ApprovalRepository) Create(ctx context.Context, approval *domain.PriceApproval) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(approval).Error; err != nil {
		return fmt.Errorf("failed to create approval: %w", err)
	}

	return nil
}

// FetchByID returns the raw gorm.ErrRecordNotFound so the service can map it
// to its own sentinel.
func (r *ApprovalRepository) FetchByID(ctx context.Context, id uint) (domain.PriceApproval, error) {
	if err := ctx.Err(); err != nil {
		return domain.PriceApproval{}, fmt.Errorf("context error: %w", err)
	}

	var approval domain.PriceApproval
	if err := r.DB.WithContext(ctx).First(&approval, id).Error; err != nil {
		return domain.PriceApproval{}, err
	}

	return approval, nil
}

func (r *ApprovalRepository) FetchByStatus(ctx context.Context, status string) ([]domain.PriceApproval, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var approvals []domain.PriceApproval
	err := r.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&approvals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find approvals: %w", err)
	}

	return approvals, nil
}

func (r *ApprovalRepository) FetchAll(ctx context.Context) ([]domain.PriceApproval, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var approvals []domain.PriceApproval
	if err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&approvals).Error; err != nil {
		return nil, fmt.Errorf("failed to find approvals: %w", err)
	}

	return approvals, nil
}

func (r *ApprovalRepository) Update(ctx context.Context, approval *domain.PriceApproval) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"status":     approval.Status,
		"decided_by": approval.DecidedBy,
		"notes":      approval.Notes,
		"decided_at": approval.DecidedAt,
	}

	result := r.DB.WithContext(ctx).Model(&domain.PriceApproval{}).Where("id = ?", approval.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update approval: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeletePending clears the queue before a refresh; decided rows are history
// and stay untouched.
func (r *ApprovalRepository) DeletePending(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.ApprovalStatusPending).
		Delete(&domain.PriceApproval{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete pending approvals: %w", err)
	}

	return nil
}

func (r *ApprovalRepository) CountByStatusAndLevel(ctx context.Context) (domain.WorkflowStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.WorkflowStats{}, fmt.Errorf("context error: %w", err)
	}

	var stats domain.WorkflowStats
	db := r.DB.WithContext(ctx).Model(&domain.PriceApproval{})

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.Pending, db.Session(&gorm.Session{}).Where("status = ?", domain.ApprovalStatusPending)},
		{&stats.Approved, db.Session(&gorm.Session{}).Where("status = ?", domain.ApprovalStatusApproved)},
		{&stats.Rejected, db.Session(&gorm.Session{}).Where("status = ?", domain.ApprovalStatusRejected)},
		{&stats.ManagerQueue, db.Session(&gorm.Session{}).Where("status = ? AND required_level = ?", domain.ApprovalStatusPending, domain.ApprovalLevelManager)},
		{&stats.DirectorQueue, db.Session(&gorm.Session{}).Where("status = ? AND required_level = ?", domain.ApprovalStatusPending, domain.ApprovalLevelDirector)},
		{&stats.ExecQueue, db.Session(&gorm.Session{}).Where("status = ? AND required_level = ?", domain.ApprovalStatusPending, domain.ApprovalLevelExecutive)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return domain.WorkflowStats{}, fmt.Errorf("failed to count approvals: %w", err)
		}
	}

	return stats, nil
}
