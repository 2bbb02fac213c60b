package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pricedeck/domain"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) Create(ctx context.Context, line *domain.OrderLine) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(line).Error; err != nil {
		return fmt.Errorf("failed to create order line: %w", err)
	}

	return nil
}

func (r *OrdersRepository) FindAll(ctx context.Context) ([]domain.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var lines []domain.OrderLine
	if err := r.DB.WithContext(ctx).Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to find order lines: %w", err)
	}

	return lines, nil
}

func (r *OrdersRepository) FindBySKU(ctx context.Context, sku string) ([]domain.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var lines []domain.OrderLine
	if err := r.DB.WithContext(ctx).Where("sku = ?", sku).Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to find order lines: %w", err)
	}

	return lines, nil
}

// FetchAll is the ingestion-side read; identical to FindAll.
func (r *OrdersRepository) FetchAll(ctx context.Context) ([]domain.OrderLine, error) {
	return r.FindAll(ctx)
}
