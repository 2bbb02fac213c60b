package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pricedeck/domain"
)

type CompetitorRepository struct {
	DB *gorm.DB
}

func NewCompetitorRepository(db *gorm.DB) *CompetitorRepository {
	return &CompetitorRepository{
		DB: db,
	}
}

func (r *CompetitorRepository) Create(ctx context.Context, price *domain.CompetitorPrice) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(price).Error; err != nil {
		return fmt.Errorf("failed to create competitor price: %w", err)
	}

	return nil
}

func (r *CompetitorRepository) FindByID(ctx context.Context, id uint64) (domain.CompetitorPrice, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompetitorPrice{}, fmt.Errorf("context error: %w", err)
	}

	var price domain.CompetitorPrice

	err := r.DB.WithContext(ctx).First(&price, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CompetitorPrice{}, errors.New("competitor price not found")
		}
		return domain.CompetitorPrice{}, fmt.Errorf("failed to find competitor price: %w", err)
	}

	return price, nil
}

func (r *CompetitorRepository) FindBySKU(ctx context.Context, sku string) (domain.CompetitorPrice, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompetitorPrice{}, fmt.Errorf("context error: %w", err)
	}

	var price domain.CompetitorPrice

	err := r.DB.WithContext(ctx).Where("sku = ?", sku).First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CompetitorPrice{}, errors.New("competitor price not found")
		}
		return domain.CompetitorPrice{}, fmt.Errorf("failed to find competitor price: %w", err)
	}

	return price, nil
}

func (r *CompetitorRepository) FindAll(ctx context.Context) ([]domain.CompetitorPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var prices []domain.CompetitorPrice
	err := r.DB.WithContext(ctx).Find(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find competitor prices: %w", err)
	}

	return prices, nil
}

func (r *CompetitorRepository) Update(ctx context.Context, price *domain.CompetitorPrice) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"sku":                 price.SKU,
		"competitor1_price":   price.Competitor1Price,
		"competitor2_price":   price.Competitor2Price,
		"competitor3_price":   price.Competitor3Price,
		"market_out_of_stock": price.MarketOutOfStock,
	}

	result := r.DB.WithContext(ctx).Model(&domain.CompetitorPrice{}).Where("id = ?", price.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update competitor price: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("competitor price not found or already deleted")
	}

	return nil
}

func (r *CompetitorRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.CompetitorPrice{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete competitor price: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("competitor price not found or already deleted")
	}

	return nil
}

// FetchAll is the ingestion-side read; identical to FindAll.
func (r *CompetitorRepository) FetchAll(ctx context.Context) ([]domain.CompetitorPrice, error) {
	return r.FindAll(ctx)
}

// UpsertBySKU inserts or overwrites a competitor row keyed by SKU, used by
// CSV import.
func (r *CompetitorRepository) UpsertBySKU(ctx context.Context, price *domain.CompetitorPrice) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"competitor1_price", "competitor2_price", "competitor3_price",
			"market_out_of_stock",
		}),
	}).Create(price).Error
	if err != nil {
		return fmt.Errorf("failed to upsert competitor price: %w", err)
	}

	return nil
}
