package competitor

import (
	"context"
	"errors"
	"fmt"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

// CompetitorRepository contract interface
type CompetitorRepository interface {
	Create(ctx context.Context, price *domain.CompetitorPrice) error
	FindByID(ctx context.Context, id uint64) (domain.CompetitorPrice, error)
	FindBySKU(ctx context.Context, sku string) (domain.CompetitorPrice, error)
	FindAll(ctx context.Context) ([]domain.CompetitorPrice, error)
	Update(ctx context.Context, price *domain.CompetitorPrice) error
	Delete(ctx context.Context, id uint64) error
}

type competitorService struct {
	competitorRepo CompetitorRepository
}

func NewCompetitorService(competitorRepo CompetitorRepository) *competitorService {
	return &competitorService{
		competitorRepo: competitorRepo,
	}
}

func (s *competitorService) GetAllCompetitorPrices(ctx context.Context) ([]domain.CompetitorPrice, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all competitor prices")
		return nil, fmt.Errorf("context error: %w", err)
	}

	prices, err := s.competitorRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all competitor prices", err)
		return nil, err
	}

	return prices, nil
}

func (s *competitorService) GetCompetitorPriceBySKU(ctx context.Context, sku string) (domain.CompetitorPrice, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get competitor price by sku")
		return domain.CompetitorPrice{}, fmt.Errorf("context error: %w", err)
	}

	if sku == "" {
		logger.Error("Invalid competitor price sku")
		return domain.CompetitorPrice{}, errors.New("invalid competitor price sku")
	}

	price, err := s.competitorRepo.FindBySKU(ctx, sku)
	if err != nil {
		logger.Error("failed to find competitor price", err)
		return domain.CompetitorPrice{}, err
	}

	return price, nil
}

func (s *competitorService) CreateCompetitorPrice(ctx context.Context, price *domain.CompetitorPrice) (*domain.CompetitorPrice, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create competitor price")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if price.SKU == "" {
		logger.Error("Invalid competitor price data: sku is required")
		return nil, errors.New("sku is required")
	}

	if price.Competitor1Price < 0 || price.Competitor2Price < 0 || price.Competitor3Price < 0 {
		logger.Error("Invalid competitor price data: prices cannot be negative")
		return nil, errors.New("competitor prices cannot be negative")
	}

	if err := s.competitorRepo.Create(ctx, price); err != nil {
		logger.Error("failed to create new competitor price", err)
		return nil, fmt.Errorf("failed to create competitor price: %w", err)
	}

	logger.Info("competitor price created successfully", "sku", price.SKU)

	return price, nil
}

func (s *competitorService) UpdateCompetitorPrice(ctx context.Context, price *domain.CompetitorPrice) (*domain.CompetitorPrice, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating competitor price")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if price.ID == 0 {
		logger.Error("Invalid competitor price data: ID is required")
		return nil, errors.New("competitor price ID is required")
	}

	if price.Competitor1Price < 0 || price.Competitor2Price < 0 || price.Competitor3Price < 0 {
		logger.Error("Invalid competitor price data: prices cannot be negative")
		return nil, errors.New("competitor prices cannot be negative")
	}

	// Verify competitor price exists
	_, err := s.competitorRepo.FindByID(ctx, price.ID)
	if err != nil {
		logger.Error("competitor price not found", err)
		return nil, errors.New("competitor price not found")
	}

	if err := s.competitorRepo.Update(ctx, price); err != nil {
		logger.Error("failed to update competitor price", err)
		return nil, fmt.Errorf("failed to update competitor price: %w", err)
	}

	// Get updated row from database
	updatedPrice, err := s.competitorRepo.FindByID(ctx, price.ID)
	if err != nil {
		logger.Error("failed to fetch updated competitor price", err)
		return nil, fmt.Errorf("failed to fetch updated competitor price: %w", err)
	}

	logger.Info("competitor price updated successfully", "sku", updatedPrice.SKU)

	return &updatedPrice, nil
}

func (s *competitorService) DeleteCompetitorPrice(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid competitor price id when deleting")
		return errors.New("invalid competitor price id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting competitor price")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify competitor price exists
	_, err := s.competitorRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("competitor price not found", err)
		return errors.New("competitor price not found")
	}

	if err := s.competitorRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete competitor price", err)
		return fmt.Errorf("failed to delete competitor price: %w", err)
	}

	logger.Info("competitor price deleted successfully")

	return nil
}
