package orders

import (
	"context"
	"errors"
	"fmt"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

// OrderRepository contract interface
type OrderRepository interface {
	Create(ctx context.Context, line *domain.OrderLine) error
	FindAll(ctx context.Context) ([]domain.OrderLine, error)
	FindBySKU(ctx context.Context, sku string) ([]domain.OrderLine, error)
}

type ordersService struct {
	orderRepo OrderRepository
}

func NewOrdersService(orderRepo OrderRepository) *ordersService {
	return &ordersService{
		orderRepo: orderRepo,
	}
}

func (s *ordersService) GetAllOrderLines(ctx context.Context) ([]domain.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all order lines")
		return nil, fmt.Errorf("context error: %w", err)
	}

	lines, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all order lines", err)
		return nil, err
	}

	return lines, nil
}

func (s *ordersService) GetOrderLinesBySKU(ctx context.Context, sku string) ([]domain.OrderLine, error) {
	if sku == "" {
		logger.Error("invalid order sku")
		return nil, errors.New("invalid order sku")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get order lines by sku")
		return nil, fmt.Errorf("context error: %w", err)
	}

	lines, err := s.orderRepo.FindBySKU(ctx, sku)
	if err != nil {
		logger.Error("failed to find order lines by sku", err)
		return nil, err
	}

	return lines, nil
}

func (s *ordersService) CreateOrderLine(ctx context.Context, line *domain.OrderLine) (*domain.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create order line")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if line.SKU == "" {
		logger.Error("Invalid order data: sku is required")
		return nil, errors.New("sku is required")
	}

	if line.Quantity <= 0 {
		logger.Error("Invalid order data: quantity must be greater than 0")
		return nil, errors.New("quantity must be greater than 0")
	}

	if line.PriceEach < 0 {
		logger.Error("Invalid order data: price cannot be negative")
		return nil, errors.New("price cannot be negative")
	}

	if err := s.orderRepo.Create(ctx, line); err != nil {
		logger.Error("failed to create order line", err)
		return nil, fmt.Errorf("failed to create order line: %w", err)
	}

	logger.Info("order line created successfully", "sku", line.SKU)

	return line, nil
}
