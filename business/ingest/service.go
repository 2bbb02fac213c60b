package ingest

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

// Defaults applied when source data is incomplete.
const (
	defaultCostRatio   = 0.70
	defaultDemandIndex = 1.0

	demandIndexMin = 0.5
	demandIndexMax = 1.5
)

type ProductRepository interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
	FetchBySKU(ctx context.Context, sku string) (domain.Product, error)
	UpsertBySKU(ctx context.Context, product *domain.Product) error
}

type CompetitorRepository interface {
	FetchAll(ctx context.Context) ([]domain.CompetitorPrice, error)
	UpsertBySKU(ctx context.Context, price *domain.CompetitorPrice) error
}

type OrderRepository interface {
	FetchAll(ctx context.Context) ([]domain.OrderLine, error)
	Create(ctx context.Context, line *domain.OrderLine) error
}

// Service joins products, competitor prices and order volume into the
// snapshot rows the pricing engine consumes, and handles CSV imports.
type Service struct {
	productRepo    ProductRepository
	competitorRepo CompetitorRepository
	orderRepo      OrderRepository
}

func NewService(productRepo ProductRepository, competitorRepo CompetitorRepository, orderRepo OrderRepository) *Service {
	return &Service{
		productRepo:    productRepo,
		competitorRepo: competitorRepo,
		orderRepo:      orderRepo,
	}
}

// BuildSnapshots joins the full product set. Products missing competitor or
// order data still produce a snapshot with the documented defaults.
func (s *Service) BuildSnapshots(ctx context.Context) ([]domain.ProductSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	competitors, err := s.competitorsBySKU(ctx)
	if err != nil {
		return nil, err
	}

	demand, err := s.demandIndexBySKU(ctx)
	if err != nil {
		return nil, err
	}

	snaps := make([]domain.ProductSnapshot, 0, len(products))
	for _, p := range products {
		snaps = append(snaps, buildSnapshot(p, competitors[p.SKU], demand[p.SKU]))
	}

	return snaps, nil
}

// BuildSnapshot joins a single product by SKU.
func (s *Service) BuildSnapshot(ctx context.Context, sku string) (domain.ProductSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProductSnapshot{}, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FetchBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductSnapshot{}, ErrProductNotFound
		}
		return domain.ProductSnapshot{}, fmt.Errorf("fetch product: %w", err)
	}

	competitors, err := s.competitorsBySKU(ctx)
	if err != nil {
		return domain.ProductSnapshot{}, err
	}

	demand, err := s.demandIndexBySKU(ctx)
	if err != nil {
		return domain.ProductSnapshot{}, err
	}

	return buildSnapshot(product, competitors[sku], demand[sku]), nil
}

func (s *Service) competitorsBySKU(ctx context.Context) (map[string]domain.CompetitorPrice, error) {
	rows, err := s.competitorRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch competitor prices: %w", err)
	}

	out := make(map[string]domain.CompetitorPrice, len(rows))
	for _, row := range rows {
		out[row.SKU] = row
	}

	return out, nil
}

// demandIndexBySKU turns order volume into a demand index per SKU:
// clamp(0.5 + qty/maxQty, 0.5, 1.5). SKUs without orders get the neutral 1.0
// via the zero map lookup handled in buildSnapshot.
func (s *Service) demandIndexBySKU(ctx context.Context) (map[string]float64, error) {
	lines, err := s.orderRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch order lines: %w", err)
	}

	qty := make(map[string]float64)
	maxQty := 0.0
	for _, line := range lines {
		qty[line.SKU] += line.Quantity
		if qty[line.SKU] > maxQty {
			maxQty = qty[line.SKU]
		}
	}

	out := make(map[string]float64, len(qty))
	if maxQty <= 0 {
		return out, nil
	}

	for sku, q := range qty {
		out[sku] = clamp(demandIndexMin+q/maxQty, demandIndexMin, demandIndexMax)
	}

	return out, nil
}

func buildSnapshot(p domain.Product, comp domain.CompetitorPrice, demandIndex float64) domain.ProductSnapshot {
	cost := p.Cost
	if cost <= 0 {
		cost = p.BasePrice * defaultCostRatio
	}

	if demandIndex == 0 {
		demandIndex = defaultDemandIndex
	}

	competitorAvg := competitorAverage(comp)
	if competitorAvg <= 0 {
		competitorAvg = p.BasePrice
	}

	return domain.ProductSnapshot{
		SKU:           p.SKU,
		ProductName:   p.ProductName,
		BasePrice:     p.BasePrice,
		Cost:          cost,
		Tier:          p.Tier,
		Category:      p.ProductCategory,
		Lifecycle:     p.Lifecycle,
		CompetitorAvg: competitorAvg,
		MarketOOS:     comp.MarketOutOfStock,
		DemandIndex:   demandIndex,
	}
}

// competitorAverage means only the observed (positive) competitor prices.
func competitorAverage(comp domain.CompetitorPrice) float64 {
	sum, n := 0.0, 0
	for _, price := range []float64{comp.Competitor1Price, comp.Competitor2Price, comp.Competitor3Price} {
		if price > 0 {
			sum += price
			n++
		}
	}

	if n == 0 {
		return 0
	}

	return sum / float64(n)
}

func clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}

func logImport(kind string, imported, skipped int) {
	logger.Info("csv import finished",
		"kind", kind,
		"imported", imported,
		"skipped", skipped,
	)
}
