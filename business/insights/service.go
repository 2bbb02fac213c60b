package insights

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"pricedeck/business/pricing"
	"pricedeck/domain"
)

// Reference price elasticities per tier, from historical category studies.
// Premium demand barely moves with price; low-tier demand is very sensitive.
var tierElasticities = []domain.TierElasticity{
	{Tier: "low", Elasticity: -1.8},
	{Tier: "mid", Elasticity: -1.3},
	{Tier: "high", Elasticity: -0.9},
	{Tier: "premium", Elasticity: -0.5},
}

type ProductRepository interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
}

type Service struct {
	productRepo ProductRepository
}

func NewService(productRepo ProductRepository) *Service {
	return &Service{productRepo: productRepo}
}

// CategoryPerformance aggregates the catalogue per category: product count,
// revenue at base price, mean margin, and how many products sit under their
// tier's margin floor. Categories come back sorted by revenue, highest first.
func (s *Service) CategoryPerformance(ctx context.Context) ([]domain.CategoryPerformance, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	type agg struct {
		products   int
		revenue    float64
		marginSum  float64
		belowFloor int
	}
	byCategory := make(map[string]*agg)

	for _, p := range products {
		category := strings.TrimSpace(p.ProductCategory)
		if category == "" {
			category = "uncategorized"
		}

		a := byCategory[category]
		if a == nil {
			a = &agg{}
			byCategory[category] = a
		}

		a.products++
		a.revenue += p.BasePrice * p.Quantity

		if p.BasePrice > 0 {
			marginPct := (p.BasePrice - p.Cost) / p.BasePrice * 100
			a.marginSum += marginPct
			if marginPct < pricing.TierFor(p.Tier).MinMarginPct*100 {
				a.belowFloor++
			}
		}
	}

	out := make([]domain.CategoryPerformance, 0, len(byCategory))
	for category, a := range byCategory {
		avgMargin := 0.0
		if a.products > 0 {
			avgMargin = a.marginSum / float64(a.products)
		}

		out = append(out, domain.CategoryPerformance{
			Category:     category,
			Products:     a.products,
			Revenue:      math.Round(a.revenue*100) / 100,
			AvgMarginPct: math.Round(avgMargin*10) / 10,
			BelowFloor:   a.belowFloor,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})

	return out, nil
}

// TierElasticities returns the static elasticity reference table.
func (s *Service) TierElasticities() []domain.TierElasticity {
	out := make([]domain.TierElasticity, len(tierElasticities))
	copy(out, tierElasticities)
	return out
}
