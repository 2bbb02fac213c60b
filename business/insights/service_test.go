package insights

import (
	"context"
	"testing"

	"pricedeck/domain"
)

type stubProductRepo struct {
	products []domain.Product
}

func (r *stubProductRepo) FetchAll(ctx context.Context) ([]domain.Product, error) {
	return r.products, nil
}

func TestCategoryPerformance(t *testing.T) {
	repo := &stubProductRepo{products: []domain.Product{
		// chemicals: revenue 20*10 + 10*5 = 250, margins 40% and 10%.
		{SKU: "A", ProductCategory: "chemicals", Tier: "mid", BasePrice: 20.0, Cost: 12.0, Quantity: 10},
		{SKU: "B", ProductCategory: "chemicals", Tier: "mid", BasePrice: 10.0, Cost: 9.0, Quantity: 5},
		// equipment: revenue 300*1 = 300, margin 50%.
		{SKU: "C", ProductCategory: "equipment", Tier: "high", BasePrice: 300.0, Cost: 150.0, Quantity: 1},
		// blank category groups under uncategorized.
		{SKU: "D", ProductCategory: "", Tier: "low", BasePrice: 5.0, Cost: 2.0, Quantity: 2},
	}}
	svc := NewService(repo)

	perf, err := svc.CategoryPerformance(context.Background())
	if err != nil {
		t.Fatalf("CategoryPerformance: %v", err)
	}
	if len(perf) != 3 {
		t.Fatalf("got %d categories, want 3", len(perf))
	}

	// Sorted by revenue: equipment 300, chemicals 250, uncategorized 10.
	if perf[0].Category != "equipment" || perf[1].Category != "chemicals" || perf[2].Category != "uncategorized" {
		t.Fatalf("order = %s, %s, %s", perf[0].Category, perf[1].Category, perf[2].Category)
	}

	chem := perf[1]
	if chem.Products != 2 {
		t.Errorf("chemicals products = %d, want 2", chem.Products)
	}
	if chem.Revenue != 250.0 {
		t.Errorf("chemicals revenue = %v, want 250.0", chem.Revenue)
	}
	if chem.AvgMarginPct != 25.0 {
		t.Errorf("chemicals avg margin = %v, want 25.0", chem.AvgMarginPct)
	}
	// SKU B's 10% margin is under the mid tier's 15% floor.
	if chem.BelowFloor != 1 {
		t.Errorf("chemicals below floor = %d, want 1", chem.BelowFloor)
	}
}

func TestCategoryPerformanceEmptyCatalogue(t *testing.T) {
	svc := NewService(&stubProductRepo{})

	perf, err := svc.CategoryPerformance(context.Background())
	if err != nil {
		t.Fatalf("CategoryPerformance: %v", err)
	}
	if len(perf) != 0 {
		t.Errorf("got %d categories, want 0", len(perf))
	}
}

func TestTierElasticities(t *testing.T) {
	svc := NewService(&stubProductRepo{})

	want := map[string]float64{"low": -1.8, "mid": -1.3, "high": -0.9, "premium": -0.5}
	got := svc.TierElasticities()
	if len(got) != len(want) {
		t.Fatalf("got %d tiers, want %d", len(got), len(want))
	}
	for _, e := range got {
		if want[e.Tier] != e.Elasticity {
			t.Errorf("%s elasticity = %v, want %v", e.Tier, e.Elasticity, want[e.Tier])
		}
	}

	// Callers get a copy, not the package table.
	got[0].Elasticity = 0
	if svc.TierElasticities()[0].Elasticity == 0 {
		t.Error("TierElasticities exposes internal table")
	}
}
