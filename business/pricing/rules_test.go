package pricing

import (
	"math"
	"testing"

	"pricedeck/domain"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRulePriceBaseline(t *testing.T) {
	// Neutral demand, maturity stage, market in stock: the cascade should
	// hand back the base price untouched.
	snap := domain.ProductSnapshot{
		SKU:         "SKU-001",
		Tier:        "mid",
		Lifecycle:   "maturity",
		BasePrice:   10.0,
		Cost:        7.0,
		DemandIndex: 1.0,
	}

	got := DefaultRules().RulePrice(snap)
	if !almostEqual(got, 10.0, 1e-9) {
		t.Errorf("RulePrice = %v, want 10.0", got)
	}
}

func TestRulePriceMarginFloor(t *testing.T) {
	// Premium floor is 25% over cost: cost 7.00 means 8.75 minimum even
	// though the base price is below it.
	snap := domain.ProductSnapshot{
		SKU:         "SKU-002",
		Tier:        "premium",
		Lifecycle:   "maturity",
		BasePrice:   8.0,
		Cost:        7.0,
		DemandIndex: 1.0,
	}

	got := DefaultRules().RulePrice(snap)
	if !almostEqual(got, 8.75, 1e-9) {
		t.Errorf("RulePrice = %v, want 8.75", got)
	}
}

func TestRulePriceOutOfStockBump(t *testing.T) {
	// Market out of stock bumps by the midpoint of [5%, 10%], exactly 7.5%.
	snap := domain.ProductSnapshot{
		SKU:         "SKU-003",
		Tier:        "low",
		Lifecycle:   "maturity",
		BasePrice:   10.0,
		Cost:        5.0,
		DemandIndex: 1.0,
		MarketOOS:   true,
	}

	got := DefaultRules().RulePrice(snap)
	if !almostEqual(got, 10.75, 1e-9) {
		t.Errorf("RulePrice = %v, want 10.75", got)
	}
}

func TestRulePriceLifecycleStages(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		lifecycle string
		want      float64
	}{
		{"launch", 90.0},
		{"growth", 105.0},
		{"maturity", 100.0},
		{"decline", 80.0},
		{"clearance", 100.0},
		{"unheard-of stage", 100.0},
		{"", 100.0},
	}

	for _, tc := range tests {
		snap := domain.ProductSnapshot{
			Tier:        "low",
			Lifecycle:   tc.lifecycle,
			BasePrice:   100.0,
			Cost:        10.0,
			DemandIndex: 1.0,
		}

		got := rules.RulePrice(snap)
		if !almostEqual(got, tc.want, 1e-9) {
			t.Errorf("lifecycle %q: RulePrice = %v, want %v", tc.lifecycle, got, tc.want)
		}
	}
}

func TestRulePriceDemandMonotonic(t *testing.T) {
	rules := DefaultRules()

	prev := math.Inf(-1)
	for _, demand := range []float64{0.5, 0.7, 0.9, 1.0, 1.1, 1.3, 1.5} {
		snap := domain.ProductSnapshot{
			Tier:        "low",
			Lifecycle:   "maturity",
			BasePrice:   50.0,
			Cost:        10.0,
			DemandIndex: demand,
		}

		got := rules.RulePrice(snap)
		if got < prev {
			t.Errorf("demand %v: RulePrice = %v dropped below %v at lower demand", demand, got, prev)
		}
		prev = got
	}
}

func TestRulePriceDemandBands(t *testing.T) {
	rules := DefaultRules()
	snap := domain.ProductSnapshot{
		Tier:        "low",
		Lifecycle:   "maturity",
		BasePrice:   100.0,
		Cost:        10.0,
		DemandIndex: 1.5,
	}

	// Demand 1.5 sits halfway through the band: 5% + 0.5x(10%-5%) = 7.5%.
	if got := rules.RulePrice(snap); !almostEqual(got, 107.5, 1e-9) {
		t.Errorf("demand 1.5: RulePrice = %v, want 107.5", got)
	}

	// The band maximum, 10%, is only reached at demand 2.0.
	snap.DemandIndex = 2.0
	if got := rules.RulePrice(snap); !almostEqual(got, 110.0, 1e-9) {
		t.Errorf("demand 2.0: RulePrice = %v, want 110.0", got)
	}

	// Intensity clamps at 1, so demand past 2.0 adds nothing.
	snap.DemandIndex = 3.0
	if got := rules.RulePrice(snap); !almostEqual(got, 110.0, 1e-9) {
		t.Errorf("demand 3.0: RulePrice = %v, want 110.0", got)
	}

	// Full-intensity discount at demand 0.0 is the down maximum, 10%.
	snap.DemandIndex = 0.0
	if got := rules.RulePrice(snap); !almostEqual(got, 90.0, 1e-9) {
		t.Errorf("demand 0.0: RulePrice = %v, want 90.0", got)
	}

	// Barely above baseline still pays at least the minimum uplift.
	snap.DemandIndex = 1.0001
	got := rules.RulePrice(snap)
	if got < 100.0*(1+rules.DemandUpMin) {
		t.Errorf("demand 1.0001: RulePrice = %v, want at least %v", got, 100.0*(1+rules.DemandUpMin))
	}
}

func TestRulePriceDeterministic(t *testing.T) {
	rules := DefaultRules()
	snap := domain.ProductSnapshot{
		Tier:        "high",
		Lifecycle:   "growth",
		BasePrice:   199.99,
		Cost:        120.0,
		DemandIndex: 1.27,
		MarketOOS:   true,
	}

	first := rules.RulePrice(snap)
	for i := 0; i < 10; i++ {
		if got := rules.RulePrice(snap); got != first {
			t.Fatalf("RulePrice not deterministic: %v then %v", first, got)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name       string
		wantName   string
		wantMargin float64
	}{
		{"low", "low", 0.10},
		{"MID", "mid", 0.15},
		{" High ", "high", 0.20},
		{"premium", "premium", 0.25},
		{"gold", "mid", 0.15},
		{"", "mid", 0.15},
	}

	for _, tc := range tests {
		cfg := TierFor(tc.name)
		if cfg.Name != tc.wantName || cfg.MinMarginPct != tc.wantMargin {
			t.Errorf("TierFor(%q) = {%s %v}, want {%s %v}",
				tc.name, cfg.Name, cfg.MinMarginPct, tc.wantName, tc.wantMargin)
		}
	}
}
