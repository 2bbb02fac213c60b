package pricing

import (
	"testing"

	"pricedeck/domain"
)

func TestParseLifecycleFallback(t *testing.T) {
	tests := []struct {
		in   string
		want Lifecycle
	}{
		{"launch", LifecycleLaunch},
		{"GROWTH", LifecycleGrowth},
		{" decline ", LifecycleDecline},
		{"clearance", LifecycleClearance},
		{"retired", LifecycleMaturity},
		{"", LifecycleMaturity},
	}

	for _, tc := range tests {
		if got := ParseLifecycle(tc.in); got != tc.want {
			t.Errorf("ParseLifecycle(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseCategoryFallback(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"chemicals", CategoryChemicals},
		{"Equipment", CategoryEquipment},
		{"paper", CategoryPaper},
		{"Paper Products", CategoryPaper},
		{"snacks", CategoryOther},
		{"", CategoryOther},
	}

	for _, tc := range tests {
		if got := ParseCategory(tc.in); got != tc.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBuildFeatureVector(t *testing.T) {
	snap := domain.ProductSnapshot{
		BasePrice:     50.0,
		Tier:          "high",
		Category:      "paper",
		Lifecycle:     "growth",
		CompetitorAvg: 40.0,
		MarketOOS:     true,
		DemandIndex:   1.2,
	}

	x := buildFeatureVector(snap)

	if x[featBasePrice] != 50.0 {
		t.Errorf("base_price = %v, want 50.0", x[featBasePrice])
	}
	if x[featTier] != float64(TierHigh) {
		t.Errorf("tier = %v, want %v", x[featTier], float64(TierHigh))
	}
	if x[featCategory] != float64(CategoryPaper) {
		t.Errorf("category = %v, want %v", x[featCategory], float64(CategoryPaper))
	}
	if x[featLifecycle] != float64(LifecycleGrowth) {
		t.Errorf("lifecycle = %v, want %v", x[featLifecycle], float64(LifecycleGrowth))
	}
	if x[featPriceVsCompetitor] != 1.25 {
		t.Errorf("price_vs_competitor = %v, want 1.25", x[featPriceVsCompetitor])
	}
	if x[featMarketOOS] != 1.0 {
		t.Errorf("market_oos = %v, want 1.0", x[featMarketOOS])
	}
}

func TestBuildFeatureVectorNoCompetitor(t *testing.T) {
	snap := domain.ProductSnapshot{
		BasePrice:   20.0,
		Tier:        "low",
		DemandIndex: 1.0,
	}

	x := buildFeatureVector(snap)
	if x[featPriceVsCompetitor] != 1.0 {
		t.Errorf("price_vs_competitor = %v, want neutral 1.0 without competitor data", x[featPriceVsCompetitor])
	}
}
