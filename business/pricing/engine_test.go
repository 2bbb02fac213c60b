package pricing

import (
	"math"
	"math/rand"
	"testing"

	"pricedeck/domain"
)

// Small training set keeps the fixtures fast; the kernel behaves the same.
const testTrainingSamples = 400

func newTestEngine(t *testing.T, mlWeight float64) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	cfg.MLWeight = mlWeight
	cfg.TrainingSamples = testTrainingSamples

	engine := NewEngine(cfg)
	if err := engine.Train(); err != nil {
		t.Fatalf("Train: %v", err)
	}

	return engine
}

func randomSnapshot(r *rand.Rand) domain.ProductSnapshot {
	tiers := []string{"low", "mid", "high", "premium"}
	stages := []string{"launch", "growth", "maturity", "decline", "clearance"}
	categories := []string{"chemicals", "equipment", "paper", "other"}

	base := 1.0 + r.Float64()*499.0
	return domain.ProductSnapshot{
		SKU:           "SKU-RND",
		Tier:          tiers[r.Intn(len(tiers))],
		Category:      categories[r.Intn(len(categories))],
		Lifecycle:     stages[r.Intn(len(stages))],
		BasePrice:     base,
		Cost:          base * (0.4 + r.Float64()*0.5),
		CompetitorAvg: base * (0.8 + r.Float64()*0.4),
		MarketOOS:     r.Intn(4) == 0,
		DemandIndex:   0.5 + r.Float64(),
	}
}

func TestRecommendMarginFloorInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for _, w := range []float64{0.0, 0.5, 1.0} {
		engine := newTestEngine(t, w)

		for i := 0; i < 200; i++ {
			snap := randomSnapshot(r)

			rec, err := engine.Recommend(snap)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}

			minPrice := snap.Cost * (1 + TierFor(snap.Tier).MinMarginPct)
			if rec.RecommendedPrice+1e-9 < minPrice {
				t.Errorf("w=%v tier=%s: recommended %.4f below floor %.4f (cost %.4f)",
					w, snap.Tier, rec.RecommendedPrice, minPrice, snap.Cost)
			}
		}
	}
}

func TestRecommendPureRulesWeight(t *testing.T) {
	engine := newTestEngine(t, 0.0)

	snap := domain.ProductSnapshot{
		SKU:         "SKU-010",
		Tier:        "low",
		Lifecycle:   "maturity",
		BasePrice:   100.0,
		Cost:        10.0,
		DemandIndex: 1.4,
	}

	rec, err := engine.Recommend(snap)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	// Demand 1.4 uplift is exactly 7%; with zero model weight the blend
	// must reproduce the rule price.
	if !almostEqual(rec.RecommendedPrice, 107.00, 0.011) {
		t.Errorf("RecommendedPrice = %v, want 107.00", rec.RecommendedPrice)
	}
	if rec.RulePrice != 107.00 {
		t.Errorf("RulePrice = %v, want 107.00", rec.RulePrice)
	}
}

func TestRecommendPureModelWeight(t *testing.T) {
	engine := newTestEngine(t, 1.0)

	snap := domain.ProductSnapshot{
		SKU:           "SKU-011",
		Tier:          "mid",
		Category:      "equipment",
		Lifecycle:     "growth",
		BasePrice:     80.0,
		Cost:          20.0,
		CompetitorAvg: 82.0,
		DemandIndex:   1.1,
	}

	adj, err := engine.PredictAdjustment(snap)
	if err != nil {
		t.Fatalf("PredictAdjustment: %v", err)
	}

	rec, err := engine.Recommend(snap)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	want := snap.BasePrice * (1 + adj)
	floor := snap.Cost * (1 + TierFor(snap.Tier).MinMarginPct)
	if want < floor {
		want = floor
	}
	if !almostEqual(rec.RecommendedPrice, want, 0.011) {
		t.Errorf("RecommendedPrice = %v, want %v (model adj %v)", rec.RecommendedPrice, want, adj)
	}
}

func TestRecommendZeroBasePrice(t *testing.T) {
	engine := newTestEngine(t, 0.5)

	snap := domain.ProductSnapshot{
		SKU:         "SKU-012",
		Tier:        "mid",
		Lifecycle:   "maturity",
		BasePrice:   0.0,
		Cost:        10.0,
		DemandIndex: 1.0,
	}

	rec, err := engine.Recommend(snap)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	minPrice := 10.0 * 1.15
	if rec.RecommendedPrice+1e-9 < minPrice {
		t.Errorf("RecommendedPrice = %v, want at least %v", rec.RecommendedPrice, minPrice)
	}
	if !rec.RuleTrace.MarginFloorApplied {
		t.Error("MarginFloorApplied = false, want true for zero base price")
	}
	if math.IsNaN(rec.PriceChangePct) || math.IsInf(rec.PriceChangePct, 0) {
		t.Errorf("PriceChangePct = %v, want finite", rec.PriceChangePct)
	}
}

func TestRecommendFloorFlagAfterRounding(t *testing.T) {
	engine := newTestEngine(t, 0.0)

	// Base sits a fraction of a cent above the floor (8.698 * 1.15 = 10.0027),
	// so rounding to cents dips below it and the post-rounding bump kicks in.
	// The trace flag has to report that bump.
	snap := domain.ProductSnapshot{
		SKU:         "SKU-014",
		Tier:        "mid",
		Lifecycle:   "maturity",
		BasePrice:   10.004,
		Cost:        8.698,
		DemandIndex: 1.0,
	}

	rec, err := engine.Recommend(snap)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	minPrice := snap.Cost * (1 + TierFor(snap.Tier).MinMarginPct)
	if rec.RecommendedPrice < minPrice {
		t.Errorf("RecommendedPrice = %v, want at least %v", rec.RecommendedPrice, minPrice)
	}
	if rec.RecommendedPrice != 10.01 {
		t.Errorf("RecommendedPrice = %v, want 10.01", rec.RecommendedPrice)
	}
	if !rec.RuleTrace.MarginFloorApplied {
		t.Error("MarginFloorApplied = false, want true when rounding hits the floor")
	}
}

func TestRecommendUnknownTierActsAsMid(t *testing.T) {
	engine := newTestEngine(t, 0.5)

	base := domain.ProductSnapshot{
		SKU:           "SKU-013",
		Tier:          "mid",
		Category:      "paper",
		Lifecycle:     "maturity",
		BasePrice:     42.0,
		Cost:          25.0,
		CompetitorAvg: 44.0,
		DemandIndex:   1.05,
	}
	unknown := base
	unknown.Tier = "platinum"

	gotBase, err := engine.Recommend(base)
	if err != nil {
		t.Fatalf("Recommend(mid): %v", err)
	}
	gotUnknown, err := engine.Recommend(unknown)
	if err != nil {
		t.Fatalf("Recommend(platinum): %v", err)
	}

	if gotBase.RecommendedPrice != gotUnknown.RecommendedPrice {
		t.Errorf("unknown tier price %v differs from mid %v",
			gotUnknown.RecommendedPrice, gotBase.RecommendedPrice)
	}
	if gotUnknown.Tier != "mid" {
		t.Errorf("Tier = %q, want mid fallback", gotUnknown.Tier)
	}
}

func TestRecommendDeterministicAcrossEngines(t *testing.T) {
	a := newTestEngine(t, 0.5)
	b := newTestEngine(t, 0.5)

	r := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		snap := randomSnapshot(r)

		ra, err := a.Recommend(snap)
		if err != nil {
			t.Fatalf("Recommend a: %v", err)
		}
		rb, err := b.Recommend(snap)
		if err != nil {
			t.Fatalf("Recommend b: %v", err)
		}

		if ra.RecommendedPrice != rb.RecommendedPrice {
			t.Fatalf("same seed engines disagree: %v vs %v", ra.RecommendedPrice, rb.RecommendedPrice)
		}
	}
}

func TestNewEngineClampsWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MLWeight = 1.7
	if got := NewEngine(cfg).MLWeight(); got != 1.0 {
		t.Errorf("MLWeight = %v, want 1.0", got)
	}

	cfg.MLWeight = -0.3
	if got := NewEngine(cfg).MLWeight(); got != 0.0 {
		t.Errorf("MLWeight = %v, want 0.0", got)
	}
}
