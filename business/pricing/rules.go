package pricing

import (
	"math"

	"pricedeck/domain"
)

// Rules is the immutable bundle of named pricing knobs. A single default
// instance is used for the lifetime of the process unless a caller overrides it.
type Rules struct {
	// Global caps
	MaxAboveMarketPct  float64 // +15% above market average
	GlobalChangeCapPct float64 // ±7% per adjustment

	// Demand
	DemandUpMin   float64
	DemandUpMax   float64
	DemandDownMax float64

	// Competition
	MarketBandLowPct  float64
	MarketBandHighPct float64
	// MatchDropFraction is configured but no cascade stage reads it; the
	// competition stage only reacts to the out-of-stock signal.
	MatchDropFraction float64
	OutOfStockBumpMin float64
	OutOfStockBumpMax float64

	// Time-based (consumed by the training generator's seasonal term)
	BusySeasonUpMin       float64
	BusySeasonUpMax       float64
	SlowSeasonDownMin     float64
	SlowSeasonDownMax     float64
	OffpeakDiscountMin    float64
	OffpeakDiscountMax    float64
	EndOfMonthExtraDiscnt float64

	// Lifecycle
	LaunchDiscount     float64
	GrowthIncrease     float64
	MaturityAdjustment float64
	DeclineDiscount    float64
}

func DefaultRules() Rules {
	return Rules{
		MaxAboveMarketPct:  0.15,
		GlobalChangeCapPct: 0.07,

		DemandUpMin:   0.05,
		DemandUpMax:   0.10,
		DemandDownMax: 0.10,

		MarketBandLowPct:  -0.10,
		MarketBandHighPct: 0.15,
		MatchDropFraction: 0.5,
		OutOfStockBumpMin: 0.05,
		OutOfStockBumpMax: 0.10,

		BusySeasonUpMin:       0.10,
		BusySeasonUpMax:       0.15,
		SlowSeasonDownMin:     0.10,
		SlowSeasonDownMax:     0.20,
		OffpeakDiscountMin:    0.02,
		OffpeakDiscountMax:    0.03,
		EndOfMonthExtraDiscnt: 0.05,

		LaunchDiscount:     0.10,
		GrowthIncrease:     0.05,
		MaturityAdjustment: 0.00,
		DeclineDiscount:    0.20,
	}
}

func clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}

func pctChange(old, new float64) float64 {
	if old == 0 {
		return 0
	}
	return (new - old) / old
}

// applyDemandAdjustment scales price up when demand runs above baseline and
// down when it runs below. The excess/deficit is clamped to [0,1].
func applyDemandAdjustment(price, demandIndex float64, r Rules) float64 {
	if demandIndex > 1.0 {
		intensity := clamp(demandIndex-1.0, 0.0, 1.0)
		uplift := r.DemandUpMin + intensity*(r.DemandUpMax-r.DemandUpMin)
		return price * (1 + uplift)
	}

	if demandIndex < 1.0 {
		intensity := clamp(1.0-demandIndex, 0.0, 1.0)
		discount := intensity * r.DemandDownMax
		return price * (1 - discount)
	}

	return price
}

func applyLifecycleAdjustment(price float64, stage Lifecycle, r Rules) float64 {
	switch stage {
	case LifecycleLaunch:
		return price * (1 - r.LaunchDiscount)
	case LifecycleGrowth:
		return price * (1 + r.GrowthIncrease)
	case LifecycleMaturity:
		return price * (1 + r.MaturityAdjustment)
	case LifecycleDecline:
		return price * (1 - r.DeclineDiscount)
	default:
		return price
	}
}

// applyCompetitionAdjustment bumps price by the midpoint of the configured
// out-of-stock band when the market is out of stock; otherwise a no-op.
func applyCompetitionAdjustment(price float64, marketOOS bool, r Rules) float64 {
	if marketOOS {
		bump := (r.OutOfStockBumpMin + r.OutOfStockBumpMax) / 2
		return price * (1 + bump)
	}

	return price
}

// enforceFloor clamps price to the tier's minimum margin over cost.
// Applied last, always.
func enforceFloor(price, cost float64, tc TierConfig) float64 {
	minPrice := cost * (1 + tc.MinMarginPct)
	return math.Max(price, minPrice)
}

// RulePrice runs the deterministic cascade for one product: demand, then
// lifecycle, then competition, then the margin floor. Order matters; each
// stage multiplies the running price.
func (r Rules) RulePrice(snap domain.ProductSnapshot) float64 {
	price := snap.BasePrice
	price = applyDemandAdjustment(price, snap.DemandIndex, r)
	price = applyLifecycleAdjustment(price, ParseLifecycle(snap.Lifecycle), r)
	price = applyCompetitionAdjustment(price, snap.MarketOOS, r)
	price = enforceFloor(price, snap.Cost, TierFor(snap.Tier))

	return price
}
