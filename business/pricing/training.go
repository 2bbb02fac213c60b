package pricing

import (
	"math/rand"

	"pricedeck/domain"
)

// Synthetic training data for the adjustment model. Targets encode the same
// business effects as the rule cascade (demand, lifecycle, season,
// out-of-stock) plus Gaussian noise, so the trained model approximates the
// rules rather than diverging from them. A fixed seed keeps training
// reproducible for a given sample count.

type sample struct {
	x [featureDim]float64
	y float64
}

const (
	trainingNoiseStdDev = 0.02
	targetAdjustmentMin = -0.30
	targetAdjustmentMax = 0.25
)

var (
	trainingTiers      = []Tier{TierLow, TierMid, TierHigh}
	trainingCategories = []Category{CategoryChemicals, CategoryEquipment, CategoryPaper, CategoryOther}

	// ternary seasonal factor: neutral, busy-season bump, slow-season cut
	seasonFactors = []float64{0, 0.125, -0.15}
)

// weighted lifecycle draw: launch 10%, growth 20%, maturity 50%, decline 20%
func sampleLifecycle(rng *rand.Rand) Lifecycle {
	p := rng.Float64()
	switch {
	case p < 0.1:
		return LifecycleLaunch
	case p < 0.3:
		return LifecycleGrowth
	case p < 0.8:
		return LifecycleMaturity
	default:
		return LifecycleDecline
	}
}

func sampleBasePrice(rng *rand.Rand, tier Tier) float64 {
	switch tier {
	case TierLow:
		return uniform(rng, 1, 20)
	case TierMid:
		return uniform(rng, 10, 100)
	default:
		return uniform(rng, 50, 500)
	}
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

func generateTrainingData(n int, seed int64, r Rules) []sample {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]sample, 0, n)

	for i := 0; i < n; i++ {
		tier := trainingTiers[rng.Intn(len(trainingTiers))]
		category := trainingCategories[rng.Intn(len(trainingCategories))]
		lifecycle := sampleLifecycle(rng)

		basePrice := sampleBasePrice(rng, tier)
		competitorAvg := basePrice * uniform(rng, 0.85, 1.15)
		demandIndex := uniform(rng, 0.5, 1.5)
		seasonFactor := seasonFactors[rng.Intn(len(seasonFactors))]
		marketOOS := rng.Float64() < 0.3

		adjustment := 0.0

		if demandIndex > 1.0 {
			adjustment += (demandIndex - 1.0) * r.DemandUpMax
		} else if demandIndex < 1.0 {
			adjustment -= (1.0 - demandIndex) * r.DemandDownMax
		}

		switch lifecycle {
		case LifecycleLaunch:
			adjustment -= r.LaunchDiscount
		case LifecycleGrowth:
			adjustment += r.GrowthIncrease
		case LifecycleDecline:
			adjustment -= r.DeclineDiscount
		}

		adjustment += seasonFactor

		if marketOOS {
			adjustment += (r.OutOfStockBumpMin + r.OutOfStockBumpMax) / 2
		}

		adjustment += rng.NormFloat64() * trainingNoiseStdDev
		adjustment = clamp(adjustment, targetAdjustmentMin, targetAdjustmentMax)

		x := buildFeatureVector(domain.ProductSnapshot{
			BasePrice:     basePrice,
			Tier:          tier.String(),
			Category:      category.String(),
			Lifecycle:     lifecycle.String(),
			CompetitorAvg: competitorAvg,
			MarketOOS:     marketOOS,
			DemandIndex:   demandIndex,
		})

		samples = append(samples, sample{x: x, y: adjustment})
	}

	return samples
}
