package pricing

import (
	"strings"

	"pricedeck/domain"
)

const featureDim = 8

// Feature vector layout, fixed across training and inference.
const (
	featBasePrice = iota
	featTier
	featCategory
	featLifecycle
	featCompetitorAvg
	featPriceVsCompetitor
	featMarketOOS
	featDemandIndex
)

var featureNames = [featureDim]string{
	"base_price",
	"tier",
	"category",
	"lifecycle",
	"competitor_avg",
	"price_vs_competitor",
	"market_oos",
	"demand_index",
}

// Lifecycle is a product's position in its sales lifecycle.
type Lifecycle int

const (
	LifecycleLaunch Lifecycle = iota
	LifecycleGrowth
	LifecycleMaturity
	LifecycleDecline
	LifecycleClearance
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleLaunch:
		return "launch"
	case LifecycleGrowth:
		return "growth"
	case LifecycleDecline:
		return "decline"
	case LifecycleClearance:
		return "clearance"
	default:
		return "maturity"
	}
}

// ParseLifecycle resolves a raw stage label case-insensitively. Unknown or
// empty stages fall back to maturity, which every consumer treats as a no-op.
func ParseLifecycle(s string) Lifecycle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "launch":
		return LifecycleLaunch
	case "growth":
		return LifecycleGrowth
	case "maturity":
		return LifecycleMaturity
	case "decline":
		return LifecycleDecline
	case "clearance":
		return LifecycleClearance
	default:
		return LifecycleMaturity
	}
}

// Category is the coarse product family the model trains on. Free-text
// source categories outside the known set encode as "other".
type Category int

const (
	CategoryChemicals Category = iota
	CategoryEquipment
	CategoryPaper
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryChemicals:
		return "chemicals"
	case CategoryEquipment:
		return "equipment"
	case CategoryPaper:
		return "paper"
	default:
		return "other"
	}
}

func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chemicals":
		return CategoryChemicals
	case "equipment":
		return CategoryEquipment
	case "paper", "paper products":
		return CategoryPaper
	default:
		return CategoryOther
	}
}

// buildFeatureVector encodes one snapshot for the regressor. Categorical
// fields go through the explicit parse fallbacks above, so an unseen label
// never fails; a zero competitor average yields a neutral price ratio.
func buildFeatureVector(snap domain.ProductSnapshot) [featureDim]float64 {
	priceVsComp := 1.0
	if snap.CompetitorAvg > 0 {
		priceVsComp = snap.BasePrice / snap.CompetitorAvg
	}

	oos := 0.0
	if snap.MarketOOS {
		oos = 1.0
	}

	var x [featureDim]float64
	x[featBasePrice] = snap.BasePrice
	x[featTier] = float64(ParseTier(snap.Tier))
	x[featCategory] = float64(ParseCategory(snap.Category))
	x[featLifecycle] = float64(ParseLifecycle(snap.Lifecycle))
	x[featCompetitorAvg] = snap.CompetitorAvg
	x[featPriceVsCompetitor] = priceVsComp
	x[featMarketOOS] = oos
	x[featDemandIndex] = snap.DemandIndex

	return x
}
