package domain

// ProductSnapshot is the per-product input to the pricing engine. Rows come
// out of ingestion (products joined with competitor prices and order-derived
// demand); tier/category/lifecycle stay raw strings and are resolved with
// fallbacks inside the engine, so dirty source data still prices.
type ProductSnapshot struct {
	SKU           string  `json:"sku"`
	ProductName   string  `json:"product_name"`
	BasePrice     float64 `json:"base_price"`
	Cost          float64 `json:"cost"`
	Tier          string  `json:"tier"`
	Category      string  `json:"category"`
	Lifecycle     string  `json:"lifecycle"`
	CompetitorAvg float64 `json:"competitor_avg"`
	MarketOOS     bool    `json:"market_out_of_stock"`
	DemandIndex   float64 `json:"demand_index"`
}

// SmartTag is a purely descriptive label explaining part of a recommendation.
type SmartTag struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// RuleTrace records which rule categories fired for a recommendation.
type RuleTrace struct {
	DemandAdjusted     bool `json:"demand_adj"`
	LifecycleAdjusted  bool `json:"lifecycle_adj"`
	MarketOOSAdjusted  bool `json:"market_oos_adj"`
	MarginFloorApplied bool `json:"margin_floor_applied"`
}

// Recommendation is the engine's per-product output. It is a derived snapshot
// owned by the caller; the approvals workflow persists what it needs.
type Recommendation struct {
	SKU              string     `json:"sku"`
	ProductName      string     `json:"product_name"`
	Tier             string     `json:"tier"`
	BasePrice        float64    `json:"base_price"`
	RulePrice        float64    `json:"rules_price"`
	ModelPrice       float64    `json:"ml_price"`
	RecommendedPrice float64    `json:"recommended_price"`
	ModelAdjPct      float64    `json:"ml_adjustment_pct"`
	PriceChangePct   float64    `json:"price_change_pct"`
	MarginPct        float64    `json:"margin_pct"`
	DemandIndex      float64    `json:"demand_index"`
	CompetitorAvg    float64    `json:"competitor_avg"`
	SmartTags        []SmartTag `json:"smart_tags"`
	RuleTrace        RuleTrace  `json:"rule_adjustments"`
}
