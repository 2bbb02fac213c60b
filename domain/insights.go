package domain

type CategoryPerformance struct {
	Category     string  `json:"category"`
	Products     int     `json:"products"`
	Revenue      float64 `json:"revenue"`
	AvgMarginPct float64 `json:"avg_margin_pct"`
	BelowFloor   int     `json:"below_floor"`
}

type TierElasticity struct {
	Tier       string  `json:"tier"`
	Elasticity float64 `json:"elasticity"`
}
