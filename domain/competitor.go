package domain

import "time"

// One row per SKU; price columns left at zero mean "not observed" and are
// back-filled from our own base price during ingestion.
type CompetitorPrice struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU              string    `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Competitor1Price float64   `gorm:"column:competitor1_price;type:numeric" json:"competitor1_price"`
	Competitor2Price float64   `gorm:"column:competitor2_price;type:numeric" json:"competitor2_price"`
	Competitor3Price float64   `gorm:"column:competitor3_price;type:numeric" json:"competitor3_price"`
	MarketOutOfStock bool      `gorm:"column:market_out_of_stock;default:false" json:"market_out_of_stock"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CompetitorPrice) TableName() string {
	return "competitor_prices"
}
