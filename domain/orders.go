package domain

import "time"

// OrderLine is a single sold line item. Order volume per SKU drives the
// demand index during ingestion.
type OrderLine struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU       string    `gorm:"column:sku;index;not null" json:"sku"`
	Quantity  float64   `gorm:"column:quantity;type:numeric" json:"quantity"`
	PriceEach float64   `gorm:"column:price_each;type:numeric" json:"price_each"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}
