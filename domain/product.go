package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id                BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     sku               TEXT UNIQUE NOT NULL,
//     product_name      TEXT,
//     product_category  TEXT,
//     tier              TEXT,
//     product_lifecycle TEXT,
//     base_price        NUMERIC,
//     cost              NUMERIC,
//     quantity          NUMERIC,
//     created_at        TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU             string    `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	ProductName     string    `gorm:"column:product_name;type:text" json:"product_name"`
	ProductCategory string    `gorm:"column:product_category;type:text" json:"product_category"`
	Tier            string    `gorm:"column:tier;type:text" json:"tier"`
	Lifecycle       string    `gorm:"column:product_lifecycle;type:text" json:"product_lifecycle"`
	BasePrice       float64   `gorm:"column:base_price;type:numeric" json:"base_price"`
	Cost            float64   `gorm:"column:cost;type:numeric" json:"cost"`
	Quantity        float64   `gorm:"column:quantity;type:numeric" json:"quantity"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
