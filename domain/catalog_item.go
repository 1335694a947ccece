package domain

import (
	"time"
)

// CREATE TABLE public.catalog_items (
//     id              TEXT PRIMARY KEY,
//     name            TEXT NOT NULL,
//     genre           TEXT,
//     platform        TEXT,
//     price           NUMERIC,
//     sale_price      NUMERIC,
//     completeness    TEXT,
//     is_featured     BOOLEAN DEFAULT FALSE,
//     is_hardware     BOOLEAN DEFAULT FALSE,
//     image           TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type CatalogItem struct {
	ID           string    `gorm:"primaryKey;column:id;type:text" json:"id"`
	Name         string    `gorm:"column:name;type:text;not null" json:"name"`
	Genre        string    `gorm:"column:genre;type:text" json:"genre"`
	Platform     string    `gorm:"column:platform;type:text" json:"platform"`
	Price        float64   `gorm:"column:price;type:numeric" json:"price"`
	SalePrice    float64   `gorm:"column:sale_price;type:numeric;default:0" json:"sale_price"`
	Completeness string    `gorm:"column:completeness;type:text" json:"completeness"`
	IsFeatured   bool      `gorm:"column:is_featured;default:false" json:"is_featured"`
	IsHardware   bool      `gorm:"column:is_hardware;default:false" json:"is_hardware"`
	Image        string    `gorm:"column:image;type:text" json:"image,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}

// EffectivePrice is the sale price when a promotion is active, the base price otherwise.
func (c CatalogItem) EffectivePrice() float64 {
	if c.SalePrice > 0 && c.SalePrice < c.Price {
		return c.SalePrice
	}
	return c.Price
}

func (c CatalogItem) HasImage() bool {
	return c.Image != ""
}
