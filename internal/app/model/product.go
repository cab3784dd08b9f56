package model

import (
	"time"
)

// FeatureList holds the ordered feature tags shown on the product
// detail page. Stored as a JSON array in a text column.
type FeatureList []string

type Product struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	Slug        string      `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string      `gorm:"not null" json:"name"`
	PriceCents  int64       `gorm:"not null" json:"price_cents"`
	Image       string      `json:"image"`
	HoverImage  string      `json:"hover_image"`
	Description string      `gorm:"type:text" json:"description"`
	Features    FeatureList `gorm:"serializer:json;type:text" json:"features"`
	CreatedAt   time.Time   `json:"created_at"`

	// Relationships
	CartItems []CartItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ProductSummary is the projection returned by the catalog listing.
// Description and features are detail-only.
type ProductSummary struct {
	ID         uint   `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image"`
	HoverImage string `json:"hover_image"`
}

// Summary projects a product to its listing fields.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:         p.ID,
		Slug:       p.Slug,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Image:      p.Image,
		HoverImage: p.HoverImage,
	}
}
