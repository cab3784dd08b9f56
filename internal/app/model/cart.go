package model

import (
	"time"
)

// Cart is the per-session item container. Exactly one cart exists per
// session token; the unique index backs the insert-or-fetch upsert in
// the repository.
type Cart struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SessionToken string    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Items []CartItem `gorm:"foreignKey:CartID" json:"-"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem is one (product, quantity) line within a cart. Rows are
// hard-deleted: the (cart_id, product_id) unique index must only ever
// see live rows for the add-or-increment upsert to merge correctly.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Cart    Cart    `gorm:"foreignKey:CartID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
