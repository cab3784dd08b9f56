package repository

import (
	"github.com/hjakub/drive-backend/internal/app/model"
	"github.com/hjakub/drive-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	FindOrCreateBySession(sessionToken string) (*model.Cart, error)
	FindItemsByCart(cartID uint) ([]model.CartItem, error)
	UpsertItem(cartID, productID uint, quantity int) error
	UpdateItemQuantity(cartID, itemID uint, quantity int) error
	DeleteItem(cartID, itemID uint) error
	DeleteItemsByCart(cartID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindOrCreateBySession resolves the cart for a session token,
// creating it on first contact. The insert rides on the unique index
// over session_token with DO NOTHING, so two concurrent first requests
// for the same token cannot produce two carts; the loser of the race
// simply re-reads the winner's row.
func (r *cartRepository) FindOrCreateBySession(sessionToken string) (*model.Cart, error) {
	cart := &model.Cart{SessionToken: sessionToken}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_token"}},
		DoNothing: true,
	}).Create(cart).Error
	if err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"session_token": sessionToken,
		})
		return nil, err
	}

	if cart.ID == 0 {
		// Conflict path: the cart already existed.
		if err := r.db.Where("session_token = ?", sessionToken).First(cart).Error; err != nil {
			logger.Error("Failed to find cart by session in database", err, map[string]interface{}{
				"session_token": sessionToken,
			})
			return nil, err
		}
	} else {
		logger.Debug("Cart created in database", map[string]interface{}{
			"cart_id":       cart.ID,
			"session_token": sessionToken,
		})
	}

	return cart, nil
}

func (r *cartRepository) FindItemsByCart(cartID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Where("cart_id = ?", cartID).
		Preload("Product").
		Order("id").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	logger.Debug("Cart items found in database", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(items),
	})
	return items, nil
}

// UpsertItem adds quantity of a product to a cart as a single atomic
// statement: insert a new row, or increment the existing row's
// quantity when the (cart_id, product_id) index reports a conflict.
// This is the merge invariant: at most one row per product per cart.
func (r *cartRepository) UpsertItem(cartID, productID uint, quantity int) error {
	item := &model.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(item).Error
	if err != nil {
		logger.Error("Failed to upsert cart item in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
			"quantity":   quantity,
		})
		return err
	}

	logger.Debug("Cart item upserted in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

// UpdateItemQuantity sets an absolute quantity. The update is scoped
// by both item id and cart id: an item id belonging to another cart
// matches zero rows and the call is a no-op.
func (r *cartRepository) UpdateItemQuantity(cartID, itemID uint, quantity int) error {
	result := r.db.Model(&model.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)
	if result.Error != nil {
		logger.Error("Failed to update cart item quantity in database", result.Error, map[string]interface{}{
			"cart_id":      cartID,
			"cart_item_id": itemID,
		})
		return result.Error
	}

	logger.Debug("Cart item quantity updated in database", map[string]interface{}{
		"cart_id":       cartID,
		"cart_item_id":  itemID,
		"quantity":      quantity,
		"rows_affected": result.RowsAffected,
	})
	return nil
}

// DeleteItem removes an item, scoped by both ids like
// UpdateItemQuantity.
func (r *cartRepository) DeleteItem(cartID, itemID uint) error {
	result := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete cart item from database", result.Error, map[string]interface{}{
			"cart_id":      cartID,
			"cart_item_id": itemID,
		})
		return result.Error
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_id":       cartID,
		"cart_item_id":  itemID,
		"rows_affected": result.RowsAffected,
	})
	return nil
}

func (r *cartRepository) DeleteItemsByCart(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Debug("Cart items deleted from database", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}
