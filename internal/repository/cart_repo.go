package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"socialmall/internal/model"
)

// CartRepository cart repository interface
type CartRepository interface {
	// Get a user's cart with items; nil if the user has no cart yet
	GetByUserID(ctx context.Context, userID uint64) (*model.Cart, error)

	// Get or create the user's cart
	GetOrCreate(ctx context.Context, userID uint64) (*model.Cart, error)

	// Add an item; quantity accumulates when the product is already
	// present with the same source post
	AddItem(ctx context.Context, cartID uint64, item *model.CartItem) error

	// Remove an item
	RemoveItem(ctx context.Context, cartID, itemID uint64) error

	// Clear all items
	Clear(ctx context.Context, cartID uint64) error
}

// cartRepository cart repository implementation
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetByUserID gets a user's cart with items
func (r *cartRepository) GetByUserID(ctx context.Context, userID uint64) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate gets or creates the user's cart
func (r *cartRepository) GetOrCreate(ctx context.Context, userID uint64) (*model.Cart, error) {
	cart, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &model.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds an item to a cart
func (r *cartRepository) AddItem(ctx context.Context, cartID uint64, item *model.CartItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.CartItem
		query := tx.Where("cart_id = ? AND product_id = ?", cartID, item.ProductID)
		if item.SourcePostID != nil {
			query = query.Where("source_post_id = ?", *item.SourcePostID)
		} else {
			query = query.Where("source_post_id IS NULL")
		}

		err := query.First(&existing).Error
		if err == nil {
			return tx.Model(&existing).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		item.CartID = cartID
		return tx.Create(item).Error
	})
}

// RemoveItem removes an item from a cart
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uint64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&model.CartItem{}).Error
}

// Clear removes all items from a cart
func (r *cartRepository) Clear(ctx context.Context, cartID uint64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
