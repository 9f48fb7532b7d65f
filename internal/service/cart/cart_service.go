package cart

import (
	"context"

	"socialmall/internal/model"
	"socialmall/internal/repository"
	"socialmall/pkg/utils"
)

// AddItemRequest add to cart request. SourcePostID records which post
// the purchase came from, which later decides the delivery reward.
type AddItemRequest struct {
	ProductID    uint64  `json:"product_id" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	SourcePostID *uint64 `json:"source_post_id"`
}

// CartService shopping cart service
type CartService interface {
	// Get the user's cart, creating it on first use
	GetCart(ctx context.Context, userID uint64) (*model.Cart, error)

	// Add a product to the cart
	AddItem(ctx context.Context, userID uint64, req *AddItemRequest) (*model.Cart, error)

	// Remove an item
	RemoveItem(ctx context.Context, userID, itemID uint64) (*model.Cart, error)

	// Remove all items
	ClearCart(ctx context.Context, userID uint64) error
}

type cartService struct {
	repos *repository.Repos
}

// NewCartService creates a cart service
func NewCartService(repos *repository.Repos) CartService {
	return &cartService{repos: repos}
}

// GetCart gets the user's cart
func (s *cartService) GetCart(ctx context.Context, userID uint64) (*model.Cart, error) {
	return s.repos.Carts.GetOrCreate(ctx, userID)
}

// AddItem adds a product to the cart, validating the product and the
// source post first
func (s *cartService) AddItem(ctx context.Context, userID uint64, req *AddItemRequest) (*model.Cart, error) {
	product, err := s.repos.Products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, utils.ErrProductUnavailable
	}

	if req.SourcePostID != nil {
		post, err := s.repos.Posts.GetByID(ctx, *req.SourcePostID)
		if err != nil {
			return nil, err
		}
		if post.ProductID != req.ProductID {
			return nil, utils.ErrInvalidParam
		}
	}

	cart, err := s.repos.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &model.CartItem{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		Price:        product.Price,
		SourcePostID: req.SourcePostID,
	}
	if err := s.repos.Carts.AddItem(ctx, cart.ID, item); err != nil {
		return nil, err
	}

	return s.repos.Carts.GetByUserID(ctx, userID)
}

// RemoveItem removes an item from the cart
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uint64) (*model.Cart, error) {
	cart, err := s.repos.Carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, utils.ErrCartEmpty
	}

	if err := s.repos.Carts.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.repos.Carts.GetByUserID(ctx, userID)
}

// ClearCart removes all items
func (s *cartService) ClearCart(ctx context.Context, userID uint64) error {
	cart, err := s.repos.Carts.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.repos.Carts.Clear(ctx, cart.ID)
}
