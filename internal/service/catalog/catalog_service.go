package catalog

import (
	"context"

	"socialmall/internal/cache"
	"socialmall/internal/model"
	"socialmall/internal/repository"
	"socialmall/pkg/log"
	"socialmall/pkg/utils"
)

// CreateProductRequest create product request
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	Category    string   `json:"category" binding:"max=50"`
	Images      []string `json:"images"`
	Price       int64    `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest update product request; nil fields are left as is
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
	Images      []string `json:"images"`
	Price       *int64   `json:"price" binding:"omitempty,gt=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Status      *int8    `json:"status" binding:"omitempty,oneof=1 2"`
}

// CatalogService product catalog service
type CatalogService interface {
	// Create a product owned by the seller
	CreateProduct(ctx context.Context, sellerID uint64, req *CreateProductRequest) (*model.Product, error)

	// Get product, served from cache when possible
	GetProduct(ctx context.Context, id uint64) (*model.Product, error)

	// List products; activeOnly hides inactive listings
	ListProducts(ctx context.Context, activeOnly bool, page, pageSize int) ([]*model.Product, int64, error)

	// Update product fields; only the seller or an admin may update
	UpdateProduct(ctx context.Context, id, actorID uint64, isAdmin bool, req *UpdateProductRequest) (*model.Product, error)

	// Soft-delete a product
	DeleteProduct(ctx context.Context, id, actorID uint64, isAdmin bool) error
}

type catalogService struct {
	repos *repository.Repos
	cache *cache.ProductCache
}

// NewCatalogService creates a catalog service
func NewCatalogService(repos *repository.Repos, cache *cache.ProductCache) CatalogService {
	return &catalogService{repos: repos, cache: cache}
}

// CreateProduct creates a product
func (s *catalogService) CreateProduct(ctx context.Context, sellerID uint64, req *CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		Name:     req.Name,
		Images:   req.Images,
		Price:    req.Price,
		Stock:    req.Stock,
		SellerID: sellerID,
		Status:   model.ProductStatusActive,
	}
	if req.Description != "" {
		product.Description = &req.Description
	}
	if req.Category != "" {
		product.Category = &req.Category
	}

	if err := s.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Track(product.ID)

	log.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"seller_id":  sellerID,
	}).Info("Product created")

	return product, nil
}

// GetProduct gets a product through the cache
func (s *catalogService) GetProduct(ctx context.Context, id uint64) (*model.Product, error) {
	product, err := s.cache.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted() {
		return nil, utils.ErrProductNotFound
	}
	return product, nil
}

// ListProducts lists products
func (s *catalogService) ListProducts(ctx context.Context, activeOnly bool, page, pageSize int) ([]*model.Product, int64, error) {
	return s.repos.Products.List(ctx, activeOnly, page, pageSize)
}

// UpdateProduct updates a product
func (s *catalogService) UpdateProduct(ctx context.Context, id, actorID uint64, isAdmin bool, req *UpdateProductRequest) (*model.Product, error) {
	product, err := s.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != actorID && !isAdmin {
		return nil, utils.ErrForbidden
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.repos.Products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Invalidate(id)

	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *catalogService) DeleteProduct(ctx context.Context, id, actorID uint64, isAdmin bool) error {
	product, err := s.repos.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.SellerID != actorID && !isAdmin {
		return utils.ErrForbidden
	}

	if err := s.repos.Products.UpdateStatus(ctx, id, model.ProductStatusDeleted); err != nil {
		return err
	}
	s.cache.Invalidate(id)

	log.WithField("product_id", id).Info("Product deleted")
	return nil
}
