package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"socialmall/internal/model"
	"socialmall/pkg/utils"
)

// ProductRepository product repository interface
type ProductRepository interface {
	// Create product
	Create(ctx context.Context, product *model.Product) error

	// Get product by ID
	GetByID(ctx context.Context, id uint64) (*model.Product, error)

	// Get products by IDs
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Product, error)

	// List products, optionally filtered to active only
	List(ctx context.Context, activeOnly bool, page, pageSize int) ([]*model.Product, int64, error)

	// Update product fields
	Update(ctx context.Context, product *model.Product) error

	// Update product status
	UpdateStatus(ctx context.Context, id uint64, status int8) error
}

// productRepository product repository implementation
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a product
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID gets a product by ID
func (r *productRepository) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDs gets products by IDs
func (r *productRepository) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Product, error) {
	var products []*model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// List lists products
func (r *productRepository) List(ctx context.Context, activeOnly bool, page, pageSize int) ([]*model.Product, int64, error) {
	var products []*model.Product
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Product{})
	if activeOnly {
		db = db.Where("status = ?", model.ProductStatusActive)
	} else {
		db = db.Where("status <> ?", model.ProductStatusDeleted)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&products).Error

	return products, total, err
}

// Update updates product fields
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// UpdateStatus updates product status
func (r *productRepository) UpdateStatus(ctx context.Context, id uint64, status int8) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrProductNotFound
	}
	return nil
}
