package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"socialmall/internal/model"
	"socialmall/pkg/utils"
)

// PostRepository post repository interface
type PostRepository interface {
	// Create post
	Create(ctx context.Context, post *model.Post) error

	// Get post by ID
	GetByID(ctx context.Context, id uint64) (*model.Post, error)

	// Get posts by IDs
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error)

	// List a user's posts
	ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, int64, error)

	// List visible posts across all users, newest first
	ListVisible(ctx context.Context, page, pageSize int) ([]*model.Post, int64, error)

	// Update post status
	UpdateStatus(ctx context.Context, id uint64, status int8) error
}

// postRepository post repository implementation
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a post
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID gets a post by ID
func (r *postRepository) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetByIDs gets posts by IDs
func (r *postRepository) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

// ListByUser lists a user's posts
func (r *postRepository) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("user_id = ? AND status = ?", userID, model.PostStatusVisible)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&posts).Error

	return posts, total, err
}

// ListVisible lists visible posts across all users
func (r *postRepository) ListVisible(ctx context.Context, page, pageSize int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("status = ?", model.PostStatusVisible)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Preload("Product").
		Find(&posts).Error

	return posts, total, err
}

// UpdateStatus updates post status
func (r *postRepository) UpdateStatus(ctx context.Context, id uint64, status int8) error {
	result := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrPostNotFound
	}
	return nil
}
