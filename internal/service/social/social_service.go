package social

import (
	"context"

	"socialmall/internal/model"
	"socialmall/internal/repository"
	"socialmall/pkg/log"
	"socialmall/pkg/utils"
)

// CreatePostRequest create post request
type CreatePostRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Caption   string `json:"caption" binding:"max=500"`
}

// SocialService shoppable posts. A post links a user to a product;
// purchases attributed to the post earn the poster reward points on
// delivery.
type SocialService interface {
	// Create a post for an active product
	CreatePost(ctx context.Context, userID uint64, req *CreatePostRequest) (*model.Post, error)

	// Get a post
	GetPost(ctx context.Context, id uint64) (*model.Post, error)

	// Feed of visible posts, newest first
	ListFeed(ctx context.Context, page, pageSize int) ([]*model.Post, int64, error)

	// List a user's posts
	ListUserPosts(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, int64, error)

	// Hide a post; only the owner or an admin may hide
	HidePost(ctx context.Context, id, actorID uint64, isAdmin bool) error
}

type socialService struct {
	repos *repository.Repos
}

// NewSocialService creates a social service
func NewSocialService(repos *repository.Repos) SocialService {
	return &socialService{repos: repos}
}

// CreatePost creates a post
func (s *socialService) CreatePost(ctx context.Context, userID uint64, req *CreatePostRequest) (*model.Post, error) {
	product, err := s.repos.Products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, utils.ErrProductUnavailable
	}

	post := &model.Post{
		UserID:    userID,
		ProductID: req.ProductID,
		Status:    model.PostStatusVisible,
	}
	if req.Caption != "" {
		post.Caption = &req.Caption
	}

	if err := s.repos.Posts.Create(ctx, post); err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"post_id":    post.ID,
		"user_id":    userID,
		"product_id": req.ProductID,
	}).Info("Post created")

	return post, nil
}

// GetPost gets a post
func (s *socialService) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	return s.repos.Posts.GetByID(ctx, id)
}

// ListFeed lists visible posts across all users
func (s *socialService) ListFeed(ctx context.Context, page, pageSize int) ([]*model.Post, int64, error) {
	return s.repos.Posts.ListVisible(ctx, page, pageSize)
}

// ListUserPosts lists a user's posts
func (s *socialService) ListUserPosts(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, int64, error) {
	return s.repos.Posts.ListByUser(ctx, userID, page, pageSize)
}

// HidePost hides a post
func (s *socialService) HidePost(ctx context.Context, id, actorID uint64, isAdmin bool) error {
	post, err := s.repos.Posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != actorID && !isAdmin {
		return utils.ErrForbidden
	}
	return s.repos.Posts.UpdateStatus(ctx, id, model.PostStatusHidden)
}
