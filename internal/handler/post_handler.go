package handler

import (
	"github.com/gin-gonic/gin"

	"socialmall/internal/middleware"
	"socialmall/internal/service/social"
	"socialmall/pkg/utils"
)

// PostHandler shoppable post endpoints
type PostHandler struct {
	socialService social.SocialService
}

// NewPostHandler creates a post handler
func NewPostHandler(socialService social.SocialService) *PostHandler {
	return &PostHandler{socialService: socialService}
}

// CreatePost POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req social.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	post, err := h.socialService.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, post)
}

// GetPost GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	post, err := h.socialService.GetPost(c.Request.Context(), id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, post)
}

// ListFeed GET /api/v1/posts
func (h *PostHandler) ListFeed(c *gin.Context) {
	page, pageSize := parsePagination(c)

	posts, total, err := h.socialService.ListFeed(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessPageResponse(c, posts, total, page, pageSize)
}

// ListMyPosts GET /api/v1/posts/mine
func (h *PostHandler) ListMyPosts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	posts, total, err := h.socialService.ListUserPosts(c.Request.Context(),
		middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessPageResponse(c, posts, total, page, pageSize)
}

// HidePost DELETE /api/v1/posts/:id
func (h *PostHandler) HidePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	err := h.socialService.HidePost(c.Request.Context(), id,
		middleware.CurrentUserID(c), middleware.IsAdmin(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}
