package handler

import (
	"github.com/gin-gonic/gin"

	"socialmall/internal/middleware"
	"socialmall/internal/service/cart"
	"socialmall/pkg/utils"
)

// CartHandler shopping cart endpoints
type CartHandler struct {
	cartService cart.CartService
}

// NewCartHandler creates a cart handler
func NewCartHandler(cartService cart.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.cartService.GetCart(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// AddItem POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	result, err := h.cartService.AddItem(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// RemoveItem DELETE /api/v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	result, err := h.cartService.RemoveItem(c.Request.Context(), middleware.CurrentUserID(c), itemID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// ClearCart DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}
