package handler

import (
	"github.com/gin-gonic/gin"

	"socialmall/internal/middleware"
	"socialmall/internal/service/order"
	"socialmall/pkg/utils"
)

// OrderHandler order lifecycle endpoints
type OrderHandler struct {
	orderService order.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orderService order.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GetOrder GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	result, err := h.orderService.GetOrder(c.Request.Context(), orderID, middleware.CurrentUserID(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// ListOrders GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)

	orders, total, err := h.orderService.ListUserOrders(c.Request.Context(),
		middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessPageResponse(c, orders, total, page, pageSize)
}

// PayOrder POST /api/v1/orders/:id/payment
func (h *OrderHandler) PayOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=success failed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	result, err := h.orderService.MarkPaymentResult(c.Request.Context(), orderID,
		middleware.CurrentUserID(c), req.Status)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// CancelOrder POST /api/v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	result, err := h.orderService.CancelOrder(c.Request.Context(), orderID, middleware.CurrentUserID(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// ReturnOrder POST /api/v1/orders/:id/return
func (h *OrderHandler) ReturnOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	result, err := h.orderService.ReturnOrder(c.Request.Context(), orderID, middleware.CurrentUserID(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// AdvanceOrderStatus PUT /api/v1/admin/orders/:id/status
func (h *OrderHandler) AdvanceOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=shipped delivered"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	result, err := h.orderService.AdvanceOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// ListAllOrders GET /api/v1/admin/orders
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)

	orders, total, err := h.orderService.ListAllOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessPageResponse(c, orders, total, page, pageSize)
}
