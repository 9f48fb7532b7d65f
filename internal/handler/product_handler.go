package handler

import (
	"github.com/gin-gonic/gin"

	"socialmall/internal/middleware"
	"socialmall/internal/service/catalog"
	"socialmall/pkg/utils"
)

// ProductHandler catalog endpoints
type ProductHandler struct {
	catalogService catalog.CatalogService
}

// NewProductHandler creates a product handler
func NewProductHandler(catalogService catalog.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// CreateProduct POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// GetProduct GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// ListProducts GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	activeOnly := c.DefaultQuery("active", "true") == "true"

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), activeOnly, page, pageSize)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessPageResponse(c, products, total, page, pageSize)
}

// UpdateProduct PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id,
		middleware.CurrentUserID(c), middleware.IsAdmin(c), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// DeleteProduct DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.AppErrorResponse(c, utils.ErrInvalidParam)
		return
	}

	err := h.catalogService.DeleteProduct(c.Request.Context(), id,
		middleware.CurrentUserID(c), middleware.IsAdmin(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, nil)
}
