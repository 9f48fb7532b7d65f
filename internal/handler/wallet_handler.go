package handler

import (
	"github.com/gin-gonic/gin"

	"socialmall/internal/middleware"
	"socialmall/internal/service/wallet"
	"socialmall/pkg/utils"
)

// WalletHandler reward wallet endpoints
type WalletHandler struct {
	walletService wallet.WalletService
}

// NewWalletHandler creates a wallet handler
func NewWalletHandler(walletService wallet.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetBalance GET /api/v1/wallet/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	balance, err := h.walletService.GetBalance(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"balance": balance})
}

// GetHistory GET /api/v1/wallet/history
func (h *WalletHandler) GetHistory(c *gin.Context) {
	page, pageSize := parsePagination(c)

	entries, total, err := h.walletService.GetHistory(c.Request.Context(),
		middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessPageResponse(c, entries, total, page, pageSize)
}

// GetSummary GET /api/v1/wallet/summary
func (h *WalletHandler) GetSummary(c *gin.Context) {
	summary, err := h.walletService.GetSummary(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}
