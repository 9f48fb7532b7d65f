package wallet

import (
	"context"

	"socialmall/internal/model"
	"socialmall/internal/repository"
)

// Summary wallet aggregate view. CurrentBalance comes from the user
// row; the totals come from the ledger, so
// totalEarned - totalRedeemed + totalRefunded - reversals must equal
// the balance for a consistent wallet.
type Summary struct {
	TotalEarned    int64 `json:"total_earned"`
	TotalRedeemed  int64 `json:"total_redeemed"`
	TotalRefunded  int64 `json:"total_refunded"`
	CurrentBalance int64 `json:"current_balance"`
}

// WalletService read-side of the reward wallet
type WalletService interface {
	// Current reward point balance
	GetBalance(ctx context.Context, userID uint64) (int64, error)

	// Ledger history, newest first
	GetHistory(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointTransaction, int64, error)

	// Aggregate totals plus current balance
	GetSummary(ctx context.Context, userID uint64) (*Summary, error)
}

type walletService struct {
	repos *repository.Repos
}

// NewWalletService creates a wallet service
func NewWalletService(repos *repository.Repos) WalletService {
	return &walletService{repos: repos}
}

// GetBalance returns the user's current balance
func (s *walletService) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.RewardPoints, nil
}

// GetHistory returns the user's ledger entries, newest first
func (s *walletService) GetHistory(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointTransaction, int64, error) {
	return s.repos.Points.ListByUser(ctx, userID, page, pageSize)
}

// GetSummary returns per-type totals plus the current balance
func (s *walletService) GetSummary(ctx context.Context, userID uint64) (*Summary, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sums, err := s.repos.Points.SumByType(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalEarned:    sums[model.PointTypeEarn],
		TotalRedeemed:  sums[model.PointTypeRedeem],
		TotalRefunded:  sums[model.PointTypeRedeemRefund],
		CurrentBalance: user.RewardPoints,
	}, nil
}
