package repository

import (
	"context"

	"gorm.io/gorm"

	"socialmall/internal/model"
)

// PointTransactionRepository append-only ledger store. Entries are
// created inside the same transaction as the balance mutation they
// record; there are no update or delete operations.
type PointTransactionRepository interface {
	// Append a ledger entry
	Create(ctx context.Context, tx *model.PointTransaction) error

	// Full history for a user, newest first
	ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointTransaction, int64, error)

	// Aggregate totals per entry type
	SumByType(ctx context.Context, userID uint64) (map[string]int64, error)

	// Entries recorded against an order, oldest first
	ListByOrder(ctx context.Context, orderID uint64) ([]*model.PointTransaction, error)
}

// pointTransactionRepository ledger store implementation
type pointTransactionRepository struct {
	db *gorm.DB
}

// NewPointTransactionRepository creates a point transaction repository
func NewPointTransactionRepository(db *gorm.DB) PointTransactionRepository {
	return &pointTransactionRepository{db: db}
}

// Create appends a ledger entry
func (r *pointTransactionRepository) Create(ctx context.Context, tx *model.PointTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// ListByUser lists a user's ledger entries, newest first
func (r *pointTransactionRepository) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointTransaction, int64, error) {
	var entries []*model.PointTransaction
	var total int64

	db := r.db.WithContext(ctx).Model(&model.PointTransaction{}).
		Where("user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}

// SumByType aggregates point totals grouped by entry type
func (r *pointTransactionRepository) SumByType(ctx context.Context, userID uint64) (map[string]int64, error) {
	type row struct {
		Type  string
		Total int64
	}
	var rows []row

	err := r.db.WithContext(ctx).Model(&model.PointTransaction{}).
		Select("type, COALESCE(SUM(points), 0) AS total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int64, len(rows))
	for _, r := range rows {
		sums[r.Type] = r.Total
	}
	return sums, nil
}

// ListByOrder lists entries recorded against an order
func (r *pointTransactionRepository) ListByOrder(ctx context.Context, orderID uint64) ([]*model.PointTransaction, error) {
	var entries []*model.PointTransaction
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
