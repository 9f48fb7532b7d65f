package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"socialmall/internal/model"
	"socialmall/pkg/utils"
)

// OrderRepository order repository interface. The flag and status
// mutations are conditional updates: callers learn from the returned
// bool whether this request won the update, which is what makes the
// reward debit/credit at-most-once under concurrent duplicates.
type OrderRepository interface {
	// Create order with its items
	Create(ctx context.Context, order *model.Order) error

	// Get order by ID
	GetByID(ctx context.Context, id uint64) (*model.Order, error)

	// Get order by ID scoped to its owner
	GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Order, error)

	// List a user's orders
	ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Order, int64, error)

	// List all orders (admin)
	ListAll(ctx context.Context, page, pageSize int) ([]*model.Order, int64, error)

	// Move order_status to `to` only when the current status is in
	// `from`; reports whether the transition was applied
	UpdateStatusFrom(ctx context.Context, id uint64, from []string, to string) (bool, error)

	// Set payment status (and paid timestamp when paid)
	UpdatePaymentStatus(ctx context.Context, id uint64, status string) error

	// Set reward_deducted true if currently false
	MarkRewardDeducted(ctx context.Context, id uint64) (bool, error)

	// Set reward_deducted false if currently true
	ClearRewardDeducted(ctx context.Context, id uint64) (bool, error)

	// Set reward_processed true if currently false
	MarkRewardProcessed(ctx context.Context, id uint64) (bool, error)

	// Set reward_processed false if currently true
	ClearRewardProcessed(ctx context.Context, id uint64) (bool, error)
}

// orderRepository order repository implementation
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates an order with its items
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

// GetByID gets an order by ID
func (r *orderRepository) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUser gets an order by ID scoped to its owner
func (r *orderRepository) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser lists a user's orders
func (r *orderRepository) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Order, int64, error) {
	var orders []*model.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Preload("Items").
		Find(&orders).Error

	return orders, total, err
}

// ListAll lists all orders
func (r *orderRepository) ListAll(ctx context.Context, page, pageSize int) ([]*model.Order, int64, error) {
	var orders []*model.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Order{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Preload("Items").
		Find(&orders).Error

	return orders, total, err
}

// UpdateStatusFrom applies a guarded status transition
func (r *orderRepository) UpdateStatusFrom(ctx context.Context, id uint64, from []string, to string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND order_status IN ?", id, from).
		Update("order_status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdatePaymentStatus sets the payment status
func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uint64, status string) error {
	updates := map[string]interface{}{
		"payment_status": status,
	}
	if status == model.PaymentStatusPaid {
		now := time.Now()
		updates["paid_at"] = &now
	}
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// MarkRewardDeducted flips reward_deducted false -> true
func (r *orderRepository) MarkRewardDeducted(ctx context.Context, id uint64) (bool, error) {
	return r.setFlag(ctx, id, "reward_deducted", false, true)
}

// ClearRewardDeducted flips reward_deducted true -> false
func (r *orderRepository) ClearRewardDeducted(ctx context.Context, id uint64) (bool, error) {
	return r.setFlag(ctx, id, "reward_deducted", true, false)
}

// MarkRewardProcessed flips reward_processed false -> true
func (r *orderRepository) MarkRewardProcessed(ctx context.Context, id uint64) (bool, error) {
	return r.setFlag(ctx, id, "reward_processed", false, true)
}

// ClearRewardProcessed flips reward_processed true -> false
func (r *orderRepository) ClearRewardProcessed(ctx context.Context, id uint64) (bool, error) {
	return r.setFlag(ctx, id, "reward_processed", true, false)
}

// setFlag performs the check-and-set in a single UPDATE keyed on the
// flag's prior value; a lost race shows up as zero rows affected.
func (r *orderRepository) setFlag(ctx context.Context, id uint64, column string, from, to bool) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND "+column+" = ?", id, from).
		Update(column, to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
