package repository

import (
	"context"

	"gorm.io/gorm"

	"socialmall/internal/model"
)

// PaymentRepository payment record repository interface
type PaymentRepository interface {
	// Create payment record
	Create(ctx context.Context, payment *model.Payment) error

	// List payment attempts for an order
	ListByOrder(ctx context.Context, orderID uint64) ([]*model.Payment, error)
}

// paymentRepository payment repository implementation
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a payment record
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// ListByOrder lists payment attempts for an order
func (r *paymentRepository) ListByOrder(ctx context.Context, orderID uint64) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}
