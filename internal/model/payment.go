package model

import (
	"time"
)

// Payment record produced by the mock payment gateway
type Payment struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint64    `gorm:"type:bigint unsigned;not null;index" json:"user_id"`
	OrderID       uint64    `gorm:"type:bigint unsigned;not null;index" json:"order_id"`
	Amount        int64     `gorm:"type:bigint;not null" json:"amount"`
	Status        string    `gorm:"type:varchar(20);not null" json:"status"`
	TransactionNo string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"transaction_no"`
	CreatedAt     time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName set name
func (Payment) TableName() string {
	return "payments"
}

// PaymentResult gateway result const
const (
	PaymentResultSuccess = "success"
	PaymentResultFailed  = "failed"
)
