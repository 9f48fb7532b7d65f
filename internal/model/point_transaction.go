package model

import (
	"time"
)

// PointTransaction immutable ledger entry for a single point movement.
// Points holds the positive magnitude; direction is carried by Type.
// Rows are appended inside the same transaction as the balance change
// and are never updated or deleted afterwards.
type PointTransaction struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"type:bigint unsigned;not null;index" json:"user_id"`
	Points    int64     `gorm:"type:bigint;not null" json:"points"`
	Type      string    `gorm:"type:varchar(20);not null;index" json:"type"`
	Source    string    `gorm:"type:varchar(20);not null" json:"source"`
	OrderID   uint64    `gorm:"type:bigint unsigned;not null;index" json:"order_id"`
	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName set name
func (PointTransaction) TableName() string {
	return "point_transactions"
}

// PointTransactionType ledger entry type const
const (
	PointTypeEarn           = "EARN"
	PointTypeRedeem         = "REDEEM"
	PointTypeRedeemRefund   = "REDEEM_REFUND"
	PointTypeRewardReversal = "REWARD_REVERSAL"
)

// PointTransactionSource ledger entry source const
const (
	PointSourcePostSale    = "POST_SALE"
	PointSourceOrderRedeem = "ORDER_REDEEM"
	PointSourceOrderCancel = "ORDER_CANCEL"
	PointSourceOrderReturn = "ORDER_RETURN"
)

// IsCredit check the entry increases the user's balance
func (t *PointTransaction) IsCredit() bool {
	return t.Type == PointTypeEarn || t.Type == PointTypeRedeemRefund
}

// SignedPoints balance delta represented by the entry
func (t *PointTransaction) SignedPoints() int64 {
	if t.IsCredit() {
		return t.Points
	}
	return -t.Points
}
