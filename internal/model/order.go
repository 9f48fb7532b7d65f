package model

import (
	"time"
)

// Order order model. RewardDeducted and RewardProcessed are the
// idempotency guards for the redeem debit and the attribution credit;
// they are only flipped through conditional updates.
type Order struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo         string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_no"`
	UserID          uint64     `gorm:"type:bigint unsigned;not null;index" json:"user_id"`
	TotalAmount     int64      `gorm:"type:bigint;not null" json:"total_amount"`
	RedeemedPoints  int64      `gorm:"type:bigint;not null;default:0" json:"redeemed_points"`
	FinalAmount     int64      `gorm:"type:bigint;not null" json:"final_amount"`
	OrderStatus     string     `gorm:"type:varchar(20);not null;default:pending;index" json:"order_status"`
	PaymentStatus   string     `gorm:"type:varchar(20);not null;default:pending" json:"payment_status"`
	PaymentMethod   string     `gorm:"type:varchar(10);not null" json:"payment_method"`
	ShippingAddress string     `gorm:"type:varchar(500);not null" json:"shipping_address"`
	RewardDeducted  bool       `gorm:"not null;default:false" json:"reward_deducted"`
	RewardProcessed bool       `gorm:"not null;default:false" json:"reward_processed"`
	PaidAt          *time.Time `gorm:"type:timestamp" json:"paid_at,omitempty"`
	CreatedAt       time.Time  `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName set name
func (Order) TableName() string {
	return "orders"
}

// OrderItem order line item. Price is snapshotted at order creation;
// SourcePostID attributes the sale to a post for delivery rewards.
type OrderItem struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint64    `gorm:"type:bigint unsigned;not null;index" json:"order_id"`
	ProductID    uint64    `gorm:"type:bigint unsigned;not null;index" json:"product_id"`
	Price        int64     `gorm:"type:bigint;not null" json:"price"`
	Quantity     int       `gorm:"type:int;not null" json:"quantity"`
	SourcePostID *uint64   `gorm:"type:bigint unsigned;index" json:"source_post_id,omitempty"`
	CreatedAt    time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Product    *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SourcePost *Post    `gorm:"foreignKey:SourcePostID" json:"source_post,omitempty"`
}

// TableName set name
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStatus order status const
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusReturned  = "returned"
)

// PaymentStatus payment status const
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// PaymentMethod payment method const
const (
	PaymentMethodCOD  = "COD"
	PaymentMethodCard = "CARD"
	PaymentMethodUPI  = "UPI"
)

// IsPending check order is pending
func (o *Order) IsPending() bool {
	return o.OrderStatus == OrderStatusPending
}

// IsDelivered check order is delivered
func (o *Order) IsDelivered() bool {
	return o.OrderStatus == OrderStatusDelivered
}

// CanCancel cancellation is rejected once the order has shipped
func (o *Order) CanCancel() bool {
	return o.OrderStatus == OrderStatusPending || o.OrderStatus == OrderStatusConfirmed
}

// CanReturn returns are only accepted after delivery
func (o *Order) CanReturn() bool {
	return o.OrderStatus == OrderStatusDelivered
}

// IsTerminal check order reached a terminal state
func (o *Order) IsTerminal() bool {
	return o.OrderStatus == OrderStatusCancelled || o.OrderStatus == OrderStatusReturned
}

// ValidPaymentMethod check payment method is supported
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodUPI:
		return true
	}
	return false
}

// statusRank forward progression order used by admin status changes
var statusRank = map[string]int{
	OrderStatusPending:   1,
	OrderStatusConfirmed: 2,
	OrderStatusShipped:   3,
	OrderStatusDelivered: 4,
}

// CanAdvanceTo check a forward fulfilment transition is legal
func (o *Order) CanAdvanceTo(status string) bool {
	from, ok := statusRank[o.OrderStatus]
	if !ok {
		return false
	}
	to, ok := statusRank[status]
	if !ok {
		return false
	}
	return to == from+1
}
