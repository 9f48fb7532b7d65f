package model

import (
	"time"
)

// Cart cart model, one per user
type Cart struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"type:bigint unsigned;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

// TableName set name
func (Cart) TableName() string {
	return "carts"
}

// CartItem cart item model. Price is the snapshot taken when the item
// was added; SourcePostID records the post the purchase came from, if any.
type CartItem struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID       uint64    `gorm:"type:bigint unsigned;not null;index" json:"cart_id"`
	ProductID    uint64    `gorm:"type:bigint unsigned;not null;index" json:"product_id"`
	Quantity     int       `gorm:"type:int;not null;default:1" json:"quantity"`
	Price        int64     `gorm:"type:bigint;not null" json:"price"`
	SourcePostID *uint64   `gorm:"type:bigint unsigned;index" json:"source_post_id,omitempty"`
	CreatedAt    time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Product    *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SourcePost *Post    `gorm:"foreignKey:SourcePostID" json:"source_post,omitempty"`
}

// TableName set name
func (CartItem) TableName() string {
	return "cart_items"
}

// IsEmpty check if cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
