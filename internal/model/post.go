package model

import (
	"time"
)

// Post shoppable post model. A sale attributed to a post earns its
// owner reward points when the order is delivered.
type Post struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"type:bigint unsigned;not null;index" json:"user_id"`
	ProductID uint64    `gorm:"type:bigint unsigned;not null;index" json:"product_id"`
	Caption   *string   `gorm:"type:varchar(500)" json:"caption,omitempty"`
	Status    int8      `gorm:"type:tinyint;not null;default:1;index" json:"status"`
	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName set name
func (Post) TableName() string {
	return "posts"
}

// PostStatus post status const
const (
	PostStatusVisible = 1
	PostStatusHidden  = 2
)
