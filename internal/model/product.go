package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Product product model
type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Category    *string   `gorm:"type:varchar(50);index" json:"category,omitempty"`
	Images      JSONArray `gorm:"type:json" json:"images,omitempty"`
	Price       int64     `gorm:"type:bigint;not null" json:"price"`
	Stock       int       `gorm:"type:int;not null;default:0" json:"stock"`
	SellerID    uint64    `gorm:"type:bigint unsigned;not null;index" json:"seller_id"`
	Status      int8      `gorm:"type:tinyint;not null;default:1;index" json:"status"`
	CreatedAt   time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Seller *User `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

// TableName set name
func (Product) TableName() string {
	return "products"
}

// ProductStatus product status const
const (
	ProductStatusActive   = 1
	ProductStatusInactive = 2
	ProductStatusDeleted  = 3
)

// JSONArray custom json array type
type JSONArray []string

// Value implement driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implement sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into JSONArray", value)
	}

	return json.Unmarshal(bytes, j)
}

// IsActive check if product is purchasable
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsDeleted check if product is deleted
func (p *Product) IsDeleted() bool {
	return p.Status == ProductStatusDeleted
}
