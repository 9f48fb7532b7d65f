package model

import (
	"time"
)

// User model
type User struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Salt         string     `gorm:"type:varchar(32);not null" json:"-"`
	Phone        *string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address      *string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	Role         string     `gorm:"type:varchar(10);not null;default:user" json:"role"`
	RewardPoints int64      `gorm:"type:bigint;not null;default:0" json:"reward_points"`
	Status       int8       `gorm:"type:tinyint;not null;default:1;index" json:"status"`
	LastLoginAt  *time.Time `gorm:"type:timestamp" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName set name
func (User) TableName() string {
	return "users"
}

// UserRole user role const
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserStatus user status const
const (
	UserStatusNormal   = 1
	UserStatusDisabled = 2
)

// IsActive check if user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusNormal
}

// IsAdmin check if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
