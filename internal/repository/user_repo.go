package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"socialmall/internal/model"
	"socialmall/pkg/utils"
)

// UserRepository user repository interface
type UserRepository interface {
	// Create user
	Create(ctx context.Context, user *model.User) error

	// Get user by ID
	GetByID(ctx context.Context, id uint64) (*model.User, error)

	// Get user by username
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Get user by email
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Check if username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Check if email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update last login time
	UpdateLastLogin(ctx context.Context, userID uint64) error

	// Credit reward points to the user's balance
	CreditPoints(ctx context.Context, userID uint64, points int64) error

	// Debit reward points; conditioned on sufficient balance at write
	// time, so the balance can never go negative
	DebitPoints(ctx context.Context, userID uint64, points int64) error
}

// userRepository user repository implementation
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a user
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername checks if username exists
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// UpdateLastLogin updates last login time
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID uint64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login_at", now).Error
}

// CreditPoints credits reward points to the user's balance
func (r *userRepository) CreditPoints(ctx context.Context, userID uint64, points int64) error {
	if points <= 0 {
		return utils.ErrInvalidParam
	}
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("reward_points", gorm.Expr("reward_points + ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrUserNotFound
	}
	return nil
}

// DebitPoints debits reward points with a balance guard in the WHERE
// clause. Zero rows affected means the balance dropped below the
// requested amount between validation and write.
func (r *userRepository) DebitPoints(ctx context.Context, userID uint64, points int64) error {
	if points <= 0 {
		return utils.ErrInvalidParam
	}
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND reward_points >= ?", userID, points).
		UpdateColumn("reward_points", gorm.Expr("reward_points - ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrInsufficientPoints
	}
	return nil
}
