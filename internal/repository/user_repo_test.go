package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"socialmall/internal/model"
	"socialmall/pkg/utils"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create GORM database: %v", err)
	}

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "reward_points", "status"}).
		AddRow(1, "testuser", "test@example.com", 120, model.UserStatusNormal)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\? ORDER BY `users`.`id` LIMIT \\?").
		WithArgs(uint64(1), 1).
		WillReturnRows(rows)

	user, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
		return
	}
	if user.Username != "testuser" || user.RewardPoints != 120 {
		t.Errorf("Unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?").
		WithArgs(uint64(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(ctx, 42)
	if !errors.Is(err, utils.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestUserRepository_CreditPoints(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `reward_points`=reward_points \\+ \\? WHERE id = \\?").
		WithArgs(int64(50), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.CreditPoints(ctx, 1, 50); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestUserRepository_CreditPointsUnknownUser(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `reward_points`=reward_points \\+ \\?").
		WithArgs(int64(50), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.CreditPoints(ctx, 99, 50)
	if !errors.Is(err, utils.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_CreditPointsRejectsNonPositive(t *testing.T) {
	db, _ := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.CreditPoints(ctx, 1, 0); !errors.Is(err, utils.ErrInvalidParam) {
		t.Errorf("Expected ErrInvalidParam for zero points, got %v", err)
	}
	if err := repo.CreditPoints(ctx, 1, -10); !errors.Is(err, utils.ErrInvalidParam) {
		t.Errorf("Expected ErrInvalidParam for negative points, got %v", err)
	}
}

func TestUserRepository_DebitPoints(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `reward_points`=reward_points - \\? WHERE id = \\? AND reward_points >= \\?").
		WithArgs(int64(30), uint64(1), int64(30)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DebitPoints(ctx, 1, 30); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestUserRepository_DebitPointsInsufficientBalance(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewUserRepository(db)
	ctx := context.Background()

	// balance guard in the WHERE clause matched no rows
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET `reward_points`=reward_points - \\?").
		WithArgs(int64(1000), uint64(1), int64(1000)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DebitPoints(ctx, 1, 1000)
	if !errors.Is(err, utils.ErrInsufficientPoints) {
		t.Errorf("Expected ErrInsufficientPoints, got %v", err)
	}
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
		WithArgs("testuser").
		WillReturnRows(rows)

	exists, err := repo.ExistsByUsername(ctx, "testuser")
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !exists {
		t.Errorf("Expected username to exist")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestUserRepository_Interface(t *testing.T) {
	db, _ := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	var _ UserRepository = NewUserRepository(db)
}
