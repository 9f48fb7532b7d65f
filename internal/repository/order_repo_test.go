package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"socialmall/internal/model"
	"socialmall/pkg/utils"
)

func TestOrderRepository_GetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT \\* FROM `orders` WHERE id = \\?").
		WithArgs(uint64(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(ctx, 7)
	if !errors.Is(err, utils.ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestOrderRepository_UpdateStatusFromApplied(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET `order_status`=\\?,`updated_at`=\\? WHERE id = \\? AND order_status IN \\(\\?,\\?\\)").
		WithArgs(model.OrderStatusCancelled, sqlmock.AnyArg(), uint64(1),
			model.OrderStatusPending, model.OrderStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := repo.UpdateStatusFrom(ctx, 1,
		[]string{model.OrderStatusPending, model.OrderStatusConfirmed},
		model.OrderStatusCancelled)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !applied {
		t.Error("Expected transition to be applied")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestOrderRepository_UpdateStatusFromLostRace(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	// current status no longer matches the guard
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET `order_status`=\\?,`updated_at`=\\? WHERE id = \\? AND order_status IN \\(\\?\\)").
		WithArgs(model.OrderStatusConfirmed, sqlmock.AnyArg(), uint64(1),
			model.OrderStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	applied, err := repo.UpdateStatusFrom(ctx, 1,
		[]string{model.OrderStatusPending}, model.OrderStatusConfirmed)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if applied {
		t.Error("Expected transition to be rejected")
	}
}

func TestOrderRepository_MarkRewardDeducted(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET `reward_deducted`=\\?,`updated_at`=\\? WHERE id = \\? AND reward_deducted = \\?").
		WithArgs(true, sqlmock.AnyArg(), uint64(1), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	won, err := repo.MarkRewardDeducted(ctx, 1)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !won {
		t.Error("Expected flag flip to win")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestOrderRepository_MarkRewardDeductedAlreadySet(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET `reward_deducted`=\\?,`updated_at`=\\? WHERE id = \\? AND reward_deducted = \\?").
		WithArgs(true, sqlmock.AnyArg(), uint64(1), false).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	won, err := repo.MarkRewardDeducted(ctx, 1)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if won {
		t.Error("Expected flag flip to lose when already set")
	}
}

func TestOrderRepository_ClearRewardProcessed(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET `reward_processed`=\\?,`updated_at`=\\? WHERE id = \\? AND reward_processed = \\?").
		WithArgs(false, sqlmock.AnyArg(), uint64(1), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	cleared, err := repo.ClearRewardProcessed(ctx, 1)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !cleared {
		t.Error("Expected flag to clear")
	}
}

func TestOrderRepository_UpdatePaymentStatusPaidSetsTimestamp(t *testing.T) {
	db, mock := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET `paid_at`=\\?,`payment_status`=\\?,`updated_at`=\\? WHERE id = \\?").
		WithArgs(sqlmock.AnyArg(), model.PaymentStatusPaid, sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.UpdatePaymentStatus(ctx, 1, model.PaymentStatusPaid); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestOrderRepository_Interface(t *testing.T) {
	db, _ := setupMockDB(t)
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	var _ OrderRepository = NewOrderRepository(db)
}
