package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"socialmall/internal/model"
	"socialmall/internal/repository"
	"socialmall/pkg/utils"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserRepo) CreditPoints(ctx context.Context, userID uint64, points int64) error {
	return m.Called(ctx, userID, points).Error(0)
}

func (m *mockUserRepo) DebitPoints(ctx context.Context, userID uint64, points int64) error {
	return m.Called(ctx, userID, points).Error(0)
}

type mockPointRepo struct{ mock.Mock }

func (m *mockPointRepo) Create(ctx context.Context, tx *model.PointTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockPointRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.PointTransaction, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.PointTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *mockPointRepo) SumByType(ctx context.Context, userID uint64) (map[string]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockPointRepo) ListByOrder(ctx context.Context, orderID uint64) ([]*model.PointTransaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PointTransaction), args.Error(1)
}

func newService(users *mockUserRepo, points *mockPointRepo) WalletService {
	return NewWalletService(&repository.Repos{Users: users, Points: points})
}

func TestGetBalance(t *testing.T) {
	users := &mockUserRepo{}
	points := &mockPointRepo{}
	users.On("GetByID", mock.Anything, uint64(1)).
		Return(&model.User{ID: 1, RewardPoints: 120}, nil)

	balance, err := newService(users, points).GetBalance(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(120), balance)
}

func TestGetBalanceUnknownUser(t *testing.T) {
	users := &mockUserRepo{}
	points := &mockPointRepo{}
	users.On("GetByID", mock.Anything, uint64(9)).
		Return(nil, utils.ErrUserNotFound)

	_, err := newService(users, points).GetBalance(context.Background(), 9)

	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestGetHistory(t *testing.T) {
	users := &mockUserRepo{}
	points := &mockPointRepo{}
	entries := []*model.PointTransaction{
		{ID: 2, UserID: 1, Points: 50, Type: model.PointTypeRedeem},
		{ID: 1, UserID: 1, Points: 10, Type: model.PointTypeEarn},
	}
	points.On("ListByUser", mock.Anything, uint64(1), 1, 20).
		Return(entries, int64(2), nil)

	got, total, err := newService(users, points).GetHistory(context.Background(), 1, 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)
}

func TestGetSummary(t *testing.T) {
	users := &mockUserRepo{}
	points := &mockPointRepo{}
	users.On("GetByID", mock.Anything, uint64(1)).
		Return(&model.User{ID: 1, RewardPoints: 35}, nil)
	points.On("SumByType", mock.Anything, uint64(1)).
		Return(map[string]int64{
			model.PointTypeEarn:         60,
			model.PointTypeRedeem:       50,
			model.PointTypeRedeemRefund: 25,
		}, nil)

	summary, err := newService(users, points).GetSummary(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(60), summary.TotalEarned)
	assert.Equal(t, int64(50), summary.TotalRedeemed)
	assert.Equal(t, int64(25), summary.TotalRefunded)
	assert.Equal(t, int64(35), summary.CurrentBalance)
}

func TestGetSummaryEmptyLedger(t *testing.T) {
	users := &mockUserRepo{}
	points := &mockPointRepo{}
	users.On("GetByID", mock.Anything, uint64(1)).
		Return(&model.User{ID: 1, RewardPoints: 0}, nil)
	points.On("SumByType", mock.Anything, uint64(1)).
		Return(map[string]int64{}, nil)

	summary, err := newService(users, points).GetSummary(context.Background(), 1)

	assert.NoError(t, err)
	assert.Zero(t, summary.TotalEarned)
	assert.Zero(t, summary.CurrentBalance)
}
