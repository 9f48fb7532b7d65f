package order

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialmall/internal/model"
	"socialmall/internal/repository"
)

// fakeTxManager hands the test's mock repository bundle to the unit of
// work, so the flow inside RunInTx is observable without a database.
type fakeTxManager struct {
	repos *repository.Repos
}

func (m *fakeTxManager) RunInTx(_ context.Context, fn repository.TxFunc) error {
	return fn(m.repos)
}

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

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, activeOnly bool, page, pageSize int) ([]*model.Product, int64, error) {
	args := m.Called(ctx, activeOnly, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) Update(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) UpdateStatus(ctx context.Context, id uint64, status int8) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostRepo) GetByIDs(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *mockPostRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Post, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) ListVisible(ctx context.Context, page, pageSize int) ([]*model.Post, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) UpdateStatus(ctx context.Context, id uint64, status int8) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *mockCartRepo) GetOrCreate(ctx context.Context, userID uint64) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *mockCartRepo) AddItem(ctx context.Context, cartID uint64, item *model.CartItem) error {
	return m.Called(ctx, cartID, item).Error(0)
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, cartID, itemID uint64) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

func (m *mockCartRepo) Clear(ctx context.Context, cartID uint64) error {
	return m.Called(ctx, cartID).Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *mockOrderRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Order, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) ListAll(ctx context.Context, page, pageSize int) ([]*model.Order, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) UpdateStatusFrom(ctx context.Context, id uint64, from []string, to string) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) UpdatePaymentStatus(ctx context.Context, id uint64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockOrderRepo) MarkRewardDeducted(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) ClearRewardDeducted(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) MarkRewardProcessed(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) ClearRewardProcessed(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
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

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) ListByOrder(ctx context.Context, orderID uint64) ([]*model.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Payment), args.Error(1)
}

// testEnv bundles the mocks behind a service instance
type testEnv struct {
	users    *mockUserRepo
	products *mockProductRepo
	posts    *mockPostRepo
	carts    *mockCartRepo
	orders   *mockOrderRepo
	points   *mockPointRepo
	payments *mockPaymentRepo
	repos    *repository.Repos
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:    &mockUserRepo{},
		products: &mockProductRepo{},
		posts:    &mockPostRepo{},
		carts:    &mockCartRepo{},
		orders:   &mockOrderRepo{},
		points:   &mockPointRepo{},
		payments: &mockPaymentRepo{},
	}
	env.repos = &repository.Repos{
		Users:    env.users,
		Products: env.products,
		Posts:    env.posts,
		Carts:    env.carts,
		Orders:   env.orders,
		Points:   env.points,
		Payments: env.payments,
	}
	return env
}

func (env *testEnv) assertExpectations(t mock.TestingT) {
	env.users.AssertExpectations(t)
	env.products.AssertExpectations(t)
	env.posts.AssertExpectations(t)
	env.carts.AssertExpectations(t)
	env.orders.AssertExpectations(t)
	env.points.AssertExpectations(t)
	env.payments.AssertExpectations(t)
}
