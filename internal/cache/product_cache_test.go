package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialmall/internal/model"
	"socialmall/pkg/utils"
)

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

func newCache(t *testing.T, repo *mockProductRepo) *ProductCache {
	t.Helper()
	c, err := NewProductCache(repo, time.Minute)
	require.NoError(t, err)
	return c
}

func TestGetProductLoadsOnceThenServesLocally(t *testing.T) {
	repo := &mockProductRepo{}
	c := newCache(t, repo)
	c.Track(10)

	repo.On("GetByID", mock.Anything, uint64(10)).
		Return(&model.Product{ID: 10, Name: "mug", Price: 500}, nil).Once()

	first, err := c.GetProduct(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(500), first.Price)

	second, err := c.GetProduct(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetProductUnknownIDNeverHitsDatabase(t *testing.T) {
	repo := &mockProductRepo{}
	c := newCache(t, repo)

	_, err := c.GetProduct(context.Background(), 404)

	assert.ErrorIs(t, err, utils.ErrProductNotFound)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestInvalidateForcesReload(t *testing.T) {
	repo := &mockProductRepo{}
	c := newCache(t, repo)
	c.Track(10)

	repo.On("GetByID", mock.Anything, uint64(10)).
		Return(&model.Product{ID: 10, Price: 500}, nil).Once()
	_, err := c.GetProduct(context.Background(), 10)
	require.NoError(t, err)

	c.Invalidate(10)

	repo.On("GetByID", mock.Anything, uint64(10)).
		Return(&model.Product{ID: 10, Price: 600}, nil).Once()
	updated, err := c.GetProduct(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(600), updated.Price)
}

func TestWarmSeedsFilter(t *testing.T) {
	repo := &mockProductRepo{}
	c := newCache(t, repo)

	repo.On("List", mock.Anything, false, 1, 500).
		Return([]*model.Product{{ID: 1}, {ID: 2}}, int64(2), nil)
	require.NoError(t, c.Warm(context.Background()))

	repo.On("GetByID", mock.Anything, uint64(2)).
		Return(&model.Product{ID: 2, Price: 100}, nil)
	_, err := c.GetProduct(context.Background(), 2)
	assert.NoError(t, err)
}
