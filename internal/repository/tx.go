package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repositories bound to a single database handle.
// Inside RunInTx every repository shares the same transaction, so an
// order-flag update, a balance mutation and a ledger append commit or
// roll back as one unit.
type Repos struct {
	Users    UserRepository
	Products ProductRepository
	Posts    PostRepository
	Carts    CartRepository
	Orders   OrderRepository
	Points   PointTransactionRepository
	Payments PaymentRepository
}

// NewRepos creates a repository bundle on the given handle
func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Users:    NewUserRepository(db),
		Products: NewProductRepository(db),
		Posts:    NewPostRepository(db),
		Carts:    NewCartRepository(db),
		Orders:   NewOrderRepository(db),
		Points:   NewPointTransactionRepository(db),
		Payments: NewPaymentRepository(db),
	}
}

// TxFunc runs against a transaction-bound repository bundle
type TxFunc func(r *Repos) error

// TxManager runs a unit of work atomically
type TxManager interface {
	RunInTx(ctx context.Context, fn TxFunc) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a gorm-backed transaction manager
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// RunInTx runs fn inside a database transaction. Returning an error
// rolls everything back, including any ledger rows already appended.
func (m *gormTxManager) RunInTx(ctx context.Context, fn TxFunc) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}
