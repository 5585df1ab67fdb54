package gorm

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// Ensure Store implements store.HealthStore
var _ store.HealthStore = (*Store)(nil)

// Store implements store.Store using GORM
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Atomic runs fn inside a database transaction.
func (s *Store) Atomic(ctx context.Context, fn func(store.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&tx{db: db})
	})
}

// Fund credits an account from outside the system.
func (s *Store) Fund(ctx context.Context, account ledger.Account, amount uint64) error {
	if !account.IsExternal() {
		return fmt.Errorf("%w: %q", ledger.ErrEscrowAccount, account)
	}
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO accounts (name, balance) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance
	`, string(account), amount).Error
}

// CheckConnectivity verifies database connectivity
func (s *Store) CheckConnectivity() error {
	return s.db.Exec("SELECT 1").Error
}
