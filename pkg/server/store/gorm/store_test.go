package gorm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func TestStore_DepositPool(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT owner, balance FROM pools WHERE owner = \$1 FOR UPDATE`).
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows([]string{"owner", "balance"}).AddRow("owner", 500))
	mock.ExpectExec(`UPDATE pools SET balance`).
		WithArgs(uint64(600), "owner").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		pool, err := tx.Pool("owner")
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(500), pool.Balance)
		pool.Balance += 100
		return tx.PutPool(pool)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PoolNotFoundRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM pools`).
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows([]string{"owner", "balance"}))
	mock.ExpectRollback()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		_, err := tx.Pool("owner")
		return err
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateVaultConflict(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO vaults`).
		WithArgs(string(store.KindVault), uint64(0), "alice", uint64(0)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		return tx.CreateVault(store.VaultKey("alice"), &ledger.Vault{Owner: "alice"})
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Registry(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM registries WHERE owner = \$1 FOR UPDATE`).
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows([]string{"owner", "created_at"}).AddRow("owner", time.Now()))
	mock.ExpectQuery(`FROM reporters`).
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows([]string{"owner", "position", "principal", "role"}).
			AddRow("owner", 0, "m", 2).
			AddRow("owner", 1, "s", 1))
	mock.ExpectCommit()

	var entries []registry.Entry
	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		var err error
		entries, err = tx.Registry("owner")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []registry.Entry{
		{Principal: "m", Role: registry.RoleAdmin},
		{Principal: "s", Role: registry.RoleSenior},
	}, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PutRegistryRewritesRows(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM registries`).
		WithArgs("owner").
		WillReturnRows(sqlmock.NewRows([]string{"owner", "created_at"}).AddRow("owner", time.Now()))
	mock.ExpectExec(`DELETE FROM reporters WHERE owner`).
		WithArgs("owner").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO reporters`).
		WithArgs("owner", 0, "m", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		return tx.PutRegistry("owner", []registry.Entry{{Principal: "m", Role: registry.RoleAdmin}})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PutNewsRekeyConflict(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM news`).
		WithArgs("alice", uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		return tx.PutNews(1, &news.Item{ID: 2, Reporter: "alice", State: news.StateEdited})
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_News(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM news`).
		WithArgs("alice", uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"reporter", "id", "created_at", "updated_at", "state"}).
			AddRow("alice", 1, created, created, int(news.StateApproved)))
	mock.ExpectCommit()

	var item *news.Item
	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		var err error
		item, err = tx.News(1, "alice")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, &news.Item{ID: 1, Reporter: "alice", CreatedAt: created, UpdatedAt: created, State: news.StateApproved}, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TransferInsufficientFunds(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts SET balance = balance -`).
		WithArgs(uint64(10), "a", uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		return tx.Transfer("a", "b", 10)
	})
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Transfer(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts SET balance = balance -`).
		WithArgs(uint64(10), "a", uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs("b", uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		return tx.Transfer("a", "b", 10)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CallbackErrorRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO pools`).
		WithArgs("owner", uint64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		if err := tx.CreatePool(&ledger.Pool{Owner: "owner"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Fund(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs("external:alice", uint64(1000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Fund(context.Background(), ledger.ExternalAccount("alice"), 1000))
	assert.ErrorIs(t, s.Fund(context.Background(), ledger.PoolAccount("owner"), 1000), ledger.ErrEscrowAccount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CheckConnectivity(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, s.CheckConnectivity())
	assert.NoError(t, mock.ExpectationsWereMet())
}
