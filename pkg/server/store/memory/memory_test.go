package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

func TestAtomicCommits(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.Atomic(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.CreateRegistry("owner"))
		require.NoError(t, tx.PutRegistry("owner", []registry.Entry{{Principal: "m", Role: registry.RoleAdmin}}))
		return tx.CreatePool(&ledger.Pool{Owner: "owner"})
	})
	require.NoError(t, err)

	err = s.Atomic(ctx, func(tx store.Tx) error {
		entries, err := tx.Registry("owner")
		require.NoError(t, err)
		assert.Equal(t, []registry.Entry{{Principal: "m", Role: registry.RoleAdmin}}, entries)

		pool, err := tx.Pool("owner")
		require.NoError(t, err)
		assert.Zero(t, pool.Balance)
		return nil
	})
	require.NoError(t, err)
}

func TestAtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Fund(ctx, ledger.ExternalAccount("owner"), 100))
	boom := errors.New("boom")

	err := s.Atomic(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.CreatePool(&ledger.Pool{Owner: "owner", Balance: 60}))
		require.NoError(t, tx.Transfer(ledger.ExternalAccount("owner"), ledger.PoolAccount("owner"), 60))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.Atomic(ctx, func(tx store.Tx) error {
		_, err := tx.Pool("owner")
		assert.ErrorIs(t, err, store.ErrNotFound)
		balance, err := tx.Balance(ledger.ExternalAccount("owner"))
		require.NoError(t, err)
		assert.Equal(t, uint64(100), balance)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(100), s.Total())
}

func TestStagedReadsSeeOwnWrites(t *testing.T) {
	s := New()
	now := time.Unix(1700000000, 0).UTC()

	err := s.Atomic(context.Background(), func(tx store.Tx) error {
		require.NoError(t, tx.CreateNews(news.New(1, "alice", now)))
		it, err := tx.News(1, "alice")
		require.NoError(t, err)
		assert.Equal(t, news.StateCreated, it.State)

		require.NoError(t, tx.DeleteNews(1, "alice"))
		_, err = tx.News(1, "alice")
		assert.ErrorIs(t, err, store.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateConflicts(t *testing.T) {
	s := New()
	now := time.Unix(1700000000, 0).UTC()
	ctx := context.Background()

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		return tx.CreateNews(news.New(1, "alice", now))
	}))

	err := s.Atomic(ctx, func(tx store.Tx) error {
		return tx.CreateNews(news.New(1, "alice", now))
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	err = s.Atomic(ctx, func(tx store.Tx) error {
		return tx.CreateVault(store.VaultKey("alice"), &ledger.Vault{Owner: "alice"})
	})
	require.NoError(t, err)
	err = s.Atomic(ctx, func(tx store.Tx) error {
		return tx.CreateVault(store.VaultKey("alice"), &ledger.Vault{Owner: "alice"})
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestPutNewsRekeys(t *testing.T) {
	s := New()
	now := time.Unix(1700000000, 0).UTC()
	ctx := context.Background()

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.CreateNews(news.New(1, "alice", now)))
		return tx.CreateNews(news.New(2, "alice", now))
	}))

	err := s.Atomic(ctx, func(tx store.Tx) error {
		it, err := tx.News(1, "alice")
		require.NoError(t, err)
		it.ID = 2
		return tx.PutNews(1, it)
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	err = s.Atomic(ctx, func(tx store.Tx) error {
		it, err := tx.News(1, "alice")
		require.NoError(t, err)
		it.ID = 3
		return tx.PutNews(1, it)
	})
	require.NoError(t, err)

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		_, err := tx.News(1, "alice")
		assert.ErrorIs(t, err, store.ErrNotFound)
		it, err := tx.News(3, "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(3), it.ID)
		return nil
	}))
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, b := ledger.ExternalAccount("a"), ledger.ExternalAccount("b")
	require.NoError(t, s.Fund(ctx, a, 10))

	err := s.Atomic(ctx, func(tx store.Tx) error {
		return tx.Transfer(a, b, 11)
	})
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		// a failed transfer inside a committed transaction stages nothing
		assert.ErrorIs(t, tx.Transfer(a, b, 0), ledger.ErrInvalidAmount)
		return tx.Transfer(a, b, 4)
	}))
	require.NoError(t, s.Atomic(ctx, func(tx store.Tx) error {
		gotA, _ := tx.Balance(a)
		gotB, _ := tx.Balance(b)
		assert.Equal(t, uint64(6), gotA)
		assert.Equal(t, uint64(4), gotB)
		return nil
	}))
	assert.Equal(t, uint64(10), s.Total())
}

func TestAtomicHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := New().Atomic(ctx, func(store.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestFundRejectsEscrowAccounts(t *testing.T) {
	s := New()
	err := s.Fund(context.Background(), ledger.PoolAccount("owner"), 10)
	assert.ErrorIs(t, err, ledger.ErrEscrowAccount)
	assert.Zero(t, s.Total())
}
