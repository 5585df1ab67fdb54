package ledger

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

func TestPoolDeposit(t *testing.T) {
	p := Pool{Owner: "owner"}
	assert.ErrorIs(t, p.Deposit(0), ErrInvalidAmount)
	assert.Zero(t, p.Balance)

	require.NoError(t, p.Deposit(500_000_000))
	assert.Equal(t, uint64(500_000_000), p.Balance)

	p.Balance = math.MaxUint64
	assert.ErrorIs(t, p.Deposit(1), ErrOverflow)
	assert.Equal(t, uint64(math.MaxUint64), p.Balance)
}

func TestPoolWithdraw(t *testing.T) {
	tests := []struct {
		name    string
		balance uint64
		amount  uint64
		wantErr error
		want    uint64
	}{
		{name: "partial", balance: 10, amount: 4, want: 6},
		{name: "exact", balance: 10, amount: 10, want: 0},
		{name: "over balance", balance: 10, amount: 11, wantErr: ErrInsufficientFunds, want: 10},
		{name: "empty pool", balance: 0, amount: 1, wantErr: ErrInsufficientFunds, want: 0},
		{name: "zero amount", balance: 10, amount: 0, wantErr: ErrInvalidAmount, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pool{Balance: tt.balance}
			err := p.Withdraw(tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, p.Balance)
		})
	}
}

func TestPoolWithdrawAll(t *testing.T) {
	p := Pool{Balance: 42}
	amount, err := p.WithdrawAll()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), amount)
	assert.Zero(t, p.Balance)

	_, err = p.WithdrawAll()
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestVault(t *testing.T) {
	v := Vault{Owner: "alice"}
	assert.ErrorIs(t, v.Credit(0), ErrInvalidAmount)
	require.NoError(t, v.Credit(FixedFee))
	assert.Equal(t, FixedFee, v.Balance)

	assert.ErrorIs(t, v.Debit(FixedFee+1), ErrInsufficientFunds)
	assert.Equal(t, FixedFee, v.Balance)

	amount, err := v.Drain()
	require.NoError(t, err)
	assert.Equal(t, FixedFee, amount)
	assert.Zero(t, v.Balance)

	_, err = v.Drain()
	assert.ErrorIs(t, err, ErrNothingToPay)
}

func TestPayout(t *testing.T) {
	t.Run("settles vault from pool", func(t *testing.T) {
		pool := Pool{Balance: 500_000_000}
		vault := Vault{Owner: "alice", Balance: FixedFee}

		amount, err := Payout(&pool, &vault)
		require.NoError(t, err)
		assert.Equal(t, FixedFee, amount)
		assert.Equal(t, uint64(400_000_000), pool.Balance)
		assert.Zero(t, vault.Balance)
	})

	t.Run("empty vault", func(t *testing.T) {
		pool := Pool{Balance: 500}
		vault := Vault{}
		_, err := Payout(&pool, &vault)
		assert.ErrorIs(t, err, ErrNothingToPay)
		assert.Equal(t, uint64(500), pool.Balance)
	})

	t.Run("pool must exceed vault", func(t *testing.T) {
		pool := Pool{Balance: FixedFee}
		vault := Vault{Balance: FixedFee}
		_, err := Payout(&pool, &vault)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, FixedFee, pool.Balance)
		assert.Equal(t, FixedFee, vault.Balance)
	})
}

func TestTransfer(t *testing.T) {
	b := Balances{"a": 10}
	require.NoError(t, b.Transfer("a", "b", 4))
	assert.Equal(t, uint64(6), b["a"])
	assert.Equal(t, uint64(4), b["b"])

	assert.ErrorIs(t, b.Transfer("a", "b", 7), ErrInsufficientFunds)
	assert.ErrorIs(t, b.Transfer("a", "b", 0), ErrInvalidAmount)
	assert.Equal(t, uint64(10), b.Total())

	require.NoError(t, b.Transfer("a", "a", 6))
	assert.Equal(t, uint64(6), b["a"])
}

func TestAccountNames(t *testing.T) {
	assert.Equal(t, Account("external:alice"), ExternalAccount("alice"))
	assert.Equal(t, Account("pool:owner"), PoolAccount("owner"))
	assert.Equal(t, Account("campaign:7:adv"), CampaignVaultAccount(7, "adv"))
	assert.True(t, ExternalAccount("alice").IsExternal())
	assert.False(t, PoolAccount("owner").IsExternal())
}

func TestAccountKindsAreDisjoint(t *testing.T) {
	escrow := []Account{PoolAccount("owner"), CampaignVaultAccount(7, "adv")}
	for _, a := range escrow {
		assert.NotEqual(t, a, ExternalAccount(identity.Principal(a)))
		assert.False(t, a.IsExternal())
	}
	assert.NotEqual(t, PoolAccount("owner"), ExternalAccount("pool:owner"))
	assert.NotEqual(t, CampaignVaultAccount(7, "adv"), ExternalAccount("campaign:7:adv"))
}

// TestConservation drives random pool operations through a transfer host and
// checks that no value is created or destroyed and the pool mirrors its
// escrow account.
func TestConservation(t *testing.T) {
	const owner = "owner"
	juniors := []Account{"j1", "j2", "j3"}
	poolAccount := PoolAccount(owner)

	rng := rand.New(rand.NewSource(7))
	host := Balances{ExternalAccount(owner): 10 * FixedFee}
	pool := Pool{Owner: owner}
	vaults := make([]Vault, len(juniors))
	total := host.Total()

	for i := 0; i < 2000; i++ {
		amount := uint64(rng.Int63n(int64(FixedFee)))
		switch rng.Intn(5) {
		case 0:
			if err := host.Transfer(ExternalAccount(owner), poolAccount, amount); err == nil {
				require.NoError(t, pool.Deposit(amount))
			}
		case 1:
			before := pool
			if err := pool.Withdraw(amount); err == nil {
				require.NoError(t, host.Transfer(poolAccount, ExternalAccount(owner), amount))
			} else {
				assert.Equal(t, before, pool)
			}
		case 2:
			if paid, err := pool.WithdrawAll(); err == nil {
				require.NoError(t, host.Transfer(poolAccount, ExternalAccount(owner), paid))
			}
		case 3:
			_ = vaults[rng.Intn(len(vaults))].Credit(FixedFee)
		case 4:
			j := rng.Intn(len(juniors))
			poolBefore, vaultBefore := pool.Balance, vaults[j].Balance
			paid, err := Payout(&pool, &vaults[j])
			if err == nil {
				require.NoError(t, host.Transfer(poolAccount, juniors[j], paid))
				assert.Equal(t, poolBefore-vaultBefore, pool.Balance)
				assert.Zero(t, vaults[j].Balance)
			} else {
				assert.Equal(t, poolBefore, pool.Balance)
				assert.Equal(t, vaultBefore, vaults[j].Balance)
			}
		}

		require.Equal(t, total, host.Total(), "step %d", i)
		require.Equal(t, pool.Balance, host[poolAccount], "step %d", i)
	}
}
