package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// Account names a balance held by the transfer host. Every name starts with
// the prefix of its kind, so an external account never equals an escrow
// account whatever the principal string holds.
type Account string

const (
	externalPrefix = "external:"
	poolPrefix     = "pool:"
	campaignPrefix = "campaign:"
)

// ExternalAccount is the account a principal funds and receives payments on.
func ExternalAccount(p identity.Principal) Account {
	return Account(externalPrefix + string(p))
}

// PoolAccount is the escrow account backing the platform pool.
func PoolAccount(owner identity.Principal) Account {
	return Account(poolPrefix + string(owner))
}

// CampaignVaultAccount is the escrow account backing a campaign vault.
func CampaignVaultAccount(id uint64, advertiser identity.Principal) Account {
	return Account(fmt.Sprintf("%s%d:%s", campaignPrefix, id, advertiser))
}

// IsExternal reports whether a names a principal's external account.
func (a Account) IsExternal() bool {
	return strings.HasPrefix(string(a), externalPrefix)
}

// Balances is a set of account balances. The memory store stages each
// transaction in one and folds it into the committed set on success.
type Balances map[Account]uint64

// Transfer moves amount from one account to another. Nothing changes on
// error.
func (b Balances) Transfer(from, to Account, amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if b[from] < amount {
		return fmt.Errorf("%w: account %q holds %d, needs %d", ErrInsufficientFunds, from, b[from], amount)
	}
	if from == to {
		return nil
	}
	if b[to] > math.MaxUint64-amount {
		return ErrOverflow
	}
	b[from] -= amount
	b[to] += amount
	return nil
}

// Fund credits an external account from outside the system.
func (b Balances) Fund(account Account, amount uint64) error {
	if !account.IsExternal() {
		return fmt.Errorf("%w: %q", ErrEscrowAccount, account)
	}
	if b[account] > math.MaxUint64-amount {
		return ErrOverflow
	}
	b[account] += amount
	return nil
}

// Total sums every account.
func (b Balances) Total() uint64 {
	var total uint64
	for _, v := range b {
		total += v
	}
	return total
}
