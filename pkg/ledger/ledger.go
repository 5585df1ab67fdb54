package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// FixedFee is the amount credited on publish and escrowed per campaign.
const FixedFee uint64 = 100_000_000

var (
	// ErrInvalidAmount is returned for a zero amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a balance cannot cover a debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNothingToPay is returned when a vault holds no credit.
	ErrNothingToPay = errors.New("nothing to pay")

	// ErrOverflow is returned when a credit would overflow a balance.
	ErrOverflow = errors.New("balance overflow")

	// ErrEscrowAccount is returned when funding targets an escrow account.
	ErrEscrowAccount = errors.New("escrow accounts are only funded by transfers")
)

// Pool is the platform-wide escrow balance.
type Pool struct {
	Owner   identity.Principal
	Balance uint64
}

// Deposit credits the pool.
func (p *Pool) Deposit(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if p.Balance > math.MaxUint64-amount {
		return ErrOverflow
	}
	p.Balance += amount
	return nil
}

// Withdraw debits amount from a non-empty pool.
func (p *Pool) Withdraw(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if p.Balance == 0 || amount > p.Balance {
		return fmt.Errorf("%w: withdraw %d from pool holding %d", ErrInsufficientFunds, amount, p.Balance)
	}
	p.Balance -= amount
	return nil
}

// WithdrawAll zeroes the pool and returns the amount it held. The balance is
// read exactly once.
func (p *Pool) WithdrawAll() (uint64, error) {
	amount := p.Balance
	if amount == 0 {
		return 0, fmt.Errorf("%w: pool is empty", ErrInsufficientFunds)
	}
	p.Balance = 0
	return amount, nil
}

// Vault is a per-author or per-campaign sub-balance.
type Vault struct {
	Owner   identity.Principal
	Balance uint64
}

// Credit adds amount to the vault.
func (v *Vault) Credit(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if v.Balance > math.MaxUint64-amount {
		return ErrOverflow
	}
	v.Balance += amount
	return nil
}

// Debit removes amount from the vault.
func (v *Vault) Debit(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if amount > v.Balance {
		return fmt.Errorf("%w: debit %d from vault holding %d", ErrInsufficientFunds, amount, v.Balance)
	}
	v.Balance -= amount
	return nil
}

// Drain zeroes a non-empty vault and returns what it held.
func (v *Vault) Drain() (uint64, error) {
	amount := v.Balance
	if amount == 0 {
		return 0, ErrNothingToPay
	}
	v.Balance = 0
	return amount, nil
}

// Payout settles a vault's credit out of the pool. It requires a non-empty
// vault and a pool holding strictly more than the vault, then debits the pool
// by the vault balance and zeroes the vault. The returned amount is what the
// caller must transfer to the payee.
func Payout(pool *Pool, vault *Vault) (uint64, error) {
	amount := vault.Balance
	if amount == 0 {
		return 0, ErrNothingToPay
	}
	if pool.Balance <= amount {
		return 0, fmt.Errorf("%w: pool holds %d, payout needs more than %d", ErrInsufficientFunds, pool.Balance, amount)
	}
	pool.Balance -= amount
	vault.Balance = 0
	return amount, nil
}
