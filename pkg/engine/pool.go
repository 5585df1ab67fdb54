package engine

import (
	"context"
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

func (e *Engine) auditLedger(ctx context.Context, caller identity.Principal, op string, from, to ledger.Account, amount uint64, err error) {
	e.audit.Log(audit.LedgerEvent{
		Actor:        caller.String(),
		ClientIP:     clientIP(ctx),
		Operation:    op,
		From:         string(from),
		To:           string(to),
		Amount:       amount,
		Success:      err == nil,
		ErrorMessage: errMessage(err),
	})
}

// CreatePool initializes the platform pool with a zero balance.
func (e *Engine) CreatePool(ctx context.Context, caller identity.Principal) (*ledger.Pool, error) {
	const op = "create_pool"
	var pool *ledger.Pool
	err := e.run(ctx, op, caller, []grant{write(classPool)}, func(tx store.Tx, _ time.Time) error {
		if err := e.gate.RequireOwner(caller); err != nil {
			return err
		}
		pool = &ledger.Pool{Owner: e.owner}
		return tx.CreatePool(pool)
	})
	e.auditLedger(ctx, caller, op, "", ledger.PoolAccount(e.owner), 0, err)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// Deposit moves amount from the owner's account into the pool.
func (e *Engine) Deposit(ctx context.Context, caller identity.Principal, amount uint64) (*ledger.Pool, error) {
	const op = "deposit"
	from, to := ledger.ExternalAccount(caller), ledger.PoolAccount(e.owner)
	var pool *ledger.Pool
	err := e.run(ctx, op, caller, []grant{write(classPool), write(classAccounts)}, func(tx store.Tx, _ time.Time) error {
		if err := e.gate.RequireOwner(caller); err != nil {
			return err
		}
		p, err := tx.Pool(e.owner)
		if err != nil {
			return err
		}
		if err := p.Deposit(amount); err != nil {
			return err
		}
		if err := tx.Transfer(from, to, amount); err != nil {
			return err
		}
		pool = p
		return tx.PutPool(p)
	})
	e.auditLedger(ctx, caller, op, from, to, amount, err)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// Withdraw pays amount out of the pool to the owner.
func (e *Engine) Withdraw(ctx context.Context, caller identity.Principal, amount uint64) (*ledger.Pool, error) {
	const op = "withdraw"
	from, to := ledger.PoolAccount(e.owner), ledger.ExternalAccount(e.owner)
	var pool *ledger.Pool
	err := e.run(ctx, op, caller, []grant{write(classPool), write(classAccounts)}, func(tx store.Tx, _ time.Time) error {
		if err := e.gate.RequireOwner(caller); err != nil {
			return err
		}
		p, err := tx.Pool(e.owner)
		if err != nil {
			return err
		}
		if err := p.Withdraw(amount); err != nil {
			return err
		}
		if err := tx.Transfer(from, to, amount); err != nil {
			return err
		}
		pool = p
		return tx.PutPool(p)
	})
	e.auditLedger(ctx, caller, op, from, to, amount, err)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// WithdrawAll pays the whole pool balance to the owner and returns the
// amount paid.
func (e *Engine) WithdrawAll(ctx context.Context, caller identity.Principal) (uint64, error) {
	const op = "withdraw_all"
	from, to := ledger.PoolAccount(e.owner), ledger.ExternalAccount(e.owner)
	var paid uint64
	err := e.run(ctx, op, caller, []grant{write(classPool), write(classAccounts)}, func(tx store.Tx, _ time.Time) error {
		if err := e.gate.RequireOwner(caller); err != nil {
			return err
		}
		p, err := tx.Pool(e.owner)
		if err != nil {
			return err
		}
		amount, err := p.WithdrawAll()
		if err != nil {
			return err
		}
		if err := tx.Transfer(from, to, amount); err != nil {
			return err
		}
		paid = amount
		return tx.PutPool(p)
	})
	e.auditLedger(ctx, caller, op, from, to, paid, err)
	if err != nil {
		return 0, err
	}
	return paid, nil
}

// PayoutJunior settles the junior's content vault out of the pool and
// returns the amount paid.
func (e *Engine) PayoutJunior(ctx context.Context, caller, junior identity.Principal) (uint64, error) {
	const op = "payout_junior"
	from, to := ledger.PoolAccount(e.owner), ledger.ExternalAccount(junior)
	var paid uint64
	grants := []grant{read(classRegistry), write(classVaults), write(classPool), write(classAccounts)}
	err := e.run(ctx, op, caller, grants, func(tx store.Tx, _ time.Time) error {
		reg, err := e.gateRegistry(tx)
		if err != nil {
			return err
		}
		if err := e.gate.RequireRole(reg, caller, registry.RoleAdmin); err != nil {
			return err
		}
		pool, err := tx.Pool(e.owner)
		if err != nil {
			return err
		}
		vault, err := tx.Vault(store.VaultKey(junior))
		if err != nil {
			return err
		}
		amount, err := ledger.Payout(pool, vault)
		if err != nil {
			return err
		}
		if err := tx.Transfer(from, to, amount); err != nil {
			return err
		}
		if err := tx.PutPool(pool); err != nil {
			return err
		}
		paid = amount
		return tx.PutVault(store.VaultKey(junior), vault)
	})
	e.auditLedger(ctx, caller, op, from, to, paid, err)
	if err != nil {
		return 0, err
	}
	return paid, nil
}

// SendTip transfers amount from the caller to another principal.
func (e *Engine) SendTip(ctx context.Context, caller, to identity.Principal, amount uint64) error {
	const op = "send_tip"
	fromAcct, toAcct := ledger.ExternalAccount(caller), ledger.ExternalAccount(to)
	err := e.run(ctx, op, caller, []grant{write(classAccounts)}, func(tx store.Tx, _ time.Time) error {
		return tx.Transfer(fromAcct, toAcct, amount)
	})
	e.auditLedger(ctx, caller, op, fromAcct, toAcct, amount, err)
	return err
}

// SendMintFee transfers amount from the caller to the owner.
func (e *Engine) SendMintFee(ctx context.Context, caller identity.Principal, amount uint64) error {
	const op = "send_mint_fee"
	fromAcct, toAcct := ledger.ExternalAccount(caller), ledger.ExternalAccount(e.owner)
	err := e.run(ctx, op, caller, []grant{write(classAccounts)}, func(tx store.Tx, _ time.Time) error {
		return tx.Transfer(fromAcct, toAcct, amount)
	})
	e.auditLedger(ctx, caller, op, fromAcct, toAcct, amount, err)
	return err
}
