package engine

import (
	"context"
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

func (e *Engine) auditNews(ctx context.Context, caller identity.Principal, op string, id uint64, reporter identity.Principal, item *news.Item, err error) {
	ev := audit.WorkflowEvent{
		Actor:        caller.String(),
		ClientIP:     clientIP(ctx),
		Entity:       "news",
		Operation:    op,
		ItemID:       id,
		Owner:        reporter.String(),
		Success:      err == nil,
		ErrorMessage: errMessage(err),
	}
	if err == nil && item != nil {
		ev.ItemID = item.ID
		ev.State = item.State.String()
	}
	e.audit.Log(ev)
}

// CreateVault opens the caller's content vault with a zero balance.
func (e *Engine) CreateVault(ctx context.Context, caller identity.Principal) (*ledger.Vault, error) {
	const op = "create_vault"
	vault := &ledger.Vault{Owner: caller}
	err := e.run(ctx, op, caller, []grant{write(classVaults)}, func(tx store.Tx, _ time.Time) error {
		return tx.CreateVault(store.VaultKey(caller), vault)
	})
	e.auditLedger(ctx, caller, op, "", "", 0, err)
	if err != nil {
		return nil, err
	}
	return vault, nil
}

// CreateNews creates a news item authored by the caller.
func (e *Engine) CreateNews(ctx context.Context, caller identity.Principal, id uint64) (*news.Item, error) {
	const op = "create_news"
	var item *news.Item
	err := e.run(ctx, op, caller, []grant{write(classNews)}, func(tx store.Tx, now time.Time) error {
		item = news.New(id, caller, now)
		return tx.CreateNews(item)
	})
	e.auditNews(ctx, caller, op, id, caller, item, err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// EditNews re-keys one of the caller's items to newID and marks it Edited.
// Items are keyed by author, so only the author can reach them.
func (e *Engine) EditNews(ctx context.Context, caller identity.Principal, id, newID uint64) (*news.Item, error) {
	const op = "edit_news"
	var item *news.Item
	err := e.run(ctx, op, caller, []grant{write(classNews)}, func(tx store.Tx, now time.Time) error {
		it, err := tx.News(id, caller)
		if err != nil {
			return err
		}
		if err := it.Edit(newID, now); err != nil {
			return err
		}
		item = it
		return tx.PutNews(id, it)
	})
	e.auditNews(ctx, caller, op, id, caller, item, err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteNews removes one of the caller's unpublished items.
func (e *Engine) DeleteNews(ctx context.Context, caller identity.Principal, id uint64) error {
	const op = "delete_news"
	err := e.run(ctx, op, caller, []grant{write(classNews)}, func(tx store.Tx, _ time.Time) error {
		it, err := tx.News(id, caller)
		if err != nil {
			return err
		}
		if err := it.Deletable(); err != nil {
			return err
		}
		return tx.DeleteNews(id, caller)
	})
	e.auditNews(ctx, caller, op, id, caller, nil, err)
	return err
}

// reviewNews applies a senior's decision to an item.
func (e *Engine) reviewNews(ctx context.Context, op string, caller, reporter identity.Principal, id uint64, decide func(*news.Item) error) (*news.Item, error) {
	var item *news.Item
	err := e.run(ctx, op, caller, []grant{read(classRegistry), write(classNews)}, func(tx store.Tx, _ time.Time) error {
		reg, err := e.gateRegistry(tx)
		if err != nil {
			return err
		}
		if err := e.gate.RequireRole(reg, caller, registry.RoleSenior); err != nil {
			return err
		}
		it, err := tx.News(id, reporter)
		if err != nil {
			return err
		}
		if err := decide(it); err != nil {
			return err
		}
		item = it
		return tx.PutNews(id, it)
	})
	e.auditNews(ctx, caller, op, id, reporter, item, err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ApproveNews marks an item Approved. The caller must be a senior.
func (e *Engine) ApproveNews(ctx context.Context, caller, reporter identity.Principal, id uint64) (*news.Item, error) {
	return e.reviewNews(ctx, "approve_news", caller, reporter, id, (*news.Item).Approve)
}

// DenyNews marks an item Denied. The caller must be a senior.
func (e *Engine) DenyNews(ctx context.Context, caller, reporter identity.Principal, id uint64) (*news.Item, error) {
	return e.reviewNews(ctx, "deny_news", caller, reporter, id, (*news.Item).Deny)
}

// PublishNews publishes an Approved item and credits the fixed fee to the
// author's vault. The caller must be an admin.
func (e *Engine) PublishNews(ctx context.Context, caller, reporter identity.Principal, id uint64) (*news.Item, error) {
	const op = "publish_news"
	var item *news.Item
	grants := []grant{read(classRegistry), write(classNews), write(classVaults)}
	err := e.run(ctx, op, caller, grants, func(tx store.Tx, _ time.Time) error {
		reg, err := e.gateRegistry(tx)
		if err != nil {
			return err
		}
		if err := e.gate.RequireRole(reg, caller, registry.RoleAdmin); err != nil {
			return err
		}
		it, err := tx.News(id, reporter)
		if err != nil {
			return err
		}
		if err := it.Publish(); err != nil {
			return err
		}
		vault, err := tx.Vault(store.VaultKey(reporter))
		if err != nil {
			return err
		}
		if err := vault.Credit(e.fee); err != nil {
			return err
		}
		if err := tx.PutNews(id, it); err != nil {
			return err
		}
		item = it
		return tx.PutVault(store.VaultKey(reporter), vault)
	})
	e.auditNews(ctx, caller, op, id, reporter, item, err)
	if err != nil {
		return nil, err
	}
	return item, nil
}
