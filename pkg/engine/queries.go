package engine

import (
	"context"
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/campaign"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

// query runs a read-only fn under read locks. Queries are not gated.
func (e *Engine) query(ctx context.Context, op string, classes []class, fn func(tx store.Tx) error) error {
	grants := make([]grant, len(classes))
	for i, c := range classes {
		grants[i] = read(c)
	}
	return e.run(ctx, op, "", grants, func(tx store.Tx, _ time.Time) error {
		return fn(tx)
	})
}

// Registry returns the registry entries in order.
func (e *Engine) Registry(ctx context.Context) ([]registry.Entry, error) {
	var entries []registry.Entry
	err := e.query(ctx, "get_registry", []class{classRegistry}, func(tx store.Tx) error {
		reg, err := e.loadRegistry(tx)
		if err != nil {
			return err
		}
		entries = reg.Entries()
		return nil
	})
	return entries, err
}

// Pool returns the platform pool.
func (e *Engine) Pool(ctx context.Context) (*ledger.Pool, error) {
	var pool *ledger.Pool
	err := e.query(ctx, "get_pool", []class{classPool}, func(tx store.Tx) (err error) {
		pool, err = tx.Pool(e.owner)
		return err
	})
	return pool, err
}

// Vault returns a reporter's content vault.
func (e *Engine) Vault(ctx context.Context, reporter identity.Principal) (*ledger.Vault, error) {
	var vault *ledger.Vault
	err := e.query(ctx, "get_vault", []class{classVaults}, func(tx store.Tx) (err error) {
		vault, err = tx.Vault(store.VaultKey(reporter))
		return err
	})
	return vault, err
}

// CampaignVault returns the escrow vault of a campaign.
func (e *Engine) CampaignVault(ctx context.Context, advertiser identity.Principal, id uint64) (*ledger.Vault, error) {
	var vault *ledger.Vault
	err := e.query(ctx, "get_campaign_vault", []class{classVaults}, func(tx store.Tx) (err error) {
		vault, err = tx.Vault(store.CampaignVaultKey(id, advertiser))
		return err
	})
	return vault, err
}

// News returns a news item.
func (e *Engine) News(ctx context.Context, reporter identity.Principal, id uint64) (*news.Item, error) {
	var item *news.Item
	err := e.query(ctx, "get_news", []class{classNews}, func(tx store.Tx) (err error) {
		item, err = tx.News(id, reporter)
		return err
	})
	return item, err
}

// Campaign returns a campaign.
func (e *Engine) Campaign(ctx context.Context, advertiser identity.Principal, id uint64) (*campaign.Campaign, error) {
	var c *campaign.Campaign
	err := e.query(ctx, "get_campaign", []class{classCampaigns}, func(tx store.Tx) (err error) {
		c, err = tx.Campaign(id, advertiser)
		return err
	})
	return c, err
}

// Balance returns the amount held by the external account of p.
func (e *Engine) Balance(ctx context.Context, p identity.Principal) (uint64, error) {
	var amount uint64
	err := e.query(ctx, "get_balance", []class{classAccounts}, func(tx store.Tx) (err error) {
		amount, err = tx.Balance(ledger.ExternalAccount(p))
		return err
	})
	return amount, err
}

// Fund credits p's external account from outside the system. It stands in
// for the transfer host's own funding and is not an engine operation.
func (e *Engine) Fund(ctx context.Context, p identity.Principal, amount uint64) error {
	if amount == 0 {
		return classify("fund", ledger.ErrInvalidAmount)
	}
	release := e.locks.acquire(write(classAccounts))
	defer release()
	if err := e.store.Fund(ctx, ledger.ExternalAccount(p), amount); err != nil {
		return classify("fund", err)
	}
	return nil
}
