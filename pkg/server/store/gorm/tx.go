package gorm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/newsdesk/pkg/campaign"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/model"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

var _ store.Tx = (*tx)(nil)

type tx struct {
	db *gorm.DB
}

// created maps an INSERT ... ON CONFLICT DO NOTHING result.
func created(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

// changed maps an UPDATE or DELETE result.
func changed(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (t *tx) registryExists(owner identity.Principal) error {
	var row model.Registry
	result := t.db.Raw(`SELECT owner, created_at FROM registries WHERE owner = ? FOR UPDATE`, string(owner)).Scan(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (t *tx) Registry(owner identity.Principal) ([]registry.Entry, error) {
	if err := t.registryExists(owner); err != nil {
		return nil, err
	}
	var rows []model.Reporter
	err := t.db.Raw(`
		SELECT owner, position, principal, role
		FROM reporters
		WHERE owner = ?
		ORDER BY position
	`, string(owner)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]registry.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.Entry())
	}
	return entries, nil
}

func (t *tx) CreateRegistry(owner identity.Principal) error {
	return created(t.db.Exec(`
		INSERT INTO registries (owner, created_at) VALUES (?, NOW())
		ON CONFLICT (owner) DO NOTHING
	`, string(owner)))
}

func (t *tx) PutRegistry(owner identity.Principal, entries []registry.Entry) error {
	if err := t.registryExists(owner); err != nil {
		return err
	}
	if err := t.db.Exec(`DELETE FROM reporters WHERE owner = ?`, string(owner)).Error; err != nil {
		return err
	}
	for i, e := range entries {
		err := t.db.Exec(
			`INSERT INTO reporters (owner, position, principal, role) VALUES (?, ?, ?, ?)`,
			string(owner), i, string(e.Principal), int(e.Role),
		).Error
		if err != nil {
			return fmt.Errorf("store reporter %q: %w", e.Principal, err)
		}
	}
	return nil
}

func (t *tx) Pool(owner identity.Principal) (*ledger.Pool, error) {
	var row model.Pool
	result := t.db.Raw(`SELECT owner, balance FROM pools WHERE owner = ? FOR UPDATE`, string(owner)).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return row.Ledger(), nil
}

func (t *tx) CreatePool(pool *ledger.Pool) error {
	return created(t.db.Exec(`
		INSERT INTO pools (owner, balance) VALUES (?, ?)
		ON CONFLICT (owner) DO NOTHING
	`, string(pool.Owner), pool.Balance))
}

func (t *tx) PutPool(pool *ledger.Pool) error {
	return changed(t.db.Exec(`UPDATE pools SET balance = ? WHERE owner = ?`, pool.Balance, string(pool.Owner)))
}

func (t *tx) Vault(key store.Key) (*ledger.Vault, error) {
	var row model.Vault
	result := t.db.Raw(`
		SELECT kind, item_id, owner, balance
		FROM vaults
		WHERE kind = ? AND item_id = ? AND owner = ?
		FOR UPDATE
	`, string(key.Kind), key.ItemID, string(key.Owner)).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return row.Ledger(), nil
}

func (t *tx) CreateVault(key store.Key, vault *ledger.Vault) error {
	return created(t.db.Exec(`
		INSERT INTO vaults (kind, item_id, owner, balance) VALUES (?, ?, ?, ?)
		ON CONFLICT (kind, item_id, owner) DO NOTHING
	`, string(key.Kind), key.ItemID, string(key.Owner), vault.Balance))
}

func (t *tx) PutVault(key store.Key, vault *ledger.Vault) error {
	return changed(t.db.Exec(`
		UPDATE vaults SET balance = ?
		WHERE kind = ? AND item_id = ? AND owner = ?
	`, vault.Balance, string(key.Kind), key.ItemID, string(key.Owner)))
}

func (t *tx) DeleteVault(key store.Key) error {
	return changed(t.db.Exec(`
		DELETE FROM vaults WHERE kind = ? AND item_id = ? AND owner = ?
	`, string(key.Kind), key.ItemID, string(key.Owner)))
}

func (t *tx) News(id uint64, reporter identity.Principal) (*news.Item, error) {
	var row model.News
	result := t.db.Raw(`
		SELECT reporter, id, created_at, updated_at, state
		FROM news
		WHERE reporter = ? AND id = ?
		FOR UPDATE
	`, string(reporter), id).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return row.Item(), nil
}

func (t *tx) CreateNews(item *news.Item) error {
	row := model.NewsFrom(item)
	return created(t.db.Exec(`
		INSERT INTO news (reporter, id, created_at, updated_at, state) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (reporter, id) DO NOTHING
	`, row.Reporter, row.ID, row.CreatedAt, row.UpdatedAt, row.State))
}

func (t *tx) PutNews(oldID uint64, item *news.Item) error {
	row := model.NewsFrom(item)
	if oldID != item.ID {
		var taken int64
		err := t.db.Raw(`SELECT COUNT(*) FROM news WHERE reporter = ? AND id = ?`, row.Reporter, row.ID).Scan(&taken).Error
		if err != nil {
			return err
		}
		if taken > 0 {
			return store.ErrAlreadyExists
		}
	}
	return changed(t.db.Exec(`
		UPDATE news SET id = ?, updated_at = ?, state = ?
		WHERE reporter = ? AND id = ?
	`, row.ID, row.UpdatedAt, row.State, row.Reporter, oldID))
}

func (t *tx) DeleteNews(id uint64, reporter identity.Principal) error {
	return changed(t.db.Exec(`DELETE FROM news WHERE reporter = ? AND id = ?`, string(reporter), id))
}

func (t *tx) Campaign(id uint64, advertiser identity.Principal) (*campaign.Campaign, error) {
	var row model.Campaign
	result := t.db.Raw(`
		SELECT advertiser, id, created_at, updated_at, state
		FROM campaigns
		WHERE advertiser = ? AND id = ?
		FOR UPDATE
	`, string(advertiser), id).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return row.Campaign(), nil
}

func (t *tx) CreateCampaign(c *campaign.Campaign) error {
	row := model.CampaignFrom(c)
	return created(t.db.Exec(`
		INSERT INTO campaigns (advertiser, id, created_at, updated_at, state) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (advertiser, id) DO NOTHING
	`, row.Advertiser, row.ID, row.CreatedAt, row.UpdatedAt, row.State))
}

func (t *tx) PutCampaign(oldID uint64, c *campaign.Campaign) error {
	row := model.CampaignFrom(c)
	if oldID != c.ID {
		var taken int64
		err := t.db.Raw(`SELECT COUNT(*) FROM campaigns WHERE advertiser = ? AND id = ?`, row.Advertiser, row.ID).Scan(&taken).Error
		if err != nil {
			return err
		}
		if taken > 0 {
			return store.ErrAlreadyExists
		}
	}
	return changed(t.db.Exec(`
		UPDATE campaigns SET id = ?, updated_at = ?, state = ?
		WHERE advertiser = ? AND id = ?
	`, row.ID, row.UpdatedAt, row.State, row.Advertiser, oldID))
}

func (t *tx) DeleteCampaign(id uint64, advertiser identity.Principal) error {
	return changed(t.db.Exec(`DELETE FROM campaigns WHERE advertiser = ? AND id = ?`, string(advertiser), id))
}

func (t *tx) Balance(account ledger.Account) (uint64, error) {
	var row model.Account
	result := t.db.Raw(`SELECT name, balance FROM accounts WHERE name = ? FOR UPDATE`, string(account)).Scan(&row)
	if result.Error != nil {
		return 0, result.Error
	}
	return row.Balance, nil
}

func (t *tx) Transfer(from, to ledger.Account, amount uint64) error {
	if amount == 0 {
		return ledger.ErrInvalidAmount
	}
	result := t.db.Exec(`
		UPDATE accounts SET balance = balance - ?
		WHERE name = ? AND balance >= ?
	`, amount, string(from), amount)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: account %q cannot cover %d", ledger.ErrInsufficientFunds, from, amount)
	}
	return t.db.Exec(`
		INSERT INTO accounts (name, balance) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance
	`, string(to), amount).Error
}
