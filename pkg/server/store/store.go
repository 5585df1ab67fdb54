package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/newsdesk/pkg/campaign"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
)

// ErrNotFound is returned when a keyed entity doesn't exist
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when creating an entity whose key is taken
var ErrAlreadyExists = errors.New("record already exists")

// Kind is the seed that namespaces a Key.
type Kind string

const (
	KindRegistry      Kind = "user_"
	KindPool          Kind = "ownervault_"
	KindVault         Kind = "vault_"
	KindNews          Kind = "pool_"
	KindCampaign      Kind = "campaign_"
	KindCampaignVault Kind = "campaign_vault_"
)

// Key addresses one persisted entity.
type Key struct {
	Kind   Kind
	ItemID uint64
	Owner  identity.Principal
}

func (k Key) String() string {
	switch k.Kind {
	case KindNews, KindCampaign, KindCampaignVault:
		return fmt.Sprintf("%s%d_%s", k.Kind, k.ItemID, k.Owner)
	default:
		return fmt.Sprintf("%s%s", k.Kind, k.Owner)
	}
}

// RegistryKey addresses the registry kept for owner.
func RegistryKey(owner identity.Principal) Key {
	return Key{Kind: KindRegistry, Owner: owner}
}

// PoolKey addresses the platform pool of owner.
func PoolKey(owner identity.Principal) Key {
	return Key{Kind: KindPool, Owner: owner}
}

// VaultKey addresses the content vault of a reporter.
func VaultKey(reporter identity.Principal) Key {
	return Key{Kind: KindVault, Owner: reporter}
}

// CampaignVaultKey addresses the escrow vault of a campaign.
func CampaignVaultKey(id uint64, advertiser identity.Principal) Key {
	return Key{Kind: KindCampaignVault, ItemID: id, Owner: advertiser}
}

// NewsKey addresses a news item.
func NewsKey(id uint64, reporter identity.Principal) Key {
	return Key{Kind: KindNews, ItemID: id, Owner: reporter}
}

// CampaignKey addresses a campaign.
func CampaignKey(id uint64, advertiser identity.Principal) Key {
	return Key{Kind: KindCampaign, ItemID: id, Owner: advertiser}
}

// Tx is the read-write view handed to an Atomic callback.
//
// Getters return ErrNotFound for absent keys, Create* return
// ErrAlreadyExists for taken keys, and Put*/Delete* return ErrNotFound when
// the entity is missing. Returned values are copies; callers write them back
// with Put*.
type Tx interface {
	Registry(owner identity.Principal) ([]registry.Entry, error)
	CreateRegistry(owner identity.Principal) error
	PutRegistry(owner identity.Principal, entries []registry.Entry) error

	Pool(owner identity.Principal) (*ledger.Pool, error)
	CreatePool(pool *ledger.Pool) error
	PutPool(pool *ledger.Pool) error

	Vault(key Key) (*ledger.Vault, error)
	CreateVault(key Key, vault *ledger.Vault) error
	PutVault(key Key, vault *ledger.Vault) error
	DeleteVault(key Key) error

	News(id uint64, reporter identity.Principal) (*news.Item, error)
	CreateNews(item *news.Item) error
	// PutNews stores item, moving it from oldID when the id changed.
	PutNews(oldID uint64, item *news.Item) error
	DeleteNews(id uint64, reporter identity.Principal) error

	Campaign(id uint64, advertiser identity.Principal) (*campaign.Campaign, error)
	CreateCampaign(c *campaign.Campaign) error
	// PutCampaign stores c, moving it from oldID when the id changed.
	PutCampaign(oldID uint64, c *campaign.Campaign) error
	DeleteCampaign(id uint64, advertiser identity.Principal) error

	// Balance returns the amount held by account; unknown accounts hold 0.
	Balance(account ledger.Account) (uint64, error)
	// Transfer moves amount between accounts, failing with
	// ledger.ErrInsufficientFunds when from cannot cover it.
	Transfer(from, to ledger.Account, amount uint64) error
}

// Store runs atomic units of work.
type Store interface {
	// Atomic runs fn in a transaction. Writes made through the Tx are
	// committed only if fn returns nil.
	Atomic(ctx context.Context, fn func(Tx) error) error

	// Fund credits an account from outside the system.
	Fund(ctx context.Context, account ledger.Account, amount uint64) error
}

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies the backing store is reachable
	CheckConnectivity() error
}
