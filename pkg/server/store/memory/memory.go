package memory

import (
	"context"
	"sync"

	"github.com/doodlesbykumbi/newsdesk/pkg/campaign"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// Ensure Store implements store.HealthStore
var _ store.HealthStore = (*Store)(nil)

// Store keeps every entity in memory.
type Store struct {
	mu         sync.RWMutex
	registries map[store.Key][]registry.Entry
	pools      map[store.Key]ledger.Pool
	vaults     map[store.Key]ledger.Vault
	news       map[store.Key]news.Item
	campaigns  map[store.Key]campaign.Campaign
	balances   ledger.Balances
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		registries: map[store.Key][]registry.Entry{},
		pools:      map[store.Key]ledger.Pool{},
		vaults:     map[store.Key]ledger.Vault{},
		news:       map[store.Key]news.Item{},
		campaigns:  map[store.Key]campaign.Campaign{},
		balances:   ledger.Balances{},
	}
}

// CheckConnectivity always succeeds.
func (s *Store) CheckConnectivity() error {
	return nil
}

// Fund credits an account from outside the system.
func (s *Store) Fund(_ context.Context, account ledger.Account, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances.Fund(account, amount)
}

// Total returns the sum of every account balance.
func (s *Store) Total() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances.Total()
}

// Atomic runs fn against a staged view and commits it if fn succeeds.
func (s *Store) Atomic(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &tx{
		s:          s,
		registries: newTable(s.registries),
		pools:      newTable(s.pools),
		vaults:     newTable(s.vaults),
		news:       newTable(s.news),
		campaigns:  newTable(s.campaigns),
		balances:   ledger.Balances{},
	}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tx.registries.commit()
	tx.pools.commit()
	tx.vaults.commit()
	tx.news.commit()
	tx.campaigns.commit()
	for account, balance := range tx.balances {
		s.balances[account] = balance
	}
	return nil
}

type tx struct {
	s          *Store
	registries *table[[]registry.Entry]
	pools      *table[ledger.Pool]
	vaults     *table[ledger.Vault]
	news       *table[news.Item]
	campaigns  *table[campaign.Campaign]
	balances   ledger.Balances
}

func (t *tx) rlock() func() {
	t.s.mu.RLock()
	return t.s.mu.RUnlock
}

func (t *tx) Registry(owner identity.Principal) ([]registry.Entry, error) {
	defer t.rlock()()
	entries, ok := t.registries.get(store.RegistryKey(owner))
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]registry.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (t *tx) CreateRegistry(owner identity.Principal) error {
	defer t.rlock()()
	k := store.RegistryKey(owner)
	if t.registries.has(k) {
		return store.ErrAlreadyExists
	}
	t.registries.put(k, []registry.Entry{})
	return nil
}

func (t *tx) PutRegistry(owner identity.Principal, entries []registry.Entry) error {
	defer t.rlock()()
	k := store.RegistryKey(owner)
	if !t.registries.has(k) {
		return store.ErrNotFound
	}
	stored := make([]registry.Entry, len(entries))
	copy(stored, entries)
	t.registries.put(k, stored)
	return nil
}

func (t *tx) Pool(owner identity.Principal) (*ledger.Pool, error) {
	defer t.rlock()()
	p, ok := t.pools.get(store.PoolKey(owner))
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (t *tx) CreatePool(pool *ledger.Pool) error {
	defer t.rlock()()
	k := store.PoolKey(pool.Owner)
	if t.pools.has(k) {
		return store.ErrAlreadyExists
	}
	t.pools.put(k, *pool)
	return nil
}

func (t *tx) PutPool(pool *ledger.Pool) error {
	defer t.rlock()()
	k := store.PoolKey(pool.Owner)
	if !t.pools.has(k) {
		return store.ErrNotFound
	}
	t.pools.put(k, *pool)
	return nil
}

func (t *tx) Vault(key store.Key) (*ledger.Vault, error) {
	defer t.rlock()()
	v, ok := t.vaults.get(key)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &v, nil
}

func (t *tx) CreateVault(key store.Key, vault *ledger.Vault) error {
	defer t.rlock()()
	if t.vaults.has(key) {
		return store.ErrAlreadyExists
	}
	t.vaults.put(key, *vault)
	return nil
}

func (t *tx) PutVault(key store.Key, vault *ledger.Vault) error {
	defer t.rlock()()
	if !t.vaults.has(key) {
		return store.ErrNotFound
	}
	t.vaults.put(key, *vault)
	return nil
}

func (t *tx) DeleteVault(key store.Key) error {
	defer t.rlock()()
	if !t.vaults.has(key) {
		return store.ErrNotFound
	}
	t.vaults.del(key)
	return nil
}

func (t *tx) News(id uint64, reporter identity.Principal) (*news.Item, error) {
	defer t.rlock()()
	it, ok := t.news.get(store.NewsKey(id, reporter))
	if !ok {
		return nil, store.ErrNotFound
	}
	return &it, nil
}

func (t *tx) CreateNews(item *news.Item) error {
	defer t.rlock()()
	k := store.NewsKey(item.ID, item.Reporter)
	if t.news.has(k) {
		return store.ErrAlreadyExists
	}
	t.news.put(k, *item)
	return nil
}

func (t *tx) PutNews(oldID uint64, item *news.Item) error {
	defer t.rlock()()
	oldKey := store.NewsKey(oldID, item.Reporter)
	if !t.news.has(oldKey) {
		return store.ErrNotFound
	}
	newKey := store.NewsKey(item.ID, item.Reporter)
	if newKey != oldKey {
		if t.news.has(newKey) {
			return store.ErrAlreadyExists
		}
		t.news.del(oldKey)
	}
	t.news.put(newKey, *item)
	return nil
}

func (t *tx) DeleteNews(id uint64, reporter identity.Principal) error {
	defer t.rlock()()
	k := store.NewsKey(id, reporter)
	if !t.news.has(k) {
		return store.ErrNotFound
	}
	t.news.del(k)
	return nil
}

func (t *tx) Campaign(id uint64, advertiser identity.Principal) (*campaign.Campaign, error) {
	defer t.rlock()()
	c, ok := t.campaigns.get(store.CampaignKey(id, advertiser))
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (t *tx) CreateCampaign(c *campaign.Campaign) error {
	defer t.rlock()()
	k := store.CampaignKey(c.ID, c.Advertiser)
	if t.campaigns.has(k) {
		return store.ErrAlreadyExists
	}
	t.campaigns.put(k, *c)
	return nil
}

func (t *tx) PutCampaign(oldID uint64, c *campaign.Campaign) error {
	defer t.rlock()()
	oldKey := store.CampaignKey(oldID, c.Advertiser)
	if !t.campaigns.has(oldKey) {
		return store.ErrNotFound
	}
	newKey := store.CampaignKey(c.ID, c.Advertiser)
	if newKey != oldKey {
		if t.campaigns.has(newKey) {
			return store.ErrAlreadyExists
		}
		t.campaigns.del(oldKey)
	}
	t.campaigns.put(newKey, *c)
	return nil
}

func (t *tx) DeleteCampaign(id uint64, advertiser identity.Principal) error {
	defer t.rlock()()
	k := store.CampaignKey(id, advertiser)
	if !t.campaigns.has(k) {
		return store.ErrNotFound
	}
	t.campaigns.del(k)
	return nil
}

func (t *tx) balance(account ledger.Account) uint64 {
	if v, ok := t.balances[account]; ok {
		return v
	}
	return t.s.balances[account]
}

func (t *tx) Balance(account ledger.Account) (uint64, error) {
	defer t.rlock()()
	return t.balance(account), nil
}

func (t *tx) Transfer(from, to ledger.Account, amount uint64) error {
	defer t.rlock()()
	staged := ledger.Balances{from: t.balance(from), to: t.balance(to)}
	if err := staged.Transfer(from, to, amount); err != nil {
		return err
	}
	t.balances[from], t.balances[to] = staged[from], staged[to]
	return nil
}
