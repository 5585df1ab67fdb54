package model

import (
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
)

// Pool is the platform pool row
type Pool struct {
	Owner   string `gorm:"column:owner;primaryKey"`
	Balance uint64 `gorm:"column:balance"`
}

func (Pool) TableName() string {
	return "pools"
}

func (p Pool) Ledger() *ledger.Pool {
	return &ledger.Pool{Owner: identity.Principal(p.Owner), Balance: p.Balance}
}

// Vault is a content or campaign vault row, keyed by seed kind, item id and
// owner
type Vault struct {
	Kind    string `gorm:"column:kind;primaryKey"`
	ItemID  uint64 `gorm:"column:item_id;primaryKey"`
	Owner   string `gorm:"column:owner;primaryKey"`
	Balance uint64 `gorm:"column:balance"`
}

func (Vault) TableName() string {
	return "vaults"
}

func (v Vault) Ledger() *ledger.Vault {
	return &ledger.Vault{Owner: identity.Principal(v.Owner), Balance: v.Balance}
}

// Account is a balance held by the transfer host
type Account struct {
	Name    string `gorm:"column:name;primaryKey"`
	Balance uint64 `gorm:"column:balance"`
}

func (Account) TableName() string {
	return "accounts"
}
