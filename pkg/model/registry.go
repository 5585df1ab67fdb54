package model

import (
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
)

// Registry marks that a registry exists for an owner
type Registry struct {
	Owner     string    `gorm:"column:owner;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Registry) TableName() string {
	return "registries"
}

// Reporter is one occupied registry slot
type Reporter struct {
	Owner     string `gorm:"column:owner;primaryKey"`
	Position  int    `gorm:"column:position;primaryKey"`
	Principal string `gorm:"column:principal"`
	Role      int    `gorm:"column:role"`
}

func (Reporter) TableName() string {
	return "reporters"
}

// Entry converts the row to a registry entry
func (r Reporter) Entry() registry.Entry {
	return registry.Entry{
		Principal: identity.Principal(r.Principal),
		Role:      registry.Role(r.Role),
	}
}
