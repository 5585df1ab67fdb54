package model

import (
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/campaign"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
)

// News is a content item row
type News struct {
	Reporter  string    `gorm:"column:reporter;primaryKey"`
	ID        uint64    `gorm:"column:id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	State     int       `gorm:"column:state"`
}

func (News) TableName() string {
	return "news"
}

// NewsFrom builds a row from an item
func NewsFrom(it *news.Item) News {
	return News{
		Reporter:  string(it.Reporter),
		ID:        it.ID,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
		State:     int(it.State),
	}
}

func (n News) Item() *news.Item {
	return &news.Item{
		ID:        n.ID,
		Reporter:  identity.Principal(n.Reporter),
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
		State:     news.State(n.State),
	}
}

// Campaign is an advertising campaign row
type Campaign struct {
	Advertiser string    `gorm:"column:advertiser;primaryKey"`
	ID         uint64    `gorm:"column:id;primaryKey"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
	State      int       `gorm:"column:state"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignFrom builds a row from a campaign
func CampaignFrom(c *campaign.Campaign) Campaign {
	return Campaign{
		Advertiser: string(c.Advertiser),
		ID:         c.ID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		State:      int(c.State),
	}
}

func (c Campaign) Campaign() *campaign.Campaign {
	return &campaign.Campaign{
		ID:         c.ID,
		Advertiser: identity.Principal(c.Advertiser),
		CreatedAt:  c.CreatedAt.UTC(),
		UpdatedAt:  c.UpdatedAt.UTC(),
		State:      campaign.State(c.State),
	}
}
