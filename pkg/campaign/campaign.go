package campaign

//go:generate go run github.com/dmarkham/enumer -type State -trimprefix State -transform lower -json -output state_enumer.go

import (
	"errors"
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// State is the workflow state of a campaign. The numeric values are stored.
type State int

const (
	StateCreated State = iota
	StateEdited
	StateApproved
	StateDenied
)

// ErrSettled is returned when reviewing a campaign whose escrow has already
// been paid out.
var ErrSettled = errors.New("campaign is already settled")

// Campaign is an advertising campaign.
type Campaign struct {
	ID         uint64             `json:"id"`
	Advertiser identity.Principal `json:"advertiser"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	State      State              `json:"state"`
}

// New returns a Created campaign stamped with now.
func New(id uint64, advertiser identity.Principal, now time.Time) *Campaign {
	return &Campaign{
		ID:         id,
		Advertiser: advertiser,
		CreatedAt:  now,
		UpdatedAt:  now,
		State:      StateCreated,
	}
}

// Settled reports whether a review decision has been recorded.
func (c *Campaign) Settled() bool {
	return c.State == StateApproved || c.State == StateDenied
}

// Edit re-keys the campaign to newID and marks it Edited.
func (c *Campaign) Edit(newID uint64, now time.Time) error {
	if c.Settled() {
		return ErrSettled
	}
	c.ID = newID
	c.UpdatedAt = now
	c.State = StateEdited
	return nil
}

// Approve marks an unsettled campaign Approved.
func (c *Campaign) Approve() error {
	if c.Settled() {
		return ErrSettled
	}
	c.State = StateApproved
	return nil
}

// Deny marks an unsettled campaign Denied.
func (c *Campaign) Deny() error {
	if c.Settled() {
		return ErrSettled
	}
	c.State = StateDenied
	return nil
}
