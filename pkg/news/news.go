package news

//go:generate go run github.com/dmarkham/enumer -type State -trimprefix State -transform lower -json -output state_enumer.go

import (
	"errors"
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// State is the workflow state of an item. The numeric values are stored.
type State int

const (
	StateCreated State = iota
	StateEdited
	StateApproved
	StateDenied
	StatePublished
)

var (
	// ErrNotApproved is returned when publishing an item that is not Approved.
	ErrNotApproved = errors.New("news has not been approved")

	// ErrPublished is returned when changing an item that is already Published.
	ErrPublished = errors.New("news is already published")
)

// Item is a content item authored by a reporter.
type Item struct {
	ID        uint64             `json:"id"`
	Reporter  identity.Principal `json:"reporter"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	State     State              `json:"state"`
}

// New returns a Created item stamped with now.
func New(id uint64, reporter identity.Principal, now time.Time) *Item {
	return &Item{
		ID:        id,
		Reporter:  reporter,
		CreatedAt: now,
		UpdatedAt: now,
		State:     StateCreated,
	}
}

// Edit re-keys the item to newID and marks it Edited.
func (it *Item) Edit(newID uint64, now time.Time) error {
	if it.State == StatePublished {
		return ErrPublished
	}
	it.ID = newID
	it.UpdatedAt = now
	it.State = StateEdited
	return nil
}

// Approve marks the item Approved.
func (it *Item) Approve() error {
	if it.State == StatePublished {
		return ErrPublished
	}
	it.State = StateApproved
	return nil
}

// Deny marks the item Denied.
func (it *Item) Deny() error {
	if it.State == StatePublished {
		return ErrPublished
	}
	it.State = StateDenied
	return nil
}

// Publish marks an Approved item Published.
func (it *Item) Publish() error {
	switch it.State {
	case StateApproved:
		it.State = StatePublished
		return nil
	case StatePublished:
		return ErrPublished
	default:
		return ErrNotApproved
	}
}

// Deletable reports whether the item may still be removed.
func (it *Item) Deletable() error {
	if it.State == StatePublished {
		return ErrPublished
	}
	return nil
}
