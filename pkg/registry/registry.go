package registry

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform lower -output role_enumer.go

import (
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// MaxReporterCount is the default and largest registry capacity. The
// reporters table checks positions against it.
const MaxReporterCount = 100

// Role is the tier a principal holds in the registry. The numeric values are
// part of the stored and wire format and must not change.
type Role int

const (
	// RoleSenior (1) may approve or deny news.
	RoleSenior Role = 1
	// RoleAdmin (2) may publish news, pay out juniors, settle campaigns and
	// manage the registry.
	RoleAdmin Role = 2
)

var (
	// ErrNotFound is returned when a principal is not registered.
	ErrNotFound = errors.New("reporter not found")

	// ErrAlreadyExists is returned when a principal is already registered.
	ErrAlreadyExists = errors.New("reporter already exists")

	// ErrCapacityExceeded is returned when the registry is full.
	ErrCapacityExceeded = errors.New("reporter registry is full")

	// ErrInvalidRole is returned for a role outside the known tiers.
	ErrInvalidRole = errors.New("invalid reporter role")
)

// Entry is a (principal, role) pair.
type Entry struct {
	Principal identity.Principal
	Role      Role
}

// Registry is an ordered, bounded list of role entries. Entries occupy
// positions [0, Count()) and a principal appears at most once.
//
// A Registry is not safe for concurrent use; callers serialize access.
type Registry struct {
	entries  []Entry
	index    map[identity.Principal]int
	capacity int
}

// New returns an empty registry. A non-positive capacity selects
// MaxReporterCount.
func New(capacity int) *Registry {
	if capacity <= 0 {
		capacity = MaxReporterCount
	}
	return &Registry{
		entries:  make([]Entry, 0, capacity),
		index:    make(map[identity.Principal]int, capacity),
		capacity: capacity,
	}
}

// FromEntries rebuilds a registry from stored entries, in order.
func FromEntries(capacity int, entries []Entry) (*Registry, error) {
	r := New(capacity)
	for _, e := range entries {
		if _, err := r.Add(e.Principal, e.Role); err != nil {
			return nil, fmt.Errorf("load entry %q: %w", e.Principal, err)
		}
	}
	return r, nil
}

// Capacity returns the maximum number of entries.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Count returns the number of occupied entries.
func (r *Registry) Count() int {
	return len(r.entries)
}

// Entries returns a copy of the occupied entries in order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Find returns the position of p.
func (r *Registry) Find(p identity.Principal) (int, error) {
	i, ok := r.index[p]
	if !ok {
		return -1, ErrNotFound
	}
	return i, nil
}

// Add appends (p, role) and returns the new count.
func (r *Registry) Add(p identity.Principal, role Role) (int, error) {
	if !role.IsARole() {
		return len(r.entries), ErrInvalidRole
	}
	if _, ok := r.index[p]; ok {
		return len(r.entries), ErrAlreadyExists
	}
	if len(r.entries) >= r.capacity {
		return len(r.entries), ErrCapacityExceeded
	}
	r.index[p] = len(r.entries)
	r.entries = append(r.entries, Entry{Principal: p, Role: role})
	return len(r.entries), nil
}

// Edit overwrites the entry of oldP with (newP, role) in place. When oldP is
// not registered it behaves as Add(newP, role).
func (r *Registry) Edit(oldP, newP identity.Principal, role Role) (int, error) {
	if !role.IsARole() {
		return len(r.entries), ErrInvalidRole
	}
	i, ok := r.index[oldP]
	if !ok {
		return r.Add(newP, role)
	}
	if j, taken := r.index[newP]; taken && j != i {
		return len(r.entries), ErrAlreadyExists
	}
	delete(r.index, oldP)
	r.entries[i] = Entry{Principal: newP, Role: role}
	r.index[newP] = i
	return len(r.entries), nil
}

// Delete removes p, shifting later entries left by one, and returns the new
// count.
func (r *Registry) Delete(p identity.Principal) (int, error) {
	i, ok := r.index[p]
	if !ok {
		return len(r.entries), ErrNotFound
	}
	copy(r.entries[i:], r.entries[i+1:])
	r.entries = r.entries[:len(r.entries)-1]
	delete(r.index, p)
	for j := i; j < len(r.entries); j++ {
		r.index[r.entries[j].Principal] = j
	}
	return len(r.entries), nil
}

// Validate reports whether p is registered with exactly role.
func (r *Registry) Validate(p identity.Principal, role Role) bool {
	i, ok := r.index[p]
	if !ok {
		return false
	}
	return r.entries[i].Role == role
}
