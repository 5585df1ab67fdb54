package authz

import (
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
)

// ErrForbidden is returned when the caller does not satisfy a requirement.
var ErrForbidden = errors.New("forbidden")

// Gate holds the platform owner and checks callers against it and a registry.
type Gate struct {
	owner identity.Principal
}

// NewGate returns a Gate for the given owner.
func NewGate(owner identity.Principal) Gate {
	return Gate{owner: owner}
}

// Owner returns the configured owner.
func (g Gate) Owner() identity.Principal {
	return g.owner
}

// IsOwner reports whether caller is the configured owner.
func (g Gate) IsOwner(caller identity.Principal) bool {
	return !g.owner.IsZero() && caller == g.owner
}

// RequireOwner fails unless caller is the owner.
func (g Gate) RequireOwner(caller identity.Principal) error {
	if g.IsOwner(caller) {
		return nil
	}
	return fmt.Errorf("%w: %q is not the owner", ErrForbidden, caller)
}

// RequireRole fails unless caller is registered in reg with exactly role.
// A nil registry grants nothing.
func (g Gate) RequireRole(reg *registry.Registry, caller identity.Principal, role registry.Role) error {
	if reg != nil && reg.Validate(caller, role) {
		return nil
	}
	return fmt.Errorf("%w: %q does not hold role %s", ErrForbidden, caller, role)
}

// RequireAdminOrOwner fails unless caller is the owner or a registered admin.
func (g Gate) RequireAdminOrOwner(reg *registry.Registry, caller identity.Principal) error {
	if g.IsOwner(caller) {
		return nil
	}
	if reg != nil && reg.Validate(caller, registry.RoleAdmin) {
		return nil
	}
	return fmt.Errorf("%w: %q is neither owner nor admin", ErrForbidden, caller)
}
