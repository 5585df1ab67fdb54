package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

// loadRegistry reads the owner's registry; it fails with store.ErrNotFound
// until CreateRegistry has run.
func (e *Engine) loadRegistry(tx store.Tx) (*registry.Registry, error) {
	entries, err := tx.Registry(e.owner)
	if err != nil {
		return nil, err
	}
	return registry.FromEntries(e.capacity, entries)
}

// gateRegistry is loadRegistry for role checks: a missing registry grants
// no roles.
func (e *Engine) gateRegistry(tx store.Tx) (*registry.Registry, error) {
	reg, err := e.loadRegistry(tx)
	if errors.Is(err, store.ErrNotFound) {
		return registry.New(e.capacity), nil
	}
	return reg, err
}

func (e *Engine) auditRegistry(ctx context.Context, caller identity.Principal, op string, subject identity.Principal, role registry.Role, err error) {
	ev := audit.RegistryEvent{
		Actor:        caller.String(),
		ClientIP:     clientIP(ctx),
		Operation:    op,
		Subject:      subject.String(),
		Success:      err == nil,
		ErrorMessage: errMessage(err),
	}
	if role.IsARole() {
		ev.Role = role.String()
	}
	e.audit.Log(ev)
}

// CreateRegistry initializes the empty reporter registry. Any caller may do
// this once.
func (e *Engine) CreateRegistry(ctx context.Context, caller identity.Principal) error {
	const op = "create_user"
	err := e.run(ctx, op, caller, []grant{write(classRegistry)}, func(tx store.Tx, _ time.Time) error {
		return tx.CreateRegistry(e.owner)
	})
	e.auditRegistry(ctx, caller, op, "", 0, err)
	return err
}

// mutateRegistry authorizes the caller, applies fn to the registry and
// writes the result back. Authorization runs first, against an empty
// registry if none has been created yet.
func (e *Engine) mutateRegistry(ctx context.Context, op string, caller identity.Principal, authorize func(reg *registry.Registry) error, fn func(reg *registry.Registry) (int, error)) (int, error) {
	var count int
	err := e.run(ctx, op, caller, []grant{write(classRegistry)}, func(tx store.Tx, _ time.Time) error {
		reg, err := e.loadRegistry(tx)
		missing := errors.Is(err, store.ErrNotFound)
		if err != nil && !missing {
			return err
		}
		if missing {
			reg = registry.New(e.capacity)
		}
		if err := authorize(reg); err != nil {
			return err
		}
		if missing {
			return fmt.Errorf("registry of %q: %w", e.owner, store.ErrNotFound)
		}
		n, err := fn(reg)
		if err != nil {
			return err
		}
		count = n
		return tx.PutRegistry(e.owner, reg.Entries())
	})
	return count, err
}

// CreateAdmin registers admin with the admin role and returns the new count.
func (e *Engine) CreateAdmin(ctx context.Context, caller, admin identity.Principal) (int, error) {
	const op = "create_admin"
	count, err := e.mutateRegistry(ctx, op, caller,
		func(*registry.Registry) error { return e.gate.RequireOwner(caller) },
		func(reg *registry.Registry) (int, error) { return reg.Add(admin, registry.RoleAdmin) },
	)
	e.auditRegistry(ctx, caller, op, admin, registry.RoleAdmin, err)
	return count, err
}

// CreateSenior registers senior with the senior role and returns the new
// count. The caller must be an admin.
func (e *Engine) CreateSenior(ctx context.Context, caller, senior identity.Principal) (int, error) {
	const op = "create_senior"
	count, err := e.mutateRegistry(ctx, op, caller,
		func(reg *registry.Registry) error { return e.gate.RequireRole(reg, caller, registry.RoleAdmin) },
		func(reg *registry.Registry) (int, error) { return reg.Add(senior, registry.RoleSenior) },
	)
	e.auditRegistry(ctx, caller, op, senior, registry.RoleSenior, err)
	return count, err
}

// EditReporter overwrites the entry of old with (updated, role), or adds it
// when old is not registered. The caller must be the owner or an admin.
func (e *Engine) EditReporter(ctx context.Context, caller, old, updated identity.Principal, role registry.Role) (int, error) {
	const op = "edit_reporter"
	count, err := e.mutateRegistry(ctx, op, caller,
		func(reg *registry.Registry) error { return e.gate.RequireAdminOrOwner(reg, caller) },
		func(reg *registry.Registry) (int, error) { return reg.Edit(old, updated, role) },
	)
	e.auditRegistry(ctx, caller, op, updated, role, err)
	return count, err
}

// DeleteReporter removes p from the registry. The caller must be the owner
// or an admin.
func (e *Engine) DeleteReporter(ctx context.Context, caller, p identity.Principal) (int, error) {
	const op = "delete_reporter"
	count, err := e.mutateRegistry(ctx, op, caller,
		func(reg *registry.Registry) error { return e.gate.RequireAdminOrOwner(reg, caller) },
		func(reg *registry.Registry) (int, error) { return reg.Delete(p) },
	)
	e.auditRegistry(ctx, caller, op, p, 0, err)
	return count, err
}
