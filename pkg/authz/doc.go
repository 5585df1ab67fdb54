// Package authz gates privileged operations on the caller's identity.
//
// Every check is a pure function of the verified caller principal, the
// configured owner and the current registry contents. A failed check returns
// ErrForbidden wrapped with the requirement that was not met.
package authz
