package identity

import (
	"context"
	"net"
	"time"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Principal is the opaque identifier of an actor (owner, admin, reporter,
// advertiser). Two principals are the same actor iff they are equal.
type Principal string

// String returns the principal as a plain string.
func (p Principal) String() string {
	return string(p)
}

// IsZero reports whether p is the empty principal.
func (p Principal) IsZero() bool {
	return p == ""
}

// Identity represents the verified caller of a request.
// It combines token claims with request-specific context.
type Identity struct {
	// Token claims
	Principal Principal
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Request context
	RemoteIP net.IP
}

// New creates an Identity for a verified principal.
func New(p Principal) *Identity {
	return &Identity{Principal: p}
}

// WithIssuer sets the token issuer.
func (i *Identity) WithIssuer(issuer string) *Identity {
	i.Issuer = issuer
	return i
}

// WithLifetime sets the token issue and expiry times.
func (i *Identity) WithLifetime(issuedAt, expiresAt time.Time) *Identity {
	i.IssuedAt = issuedAt
	i.ExpiresAt = expiresAt
	return i
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// ClientIP returns the remote IP as a string, or "-" when unknown.
func (i *Identity) ClientIP() string {
	if i == nil || i.RemoteIP == nil {
		return "-"
	}
	return i.RemoteIP.String()
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
