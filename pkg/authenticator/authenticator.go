package authenticator

import (
	"context"
	"errors"
	"net"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

var (
	// ErrMissingCredentials is returned when no credentials were presented.
	ErrMissingCredentials = errors.New("authorization missing")

	// ErrInvalidCredentials is returned when credentials fail verification.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authenticator verifies presented credentials and yields the caller.
type Authenticator interface {
	// Name returns the authenticator name (e.g., "authn-jwt")
	Name() string

	// Authenticate validates credentials and returns the verified identity
	Authenticate(ctx context.Context, input AuthenticatorInput) (*identity.Identity, error)
}

// AuthenticatorInput contains the input for authentication
type AuthenticatorInput struct {
	Credentials string
	ClientIP    net.IP
}
