package authn_jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// Name is the authenticator name.
const Name = "authn-jwt"

// minKeyLength is the shortest accepted HMAC key, in bytes.
const minKeyLength = 32

// Config holds the token settings.
type Config struct {
	// Key is the HMAC-SHA256 signing key
	Key []byte
	// Issuer is written to and required in the iss claim
	Issuer string
	// TTL is the lifetime of issued tokens
	TTL time.Duration
	// Now overrides the clock, for tests
	Now func() time.Time
}

// Authenticator issues and verifies HS256 bearer tokens.
type Authenticator struct {
	config Config
}

var _ authenticator.Authenticator = (*Authenticator)(nil)

// New returns an Authenticator for cfg.
func New(cfg Config) (*Authenticator, error) {
	if len(cfg.Key) < minKeyLength {
		return nil, fmt.Errorf("token key must be at least %d bytes, got %d", minKeyLength, len(cfg.Key))
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Authenticator{config: cfg}, nil
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return Name
}

// Issue signs a token for p.
func (a *Authenticator) Issue(p identity.Principal) (string, error) {
	if p.IsZero() {
		return "", errors.New("principal is required")
	}
	now := a.config.Now()
	claims := jwt.RegisteredClaims{
		Subject:   p.String(),
		Issuer:    a.config.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.config.TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.config.Key)
}

// Authenticate verifies the token in input.Credentials.
func (a *Authenticator) Authenticate(_ context.Context, input authenticator.AuthenticatorInput) (*identity.Identity, error) {
	if input.Credentials == "" {
		return nil, authenticator.ErrMissingCredentials
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.config.Now),
	}
	if a.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.config.Issuer))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(input.Credentials, &claims, func(*jwt.Token) (interface{}, error) {
		return a.config.Key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authenticator.ErrInvalidCredentials, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", authenticator.ErrInvalidCredentials)
	}

	id := identity.New(identity.Principal(claims.Subject)).
		WithIssuer(claims.Issuer).
		WithRemoteIP(input.ClientIP)
	if claims.IssuedAt != nil && claims.ExpiresAt != nil {
		id.WithLifetime(claims.IssuedAt.Time, claims.ExpiresAt.Time)
	}
	return id, nil
}
