package authn_jwt

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

var testKey = []byte(strings.Repeat("k", 32))

func newTestAuthenticator(t *testing.T, now time.Time) *Authenticator {
	t.Helper()
	a, err := New(Config{
		Key:    testKey,
		Issuer: "newsdesk",
		TTL:    time.Hour,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)
	return a
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{Key: []byte("short"), TTL: time.Hour})
	assert.ErrorContains(t, err, "at least 32 bytes")

	_, err = New(Config{Key: testKey})
	assert.ErrorContains(t, err, "ttl")

	a, err := New(Config{Key: testKey, TTL: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, "authn-jwt", a.Name())
}

func TestIssueAndAuthenticate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(t, now)

	token, err := a.Issue("alice")
	require.NoError(t, err)

	id, err := a.Authenticate(context.Background(), authenticator.AuthenticatorInput{
		Credentials: token,
		ClientIP:    net.ParseIP("10.0.0.1"),
	})
	require.NoError(t, err)
	assert.Equal(t, identity.Principal("alice"), id.Principal)
	assert.Equal(t, "newsdesk", id.Issuer)
	assert.Equal(t, "10.0.0.1", id.ClientIP())
	assert.Equal(t, now, id.IssuedAt.UTC())
	assert.Equal(t, now.Add(time.Hour), id.ExpiresAt.UTC())

	_, err = a.Issue("")
	assert.Error(t, err)
}

func TestAuthenticateRejects(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(t, now)

	expired, err := newTestAuthenticator(t, now.Add(-2*time.Hour)).Issue("alice")
	require.NoError(t, err)

	otherIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(testKey)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
		Issuer:  "newsdesk",
	}).SignedString(testKey)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "newsdesk",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(testKey)
	require.NoError(t, err)

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "newsdesk",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(strings.Repeat("x", 32)))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "newsdesk",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: authenticator.ErrMissingCredentials},
		{name: "garbage", token: "not-a-jwt", want: authenticator.ErrInvalidCredentials},
		{name: "expired", token: expired, want: authenticator.ErrInvalidCredentials},
		{name: "other issuer", token: otherIssuer, want: authenticator.ErrInvalidCredentials},
		{name: "no expiry", token: noExpiry, want: authenticator.ErrInvalidCredentials},
		{name: "no subject", token: noSubject, want: authenticator.ErrInvalidCredentials},
		{name: "wrong key", token: wrongKey, want: authenticator.ErrInvalidCredentials},
		{name: "alg none", token: unsigned, want: authenticator.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), authenticator.AuthenticatorInput{Credentials: tt.token})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
