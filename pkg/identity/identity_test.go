package identity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_WithMethods(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	expires := issued.Add(8 * time.Minute)
	ip := net.ParseIP("192.168.1.100")

	id := New("alice").
		WithIssuer("newsdesk").
		WithLifetime(issued, expires).
		WithRemoteIP(ip)

	assert.Equal(t, Principal("alice"), id.Principal)
	assert.Equal(t, "newsdesk", id.Issuer)
	assert.Equal(t, issued, id.IssuedAt)
	assert.Equal(t, expires, id.ExpiresAt)
	assert.Equal(t, "192.168.1.100", id.ClientIP())
}

func TestIdentity_ClientIPUnknown(t *testing.T) {
	var nilID *Identity
	assert.Equal(t, "-", nilID.ClientIP())
	assert.Equal(t, "-", New("bob").ClientIP())
}

func TestPrincipal(t *testing.T) {
	assert.True(t, Principal("").IsZero())
	assert.False(t, Principal("carol").IsZero())
	assert.Equal(t, "carol", Principal("carol").String())
}

func TestContext(t *testing.T) {
	ctx := context.Background()

	_, ok := Get(ctx)
	assert.False(t, ok, "empty context should not carry an identity")

	ctx = Set(ctx, New("dave"))
	got, ok := Get(ctx)
	require.True(t, ok)
	assert.Equal(t, Principal("dave"), got.Principal)
}
