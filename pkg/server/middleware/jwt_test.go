package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator/authn_jwt"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Log(event audit.Event) {
	m.Called(event)
}

func newTestMiddleware(t *testing.T) (*JWTAuthenticator, *authn_jwt.Authenticator, *mockSink) {
	t.Helper()
	a, err := authn_jwt.New(authn_jwt.Config{
		Key:    []byte(strings.Repeat("k", 32)),
		Issuer: "newsdesk",
		TTL:    time.Hour,
	})
	require.NoError(t, err)
	sink := &mockSink{}
	sink.On("Log", mock.Anything).Return()
	return NewJWTAuthenticator(a, sink), a, sink
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "authentication", body.Error.Kind)
	return body.Error.Message
}

func TestMiddleware_MissingAuthorization(t *testing.T) {
	auth, _, sink := newTestMiddleware(t)

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authorization missing", errorMessage(t, rec))
	sink.AssertNotCalled(t, "Log", mock.Anything)
}

func TestMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	auth, _, _ := newTestMiddleware(t)

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"random string", "something random"},
		{"empty bearer", "Bearer "},
		{"token scheme", `Token token="abc"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Malformed authorization header", errorMessage(t, rec))
		})
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	auth, _, sink := newTestMiddleware(t)

	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.0.2.10:4242"
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", errorMessage(t, rec))
	sink.AssertCalled(t, "Log", mock.MatchedBy(func(ev audit.AuthenticateEvent) bool {
		return !ev.Success && ev.ClientIP == "192.0.2.10" && ev.ErrorMessage != ""
	}))
}

func TestMiddleware_ValidToken(t *testing.T) {
	auth, issuer, sink := newTestMiddleware(t)
	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	var got *identity.Identity
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = identity.Get(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.0.2.10:4242"
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, identity.Principal("alice"), got.Principal)
	assert.Equal(t, "192.0.2.10", got.ClientIP())
	sink.AssertCalled(t, "Log", audit.AuthenticateEvent{
		Principal: "alice",
		ClientIP:  "192.0.2.10",
		Issuer:    "newsdesk",
		Success:   true,
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "[2001:db8::1]:80"
	assert.Equal(t, "2001:db8::1", ClientIP(req).String())

	req.RemoteAddr = "garbage"
	assert.Nil(t, ClientIP(req))
}
