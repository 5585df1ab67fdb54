package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator"
	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator/authn_jwt"
)

func TestWaitForServer(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	require.NoError(t, waitForServer(ts.URL, 5, time.Millisecond))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	err := waitForServer("http://127.0.0.1:1/", 2, time.Millisecond)
	assert.ErrorContains(t, err, "not ready after 2 attempts")
}

func TestIssueToken(t *testing.T) {
	t.Setenv("NEWSDESK_CONFIG_PATH", t.TempDir())
	t.Setenv("NEWSDESK_TOKEN_ISSUER", "cli-test")
	key := bytes.Repeat([]byte{7}, 32)
	t.Setenv("NEWSDESK_TOKEN_KEY", base64.StdEncoding.EncodeToString(key))

	token, err := issueToken("junior")
	require.NoError(t, err)

	authn, err := authn_jwt.New(authn_jwt.Config{Key: key, Issuer: "cli-test", TTL: time.Minute})
	require.NoError(t, err)
	id, err := authn.Authenticate(t.Context(), authenticator.AuthenticatorInput{Credentials: token})
	require.NoError(t, err)
	assert.Equal(t, "junior", id.Principal.String())
}

func TestTokenKeyErrors(t *testing.T) {
	t.Setenv("NEWSDESK_TOKEN_KEY", "")
	_, err := tokenKey()
	assert.ErrorContains(t, err, "NEWSDESK_TOKEN_KEY")

	t.Setenv("NEWSDESK_TOKEN_KEY", "not base64!")
	_, err = tokenKey()
	assert.ErrorContains(t, err, "bad NEWSDESK_TOKEN_KEY")
}

func TestShowConfiguration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "newsdesk.yml"), []byte("owner: alice\nstore: memory\n"), 0o600))
	t.Setenv("NEWSDESK_CONFIG_PATH", dir)

	var out bytes.Buffer
	require.NoError(t, showConfiguration(&out, "json"))

	var parsed struct {
		Attributes []struct {
			Name   string `json:"name"`
			Value  string `json:"value"`
			Source string `json:"source"`
		} `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	require.NotEmpty(t, parsed.Attributes)
	assert.Equal(t, "owner", parsed.Attributes[0].Name)
	assert.Equal(t, "alice", parsed.Attributes[0].Value)

	out.Reset()
	require.NoError(t, showConfiguration(&out, "text"))
	assert.Contains(t, out.String(), "alice")

	assert.Error(t, showConfiguration(&out, "yaml"))
}

func TestMigrationsURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/newsdesk?sslmode=disable")
	u, err := migrationsURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/newsdesk?sslmode=disable&x-migrations-table="+migrationsTable, u)

	t.Setenv("DATABASE_URL", "")
	_, err = migrationsURL()
	assert.Error(t, err)
}
