package integration

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator/authn_jwt"
	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/server"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/endpoints"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/middleware"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/newsdesk/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store/memory"
)

// Owner is the platform owner every scenario runs under.
const Owner identity.Principal = "owner"

const tokenIssuer = "newsdesk"

// portCounter is used to allocate unique ports for binary mode servers
var portCounter int32 = 19000

// ServerInstance represents a running newsdesk server for a single scenario
type ServerInstance struct {
	ServerURL string
	Authn     *authn_jwt.Authenticator
	fund      func(ctx context.Context, p identity.Principal, amount uint64) error

	httpServer    *httptest.Server
	serverProcess *exec.Cmd
	cancel        context.CancelFunc
	configDir     string
}

// StartServer starts a server for one scenario on the backend of tc.
func StartServer(tc *TestContext) (*ServerInstance, error) {
	authn, err := authn_jwt.New(authn_jwt.Config{
		Key:    tc.TokenKey,
		Issuer: tokenIssuer,
		TTL:    time.Hour,
	})
	if err != nil {
		return nil, err
	}
	if tc.BinaryPath != "" {
		return startBinaryServerInstance(tc, authn)
	}
	return startInlineServerInstance(tc, authn)
}

// startInlineServerInstance starts an in-process server
func startInlineServerInstance(tc *TestContext, authn *authn_jwt.Authenticator) (*ServerInstance, error) {
	var st store.Store
	var health store.HealthStore
	switch tc.Backend {
	case BackendPostgres:
		s := gormstore.NewStore(tc.DB)
		st, health = s, s
	default:
		s := memory.New()
		st, health = s, s
	}

	e := engine.New(st, Owner, engine.WithAudit(audit.Discard))
	s := server.NewServer(e, health, middleware.NewJWTAuthenticator(authn, audit.Discard), server.Options{
		Log: zerolog.Nop(),
	})
	endpoints.RegisterAll(s)

	ts := httptest.NewServer(s.Handler())
	return &ServerInstance{
		ServerURL:  ts.URL,
		Authn:      authn,
		fund:       e.Fund,
		httpServer: ts,
	}, nil
}

// startBinaryServerInstance starts a server using the newsdeskctl binary
func startBinaryServerInstance(tc *TestContext, authn *authn_jwt.Authenticator) (*ServerInstance, error) {
	port := int(atomic.AddInt32(&portCounter, 1))
	portStr := fmt.Sprintf("%d", port)

	configDir, err := os.MkdirTemp("", "newsdesk-config-")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since the test context already migrated the database
	cmd := exec.CommandContext(ctx, tc.BinaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", portStr)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+tc.DatabaseURL,
		"NEWSDESK_TOKEN_KEY="+base64.StdEncoding.EncodeToString(tc.TokenKey),
		"NEWSDESK_TOKEN_ISSUER="+tokenIssuer,
		"NEWSDESK_OWNER="+Owner.String(),
		"NEWSDESK_STORE=postgres",
		"NEWSDESK_CONFIG_PATH="+configDir,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		_ = os.RemoveAll(configDir)
		return nil, fmt.Errorf("failed to start binary: %w", err)
	}

	gs := gormstore.NewStore(tc.DB)
	instance := &ServerInstance{
		ServerURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		Authn:     authn,
		fund: func(ctx context.Context, p identity.Principal, amount uint64) error {
			return gs.Fund(ctx, ledger.ExternalAccount(p), amount)
		},
		serverProcess: cmd,
		cancel:        cancel,
		configDir:     configDir,
	}

	if err := waitForServer(instance.ServerURL, 30*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return instance, nil
}

// Fund credits the external account of p from outside the system.
func (si *ServerInstance) Fund(ctx context.Context, p identity.Principal, amount uint64) error {
	return si.fund(ctx, p, amount)
}

// Stop shuts down the server instance
func (si *ServerInstance) Stop() {
	if si.httpServer != nil {
		si.httpServer.Close()
	}
	if si.cancel != nil {
		si.cancel()
	}
	if si.serverProcess != nil && si.serverProcess.Process != nil {
		_ = si.serverProcess.Process.Kill()
		_ = si.serverProcess.Wait()
	}
	if si.configDir != "" {
		_ = os.RemoveAll(si.configDir)
	}
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}
