package integration

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/newsdesk/db"
)

// Backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// TestContext holds the resources shared by every scenario of a run
type TestContext struct {
	Backend     string
	DB          *gorm.DB
	RawDB       *sql.DB
	Container   testcontainers.Container
	DatabaseURL string
	// BinaryPath, when set, runs each scenario against a newsdeskctl process
	// instead of an in-process server. Postgres backend only.
	BinaryPath string
	TokenKey   []byte
	HTTPClient *http.Client
}

func newTokenKey() []byte {
	return bytes.Repeat([]byte("newsdesk-integration-key!"), 2)
}

// NewMemoryContext returns a context whose scenarios each get a fresh
// in-memory store.
func NewMemoryContext() *TestContext {
	return &TestContext{
		Backend:    BackendMemory,
		TokenKey:   newTokenKey(),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewPostgresContext starts a PostgreSQL testcontainer and migrates it.
//
// Set NEWSDESK_BINARY to the path of a newsdeskctl binary to exercise the
// real process; otherwise the server runs in-process.
func NewPostgresContext(ctx context.Context) (*TestContext, error) {
	binaryPath := os.Getenv("NEWSDESK_BINARY")
	if binaryPath != "" {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("NEWSDESK_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("newsdesk_test"),
		tcpostgres.WithUsername("newsdesk"),
		tcpostgres.WithPassword("newsdesk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := runMigrations(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rawDB, err := gdb.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	return &TestContext{
		Backend:     BackendPostgres,
		DB:          gdb,
		RawDB:       rawDB,
		Container:   pgContainer,
		DatabaseURL: connStr,
		BinaryPath:  binaryPath,
		TokenKey:    newTokenKey(),
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// runMigrations applies the embedded migrations.
func runMigrations(dbURL string) error {
	migrationsFS, err := fs.Sub(db.Migrations, "migrations")
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Reset empties every table so scenarios start from a blank state.
func (tc *TestContext) Reset() error {
	if tc.DB == nil {
		return nil
	}
	return tc.DB.Exec(`TRUNCATE reporters, registries, pools, vaults, accounts, news, campaigns, messages`).Error
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
