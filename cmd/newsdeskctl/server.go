package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/config"
	"github.com/doodlesbykumbi/newsdesk/pkg/db"
	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/logging"
	"github.com/doodlesbykumbi/newsdesk/pkg/server"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/endpoints"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/middleware"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/newsdesk/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store/memory"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the newsdesk application server",
	Long: `Run the newsdesk application server

The server requires NEWSDESK_TOKEN_KEY and an owner (NEWSDESK_OWNER or the
owner attribute of newsdesk.yml). With the postgres store it also requires
DATABASE_URL.

By default, database migrations are run on startup when the postgres store is
selected. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		logging.ConfigureRuntime()
		log := logging.Component("server")

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")

		if err := runServer(log, host, port, noMigrate); err != nil {
			log.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

func runServer(log zerolog.Logger, host, port string, noMigrate bool) error {
	if err := config.Reload(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg := config.Get()

	authn, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, health, err := openStore(ctx, log, cfg, noMigrate)
	if err != nil {
		return err
	}

	audit.SetEnabled(cfg.AuditEnabled)
	e := engine.New(st, cfg.OwnerPrincipal(),
		engine.WithFixedFee(cfg.FixedFee),
		engine.WithCapacity(cfg.RegistryCapacity),
		engine.WithLogger(logging.Component("engine")),
		engine.WithAudit(audit.Default),
	)

	s := server.NewServer(e, health, middleware.NewJWTAuthenticator(authn, audit.Default), server.Options{
		Host:      host,
		Port:      port,
		AccessLog: os.Stdout,
		Log:       log,
	})
	endpoints.RegisterAll(s)

	// Only the audit switch is applied live; the other attributes need a
	// restart.
	if err := config.Watch(ctx, logging.Component("config"), func(c *config.NewsdeskConfig) {
		audit.SetEnabled(c.AuditEnabled)
	}); err != nil {
		log.Warn().Err(err).Msg("config hot reload disabled")
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.Start()
	}()
	log.Info().
		Str("addr", host+":"+port).
		Str("store", cfg.Store).
		Str("owner", cfg.Owner).
		Msg("running server")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// openStore returns the configured backend and its health check.
func openStore(ctx context.Context, log zerolog.Logger, cfg *config.NewsdeskConfig, noMigrate bool) (store.Store, store.HealthStore, error) {
	switch cfg.Store {
	case config.StorePostgres:
		if !noMigrate {
			log.Info().Msg("running database migrations")
			if err := runMigrations(); err != nil {
				return nil, nil, fmt.Errorf("migration failed: %w", err)
			}
		}
		database, err := db.Connect(db.Config{})
		if err != nil {
			return nil, nil, err
		}
		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := db.WaitReady(waitCtx, database, time.Second); err != nil {
			return nil, nil, fmt.Errorf("database not ready: %w", err)
		}
		s := gormstore.NewStore(database)
		return s, s, nil
	default:
		log.Warn().Msg("using the in-memory store; state is lost on exit")
		s := memory.New()
		return s, s, nil
	}
}
