package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dysh/internal/buildinfo"
	"github.com/dmitrijs2005/dysh/internal/client/cli"
	"github.com/dmitrijs2005/dysh/internal/client/client"
	"github.com/dmitrijs2005/dysh/internal/client/config"
	"github.com/dmitrijs2005/dysh/internal/client/securestore"
	"github.com/dmitrijs2005/dysh/internal/client/services"
	"github.com/dmitrijs2005/dysh/internal/client/session"
	"github.com/dmitrijs2005/dysh/internal/filex"
	"github.com/dmitrijs2005/dysh/internal/logging"
	"github.com/dmitrijs2005/dysh/internal/netx"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code.
func run() int {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogBackend, os.Stderr)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	app, closeFn, err := build(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		return 1
	}
	defer closeFn()

	app.Run(ctx)
	return 0
}

func build(ctx context.Context, cfg *config.Config, logger logging.Logger) (*cli.App, func(), error) {
	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, nil, err
	}
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = db.Close() }

	key, err := sealingKey(ctx, cfg, db)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	store, err := securestore.New(db, key)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	httpClient := netx.NewHTTPClient(cfg.RequestTimeout, logger.With("component", "http"))

	reg := prometheus.NewRegistry()
	recorder, err := session.NewPrometheusRecorder(reg)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	sess := session.New(
		store,
		session.NewHTTPAuthenticator(cfg.APIBaseURL, httpClient),
		httpClient,
		session.WithLogger(logger.With("component", "session")),
		session.WithRecorder(recorder),
		session.WithRefreshTimeout(cfg.RefreshTimeout),
	)

	api := client.NewHTTPClient(cfg.APIBaseURL, sess, httpClient, logger.With("component", "api"))

	app := cli.NewApp(
		services.NewAuthService(sess, api, store, logger),
		services.NewRecipeService(api),
		services.NewProfileService(api),
		reg,
		logger,
	)
	return app, closeFn, nil
}

func sealingKey(ctx context.Context, cfg *config.Config, db *sql.DB) ([]byte, error) {
	if !cfg.UsePassphrase {
		return securestore.LoadOrCreateKey(cfg.KeyFile)
	}
	pass, err := cli.GetSecret(os.Stderr, "Passphrase")
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return securestore.KeyFromPassphrase(ctx, db, string(pass))
}
