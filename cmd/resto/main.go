package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"resto/internal/auth"
	"resto/internal/backend"
	"resto/internal/catalog"
	"resto/internal/cli"
	apphttp "resto/internal/http"
	"resto/internal/ledger"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg.DataBackend, cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Storage cleanup error", "error", err)
			}
		}
	}()

	lg, err := ledger.New(ctx, result.Store)
	if err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}
	vendors, err := catalog.NewVendors(ctx, result.Store)
	if err != nil {
		logger.Error("Failed to load vendor catalog", "error", err)
		os.Exit(1)
	}
	products, err := catalog.NewProducts(ctx, result.Store)
	if err != nil {
		logger.Error("Failed to load product catalog", "error", err)
		os.Exit(1)
	}

	var identity auth.Identity
	if cfg.AuthURL != "" {
		identity = auth.NewClient(cfg.AuthURL, cfg.AuthAPIKey)
		logger.Info("Login gate enabled", "auth_url", cfg.AuthURL)
	} else {
		logger.Warn("No auth URL configured, login gate disabled")
	}

	srv := apphttp.NewServer(":"+cfg.Port, lg, vendors, products, identity)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting resto server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
