package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/config"
	"github.com/nikolayk812/shopcore/internal/httpapi"
	"github.com/nikolayk812/shopcore/internal/memstore"
	"github.com/nikolayk812/shopcore/internal/order"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/nikolayk812/shopcore/internal/repository"
	"github.com/nikolayk812/shopcore/internal/upstream"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatalf("config.Load: %v", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("cfg.Logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("shopd stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	seed, err := loadSeed(ctx, cfg, logger)
	if err != nil {
		return err
	}

	deps, purchases, closeStore, err := openStore(ctx, cfg, seed)
	if err != nil {
		return err
	}
	defer closeStore()

	deps.Purchaser = order.NewService(purchases, order.WithLogger(logger.Named("order")))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(deps, logger.Named("http")).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// loadSeed reads the reference data from the upstream service when one is
// configured and falls back to the built-in catalog otherwise.
func loadSeed(ctx context.Context, cfg config.Config, logger *zap.Logger) (port.Seed, error) {
	if cfg.UpstreamURL == "" {
		return memstore.DefaultSeed(), nil
	}

	client, err := upstream.New(cfg.UpstreamURL,
		upstream.WithRetries(cfg.UpstreamRetries),
		upstream.WithLogger(logger.Named("upstream")))
	if err != nil {
		return port.Seed{}, fmt.Errorf("upstream.New: %w", err)
	}

	seed, err := client.FetchSnapshot(ctx)
	if err != nil {
		return port.Seed{}, fmt.Errorf("client.FetchSnapshot: %w", err)
	}

	logger.Info("seed fetched", zap.String("upstream", cfg.UpstreamURL), zap.Int("products", len(seed.Products)))
	return seed, nil
}

func openStore(ctx context.Context, cfg config.Config, seed port.Seed) (httpapi.Deps, port.PurchaseStore, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		poolConfig, err := cfg.PoolConfig()
		if err != nil {
			return httpapi.Deps{}, nil, nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return httpapi.Deps{}, nil, nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return httpapi.Deps{}, nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}

		catalog := repository.NewCatalog(pool)
		if err := catalog.Load(ctx, seed); err != nil {
			pool.Close()
			return httpapi.Deps{}, nil, nil, fmt.Errorf("catalog.Load: %w", err)
		}

		deps := httpapi.Deps{
			Catalog:   catalog,
			Reference: catalog,
			Accounts:  catalog,
			Carts:     repository.NewCart(pool),
		}
		return deps, repository.NewPurchaseStore(pool), pool.Close, nil

	default:
		store, err := memstore.New(seed)
		if err != nil {
			return httpapi.Deps{}, nil, nil, fmt.Errorf("memstore.New: %w", err)
		}

		deps := httpapi.Deps{
			Catalog:   store,
			Reference: store,
			Accounts:  store,
			Carts:     store,
		}
		return deps, store, func() {}, nil
	}
}
