package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trovehq/trove/internal/account"
	"github.com/trovehq/trove/internal/catalog"
	"github.com/trovehq/trove/internal/collection"
	"github.com/trovehq/trove/internal/config"
	"github.com/trovehq/trove/internal/database"
	"github.com/trovehq/trove/internal/database/postgres"
	"github.com/trovehq/trove/internal/friends"
	"github.com/trovehq/trove/internal/handler"
	"github.com/trovehq/trove/internal/inventory"
	"github.com/trovehq/trove/internal/market"
	"github.com/trovehq/trove/internal/rarity"
	"github.com/trovehq/trove/internal/server"
	"github.com/trovehq/trove/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	handler.InitValidator()

	pool, err := database.NewPool(cfg.GetDBConnString(), database.PoolConfig{
		MaxConns:        cfg.DBPoolMaxConns,
		MinConns:        cfg.DBPoolMinConns,
		MaxConnIdleTime: cfg.DBPoolMaxIdleTime,
		MaxConnLifetime: cfg.DBPoolMaxConnLife,
	})
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Repositories
	accountRepo := postgres.NewAccountRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	marketRepo := postgres.NewMarketRepository(pool)
	friendshipRepo := postgres.NewFriendshipRepository(pool)

	// Services
	catalogSvc := catalog.NewService(catalogRepo, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	accountSvc := account.NewService(accountRepo)
	collectionSvc := collection.NewService(collectionRepo, catalogSvc, rarity.DefaultTable(), cfg.CollectCooldown)
	inventorySvc := inventory.NewService(inventoryRepo, accountRepo, catalogSvc)
	marketSvc := market.NewService(marketRepo, catalogSvc, market.Config{
		ListingTTL:     cfg.ListingTTL,
		UniqueListings: cfg.UniqueListings,
	})
	friendsSvc := friends.NewService(friendshipRepo, accountRepo)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, accountSvc, collectionSvc, inventorySvc, marketSvc, friendsSvc)

	// Listing expiry sweeps only matter when listings can expire
	var expiryWorker *worker.ExpiryWorker
	if cfg.ListingTTL > 0 {
		expiryWorker = worker.NewExpiryWorker(marketSvc, cfg.SweepInterval)
		expiryWorker.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if expiryWorker != nil {
			if err := expiryWorker.Shutdown(shutdownCtx); err != nil {
				slog.Warn("Expiry worker shutdown incomplete", "error", err)
			}
		}

		return srv.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
