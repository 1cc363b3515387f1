package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptopulse/config"
	"github.com/guttosm/cryptopulse/internal/api"
	"github.com/guttosm/cryptopulse/internal/cache"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/service"
	"github.com/guttosm/cryptopulse/internal/source"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// pingTimeout bounds the dependency check behind /readyz.
const pingTimeout = 2 * time.Second

// priceBackend is a configured source plus its connectivity check and cleanup.
type priceBackend struct {
	src   source.Source
	ping  func(ctx context.Context) error
	close func()
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the price source selected by PRICES_SOURCE (csv, postgres, http, redis).
//   - Loads every configured symbol into the price cache before serving.
//   - Initializes the recommendation service and the HTTP handler layer.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (DB or Redis connection).
//
// Parameters:
//   - ctx (context.Context): bounds the initial price load.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	backend, err := newPriceBackend(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Load prices once; the cache is read-only afterwards
	prices := cache.NewPriceCache(backend.src, cfg.Prices.Symbols, cfg.Prices.LoadParallel)
	if err := prices.Load(ctx); err != nil {
		backend.close()
		return nil, nil, fmt.Errorf("failed to load prices from %s: %w", backend.src.Name(), err)
	}
	if err := prices.Ready(); err != nil {
		logger.L().Warn().Err(err).Str("source", backend.src.Name()).Msg("price cache is empty")
	}

	// Initialize service layer (business logic)
	svc := service.NewRecommendationService(prices)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		AuthRequired:   cfg.Auth.Required,
		RequestTimeout: 10 * time.Second,
	})

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(func() error {
		if err := prices.Ready(); err != nil {
			return err
		}
		if backend.ping == nil {
			return nil
		}
		pctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return backend.ping(pctx)
	})
	healthHandler.Register(router)

	return router, backend.close, nil
}

func newPriceBackend(cfg config.Config) (priceBackend, error) {
	switch cfg.Prices.Source {
	case config.SourceCSV, "":
		return priceBackend{src: source.NewCSV(cfg.Prices.Dir), close: func() {}}, nil

	case config.SourcePostgres:
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return priceBackend{}, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		return priceBackend{
			src:   source.NewPostgres(storage.NewPricesRepository(db)),
			ping:  db.PingContext,
			close: func() { _ = db.Close() },
		}, nil

	case config.SourceHTTP:
		return priceBackend{
			src:   source.NewHTTP(cfg.Prices.APIURL, source.WithRateLimit(cfg.Prices.APIRate)),
			close: func() {},
		}, nil

	case config.SourceRedis:
		rdb, err := redisOpener(cfg)
		if err != nil {
			return priceBackend{}, fmt.Errorf("failed to initialize redis: %w", err)
		}
		return priceBackend{
			src:   source.NewRedis(rdb),
			ping:  func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			close: func() { _ = rdb.Close() },
		}, nil
	}
	return priceBackend{}, errors.New("unknown price source " + cfg.Prices.Source)
}
