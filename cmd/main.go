package main

//
//  @title           cryptopulse API
//  @version         1.0
//  @description     Crypto price statistics and volatility-ranked investment recommendations.
//  @termsOfService  https://github.com/guttosm/cryptopulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/cryptopulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /crypto/api/v1
//  @schemes         http
//
//  @securityDefinitions.apikey ApiKeyAuth
//  @in              header
//  @name            Authorization
//
//  @tag.name        recommendations
//  @tag.description Normalized-range statistics and rankings
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/cryptopulse/config"
	_ "github.com/guttosm/cryptopulse/docs" // swagger docs
	"github.com/guttosm/cryptopulse/internal/app"
	"github.com/guttosm/cryptopulse/internal/ingestion"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/source"
)

// loadTimeout bounds the initial price load in API mode.
const loadTimeout = 2 * time.Minute

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB or Redis connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// splitSymbols parses the --symbols flag.
func splitSymbols(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return config.ParseSymbols(s)
}

// main is the entry point of the cryptopulse application.
//
// Modes (selected via --mode flag):
//   - api:        Loads prices from PRICES_SOURCE and starts the REST API.
//   - ingest:     Imports <SYMBOL>_values.csv files from --dir into PostgreSQL.
//   - seed-redis: Copies <SYMBOL>_values.csv files from --dir into Redis sorted sets.
//
// Flags:
//   - --mode:     Execution mode. Default: "api".
//   - --dir:      Directory containing price CSV files. Default: PRICES_DIR.
//   - --symbols:  Comma separated symbols to import. Default: every file in --dir.
//   - --parallel: Files processed concurrently (0=auto up to CPU, max 8).
//   - --force:    Re-import symbols already recorded in ingestion_log.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api, ingest or seed-redis")
	dir := flag.String("dir", config.AppConfig.Prices.Dir, "Directory with <SYMBOL>_values.csv files")
	symbols := flag.String("symbols", "", "Comma separated symbols to import (empty = all files in --dir)")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Re-import symbols even if already ingested (deletes existing prices for that symbol)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		// Ingestion mode: import CSV files and persist prices
		logger.L().Info().Str("dir", *dir).Msg("running ingestion")

		// Direct DB connection for ingestion
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.ProcessDirectory(ctx, *dir, db, splitSymbols(*symbols), *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "seed-redis":
		logger.L().Info().Str("dir", *dir).Str("redis", config.AppConfig.Redis.Addr).Msg("seeding redis")

		rdb, err := app.InitRedis(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("redis connect error")
		}
		defer func() { _ = rdb.Close() }()

		n, err := ingestion.CopyPrices(ctx, source.NewCSV(*dir), source.NewRedis(rdb), splitSymbols(*symbols), max(*parallel, 1))
		if err != nil {
			logger.L().Fatal().Err(err).Msg("redis seed failed")
		}
		logger.L().Info().Int("rows", n).Msg("redis seed completed successfully")

	case "api":
		// API mode: load prices and start the HTTP server
		logger.L().Info().Str("source", config.AppConfig.Prices.Source).Msg("starting API server")

		loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
		router, cleanup, err := app.InitializeApp(loadCtx)
		cancel()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
