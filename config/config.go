package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Supported price sources (PRICES_SOURCE).
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceHTTP     = "http"
	SourceRedis    = "redis"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, where prices are read from and database connection details.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	PRICES_SOURCE=csv
//	PRICES_DIR=./prices
//	PRICES_SYMBOLS=BTC,ETH,LTC,DOGE,XRP
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=cryptopulse
//	REDIS_ADDR=localhost:6379
//	RATE_LIMIT_RPS=1
//	AUTH_REQUIRED=true
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Prices    PricesConfig    // Price source selection and loading
	Postgres  PostgresConfig  // PostgreSQL connection settings
	Redis     RedisConfig     // Redis connection settings
	RateLimit RateLimitConfig // Per-IP request limits
	Auth      AuthConfig      // Authorization header check
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PricesConfig selects the backend the price cache loads from.
//
// Fields:
//   - Source: one of csv, postgres, http, redis.
//   - Dir: directory with <SYMBOL>_values.csv files (csv source, ingest mode).
//   - Symbols: symbols to load; empty means every symbol the source lists.
//   - LoadParallel: max concurrent symbol reads during the startup load.
//   - APIURL: base URL of the remote price API (http source).
//   - APIRate: requests per second sent to the remote API.
type PricesConfig struct {
	Source       string
	Dir          string
	Symbols      []string
	LoadParallel int
	APIURL       string
	APIRate      int
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// RedisConfig defines connection details for Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig configures the per-IP token bucket.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// AuthConfig toggles the Authorization header requirement.
type AuthConfig struct {
	Required bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure the selected source has what it needs.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("PRICES_SOURCE", SourceCSV)
	viper.SetDefault("PRICES_DIR", "./prices")
	viper.SetDefault("PRICES_SYMBOLS", "BTC,ETH,LTC,DOGE,XRP")
	viper.SetDefault("LOAD_PARALLEL", 4)
	viper.SetDefault("PRICES_API_URL", "")
	viper.SetDefault("PRICES_API_RATE", 5)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "cryptopulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 60)
	viper.SetDefault("AUTH_REQUIRED", true)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Prices: PricesConfig{
			Source:       strings.ToLower(strings.TrimSpace(viper.GetString("PRICES_SOURCE"))),
			Dir:          viper.GetString("PRICES_DIR"),
			Symbols:      ParseSymbols(viper.GetString("PRICES_SYMBOLS")),
			LoadParallel: viper.GetInt("LOAD_PARALLEL"),
			APIURL:       viper.GetString("PRICES_API_URL"),
			APIRate:      viper.GetInt("PRICES_API_RATE"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		Auth: AuthConfig{
			Required: viper.GetBool("AUTH_REQUIRED"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// ParseSymbols splits a comma separated list, trimming and upper-casing
// entries and dropping blanks.
func ParseSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// missingFields lists the variables the configuration still needs.
// Postgres settings are only required by the postgres source.
func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Prices.LoadParallel <= 0 {
		missing = append(missing, "LOAD_PARALLEL")
	}
	if cfg.RateLimit.RPS <= 0 {
		missing = append(missing, "RATE_LIMIT_RPS")
	}
	if cfg.RateLimit.Burst <= 0 {
		missing = append(missing, "RATE_LIMIT_BURST")
	}

	switch cfg.Prices.Source {
	case SourceCSV:
		if cfg.Prices.Dir == "" {
			missing = append(missing, "PRICES_DIR")
		}
	case SourcePostgres:
		missing = append(missing, missingPostgres(cfg.Postgres)...)
	case SourceHTTP:
		if cfg.Prices.APIURL == "" {
			missing = append(missing, "PRICES_API_URL")
		}
	case SourceRedis:
		if cfg.Redis.Addr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	default:
		missing = append(missing, "PRICES_SOURCE (csv|postgres|http|redis)")
	}
	return missing
}

func missingPostgres(pg PostgresConfig) []string {
	var missing []string
	if pg.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if pg.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if pg.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if pg.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if pg.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	return missing
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Checks AppConfig with missingFields().
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
