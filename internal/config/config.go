package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tasks_api/internal/logger"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNeo4j    = "neo4j"
)

type Config struct {
	AppPort    string
	AppVersion string

	StoreDriver   string
	DatabaseURL   string
	SQLitePath    string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Per-IP limit on /tasks
	APIRateLimit  int
	APIRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads .env (if present) and the process environment. Invalid settings are fatal.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse(os.Getenv)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// Parse builds a Config from getenv.
func Parse(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppPort:       withDefault(getenv("APP_PORT"), "8080"),
		AppVersion:    withDefault(getenv("APP_VERSION"), "dev"),
		StoreDriver:   strings.ToLower(withDefault(getenv("STORE_DRIVER"), DriverPostgres)),
		DatabaseURL:   getenv("DATABASE_URL"),
		SQLitePath:    withDefault(getenv("SQLITE_PATH"), "tasks.db"),
		Neo4jURI:      withDefault(getenv("NEO4J_URI"), "neo4j://localhost:7687"),
		Neo4jUser:     withDefault(getenv("NEO4J_USER"), "neo4j"),
		Neo4jPassword: getenv("NEO4J_PASSWORD"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		LogLevel:      strings.ToLower(withDefault(getenv("LOG_LEVEL"), "info")),
		LogJSON:       getenv("LOG_JSON") == "true",
		APIRateLimit:  60,
		APIRateWindow: time.Minute,
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
	case DriverSQLite, DriverNeo4j:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB %q", v)
		}
		cfg.RedisDB = n
	}

	// bad or non-positive values keep the defaults
	if v := getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateLimit = n
		}
	}
	if v := getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.APIRateWindow = time.Duration(n) * time.Second
		}
	}

	return cfg, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
