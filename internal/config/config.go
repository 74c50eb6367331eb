// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ID strategies accepted by ID_STRATEGY.
const (
	IDStrategyUUID  = "uuid"
	IDStrategyClock = "clock"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:8081"] (the mobile app's dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageBackend selects where the stores persist their snapshots:
	// memory, file, sqlite or postgres. Defaults to "file".
	StorageBackend string

	// DataDir holds the file backend's slots and the default SQLite file.
	DataDir string

	// SQLitePath is the SQLite database file. Defaults to DataDir/tourist-guide.sqlite.
	SQLitePath string

	// DatabaseURL is the Postgres connection string. Required for the postgres backend.
	DatabaseURL string

	// PersistSavedPlaces controls whether bookmarks survive a restart. Defaults to true.
	PersistSavedPlaces bool

	// PersistStrict makes snapshot write failures visible to clients (HTTP 503)
	// instead of only logging them.
	PersistStrict bool

	// IDStrategy selects how diary entry ids are generated: uuid or clock.
	IDStrategy string

	// CatalogPath points at an external catalog YAML. Empty means the built-in catalog.
	CatalogPath string

	// CatalogWatch reloads CatalogPath when it changes.
	CatalogWatch bool

	// ShareWebhookURL, when set, receives every share payload as a JSON POST.
	ShareWebhookURL string

	// MaxBodyBytes limits request bodies. Defaults to 64 KiB.
	MaxBodyBytes int64

	// RateLimitRPS and RateLimitBurst configure the per-client limiter.
	// An RPS of 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every required variable that is missing and every
// variable whose value cannot be used.
func Load() (Config, error) {
	var problems []string

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8081")),
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DataDir:         getEnv("DATA_DIR", "./data"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		IDStrategy:      strings.ToLower(getEnv("ID_STRATEGY", IDStrategyUUID)),
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		ShareWebhookURL: os.Getenv("SHARE_WEBHOOK_URL"),
	}
	cfg.SQLitePath = getEnv("SQLITE_PATH", filepath.Join(cfg.DataDir, "tourist-guide.sqlite"))

	cfg.PersistSavedPlaces = parseBool("PERSIST_SAVED_PLACES", true, &problems)
	cfg.PersistStrict = parseBool("PERSIST_STRICT", false, &problems)
	cfg.CatalogWatch = parseBool("CATALOG_WATCH", false, &problems)
	cfg.MaxBodyBytes = int64(parseInt("MAX_BODY_BYTES", 64<<10, &problems))
	cfg.RateLimitBurst = parseInt("RATE_LIMIT_BURST", 40, &problems)
	cfg.RateLimitRPS = parseFloat("RATE_LIMIT_RPS", 20, &problems)

	backends := []string{BackendMemory, BackendFile, BackendSQLite, BackendPostgres}
	if !slices.Contains(backends, cfg.StorageBackend) {
		problems = append(problems, fmt.Sprintf("STORAGE_BACKEND must be one of %s", strings.Join(backends, ", ")))
	}
	if cfg.StorageBackend == BackendPostgres && cfg.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required when STORAGE_BACKEND=postgres")
	}
	if cfg.IDStrategy != IDStrategyUUID && cfg.IDStrategy != IDStrategyClock {
		problems = append(problems, "ID_STRATEGY must be uuid or clock")
	}
	if cfg.CatalogWatch && cfg.CatalogPath == "" {
		problems = append(problems, "CATALOG_WATCH requires CATALOG_PATH")
	}
	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		problems = append(problems, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool, problems *[]string) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s must be a boolean, got %q", key, v))
		return fallback
	}
	return b
}

func parseInt(key string, fallback int, problems *[]string) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s must be an integer, got %q", key, v))
		return fallback
	}
	return n
}

func parseFloat(key string, fallback float64, problems *[]string) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s must be a number, got %q", key, v))
		return fallback
	}
	return f
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
