package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Backend names for the history/favorites store.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type AppConfig struct {
	// Upstream API keys. The timeline provider requires its key; the
	// Google geocoder key is optional and enables the fallback
	// suggestion source.
	VisualCrossingAPIKey string
	GoogleGeocoderAPIKey string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// StoreBackend selects the history/favorites store: memory or sqlite.
	StoreBackend string
	SQLitePath   string

	// CacheTTL controls how long a normalized snapshot is served from
	// cache before a live refetch. 0 disables caching.
	CacheTTL time.Duration

	// RefreshInterval controls how often saved favorites are
	// re-fetched in the background. 0 disables the refresher.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.VisualCrossingAPIKey = os.Getenv("VISUALCROSSING_API_KEY")
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.StoreBackend = getenvDefault("STORE_BACKEND", BackendMemory)
	if cfg.StoreBackend != BackendMemory && cfg.StoreBackend != BackendSQLite {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be %q or %q",
			cfg.StoreBackend, BackendMemory, BackendSQLite)
	}
	cfg.SQLitePath = getenvDefault("SQLITE_PATH", "weatherdeck.db")

	ttlStr := getenvDefault("CACHE_TTL", "10m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	refreshStr := getenvDefault("REFRESH_INTERVAL", "15m")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
