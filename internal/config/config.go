package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/guarzo/snkrsearch/internal/snkrdunk"
)

// Config collects every tunable the CLI exposes through the environment.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	RateLimit      float64

	CacheEnabled bool
	CachePath    string
	CacheTTL     time.Duration

	SnapshotPath string
	WatchCron    string

	Debug bool
}

// Load reads .env (if present) and the process environment. Missing
// values fall back to the same defaults the client package uses.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:        getEnv("SNKRDUNK_BASE_URL", "https://snkrdunk.com"),
		RequestTimeout: getDuration("SNKRDUNK_TIMEOUT", 15*time.Second),
		RateLimit:      getFloat("SNKRDUNK_RATE_LIMIT", 2),
		CacheEnabled:   getBool("SNKRSEARCH_CACHE", true),
		CachePath:      getEnv("SNKRSEARCH_CACHE_PATH", "/tmp/snkrsearch_cache.json"),
		CacheTTL:       getDuration("SNKRSEARCH_CACHE_TTL", 10*time.Minute),
		SnapshotPath:   getEnv("SNKRSEARCH_SNAPSHOT_PATH", "snkrsearch_snapshot.json"),
		WatchCron:      getEnv("SNKRSEARCH_WATCH_CRON", "@every 30m"),
		Debug:          getBool("SNKRSEARCH_DEBUG", false),
	}
}

// ClientConfig maps the loaded settings onto the API client's config.
func (c *Config) ClientConfig() snkrdunk.Config {
	cfg := snkrdunk.DefaultConfig()
	cfg.BaseURL = c.BaseURL
	cfg.RequestTimeout = c.RequestTimeout
	cfg.RateLimit = rate.Limit(c.RateLimit)
	cfg.CacheEnabled = c.CacheEnabled
	cfg.CachePath = c.CachePath
	cfg.CacheTTL = c.CacheTTL
	cfg.Debug = c.Debug
	return cfg
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func getFloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

func getDuration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			return dur
		}
	}
	return d
}
