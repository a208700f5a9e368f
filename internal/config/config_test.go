package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.BaseURL != "https://snkrdunk.com" {
		t.Errorf("unexpected default base URL: %s", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("unexpected default timeout: %v", cfg.RequestTimeout)
	}
	if !cfg.CacheEnabled {
		t.Error("cache should default to enabled")
	}
	if cfg.WatchCron != "@every 30m" {
		t.Errorf("unexpected default watch schedule: %s", cfg.WatchCron)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SNKRDUNK_BASE_URL", "http://localhost:8080")
	t.Setenv("SNKRDUNK_TIMEOUT", "3s")
	t.Setenv("SNKRDUNK_RATE_LIMIT", "0.5")
	t.Setenv("SNKRSEARCH_CACHE", "false")
	t.Setenv("SNKRSEARCH_DEBUG", "true")

	cfg := Load()

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("base URL override ignored: %s", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("timeout override ignored: %v", cfg.RequestTimeout)
	}
	if cfg.RateLimit != 0.5 {
		t.Errorf("rate limit override ignored: %v", cfg.RateLimit)
	}
	if cfg.CacheEnabled {
		t.Error("cache override ignored")
	}
	if !cfg.Debug {
		t.Error("debug override ignored")
	}
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("SNKRDUNK_TIMEOUT", "soon")
	t.Setenv("SNKRSEARCH_CACHE", "kinda")

	cfg := Load()

	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("bad duration should keep default, got %v", cfg.RequestTimeout)
	}
	if !cfg.CacheEnabled {
		t.Error("bad bool should keep default")
	}
}

func TestClientConfigMapping(t *testing.T) {
	t.Setenv("SNKRDUNK_BASE_URL", "http://localhost:9999")

	cfg := Load().ClientConfig()
	if cfg.BaseURL != "http://localhost:9999" {
		t.Errorf("client config not mapped: %s", cfg.BaseURL)
	}
}
