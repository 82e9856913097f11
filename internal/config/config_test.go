package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
platform:
  base_url: https://project.example.co
  service_key: service-key
  timeout: 20s
session:
  soft_timeout: 2s
catalog:
  cache_ttl: 30m
rate:
  purchase_per_minute: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Platform.BaseURL != "https://project.example.co" {
		t.Fatalf("unexpected platform base url: %s", cfg.Platform.BaseURL)
	}
	if cfg.Platform.ServiceKey != "service-key" {
		t.Fatalf("unexpected platform service key: %s", cfg.Platform.ServiceKey)
	}
	if cfg.Platform.Timeout != 20*time.Second {
		t.Fatalf("unexpected platform timeout: %s", cfg.Platform.Timeout)
	}
	if cfg.Session.SoftTimeout != 2*time.Second {
		t.Fatalf("unexpected session soft timeout: %s", cfg.Session.SoftTimeout)
	}
	if cfg.Catalog.CacheTTL != 30*time.Minute {
		t.Fatalf("unexpected catalog cache ttl: %s", cfg.Catalog.CacheTTL)
	}
	if cfg.Rate.PurchasePerMinute != 5 {
		t.Fatalf("unexpected purchase rate: %d", cfg.Rate.PurchasePerMinute)
	}

	// Untouched sections keep defaults.
	if cfg.HTTP.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected read timeout: %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.Rate.PurchasePer10Sec != 3 {
		t.Fatalf("unexpected purchase 10s rate: %d", cfg.Rate.PurchasePer10Sec)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("PLATFORM_JWT_SECRET", "from-env")
	t.Setenv("SESSION_SOFT_TIMEOUT", "1500ms")
	t.Setenv("RATE_PURCHASE_PER_10SEC", "7")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Platform.JWTSecret != "from-env" {
		t.Fatalf("unexpected jwt secret: %s", cfg.Platform.JWTSecret)
	}
	if cfg.Session.SoftTimeout != 1500*time.Millisecond {
		t.Fatalf("unexpected soft timeout: %s", cfg.Session.SoftTimeout)
	}
	if cfg.Rate.PurchasePer10Sec != 7 {
		t.Fatalf("unexpected purchase 10s rate: %d", cfg.Rate.PurchasePer10Sec)
	}
}

func TestLoadInvalidDurationEnvFails(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PLATFORM_TIMEOUT", "not-a-duration")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for invalid duration override")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()

	keys := []string{
		"APP_ENV", "HTTP_ADDR", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"PLATFORM_BASE_URL", "PLATFORM_ANON_KEY", "PLATFORM_SERVICE_KEY", "PLATFORM_JWT_SECRET", "PLATFORM_TIMEOUT",
		"SESSION_SOFT_TIMEOUT", "SESSION_CACHE_TTL",
		"CATALOG_CACHE_TTL", "CATALOG_SYNC_INTERVAL",
		"RATE_PURCHASE_PER_MINUTE", "RATE_PURCHASE_PER_10SEC",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
