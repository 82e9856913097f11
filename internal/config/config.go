package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Redis    RedisConfig    `yaml:"redis"`
	Platform PlatformConfig `yaml:"platform"`
	Session  SessionConfig  `yaml:"session"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Rate     RateConfig     `yaml:"rate"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PlatformConfig points the portal at the hosted backend. ServiceKey is the
// privileged key used for table and RPC calls; JWTSecret verifies the access
// tokens the platform issues to browsers.
type PlatformConfig struct {
	BaseURL    string        `yaml:"base_url"`
	AnonKey    string        `yaml:"anon_key"`
	ServiceKey string        `yaml:"service_key"`
	JWTSecret  string        `yaml:"jwt_secret"`
	Timeout    time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	SoftTimeout time.Duration `yaml:"soft_timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

type CatalogConfig struct {
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	SyncInterval time.Duration `yaml:"sync_interval"`
}

type RateConfig struct {
	PurchasePerMinute int `yaml:"purchase_per_minute"`
	PurchasePer10Sec  int `yaml:"purchase_per_10sec"`
}

func Default() Config {
	return Config{
		Env: "dev",
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		Log: LogConfig{Level: "debug"},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			DB:   0,
		},
		Platform: PlatformConfig{
			BaseURL: "http://localhost:54321",
			Timeout: 15 * time.Second,
		},
		Session: SessionConfig{
			SoftTimeout: 3 * time.Second,
			CacheTTL:    5 * time.Minute,
		},
		Catalog: CatalogConfig{
			CacheTTL:     10 * time.Minute,
			SyncInterval: 15 * time.Minute,
		},
		Rate: RateConfig{
			PurchasePerMinute: 10,
			PurchasePer10Sec:  3,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if err := overrideDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if err := overrideInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}

	if v := os.Getenv("PLATFORM_BASE_URL"); v != "" {
		cfg.Platform.BaseURL = v
	}
	if v := os.Getenv("PLATFORM_ANON_KEY"); v != "" {
		cfg.Platform.AnonKey = v
	}
	if v := os.Getenv("PLATFORM_SERVICE_KEY"); v != "" {
		cfg.Platform.ServiceKey = v
	}
	if v := os.Getenv("PLATFORM_JWT_SECRET"); v != "" {
		cfg.Platform.JWTSecret = v
	}
	if err := overrideDuration("PLATFORM_TIMEOUT", &cfg.Platform.Timeout); err != nil {
		return err
	}

	if err := overrideDuration("SESSION_SOFT_TIMEOUT", &cfg.Session.SoftTimeout); err != nil {
		return err
	}
	if err := overrideDuration("SESSION_CACHE_TTL", &cfg.Session.CacheTTL); err != nil {
		return err
	}

	if err := overrideDuration("CATALOG_CACHE_TTL", &cfg.Catalog.CacheTTL); err != nil {
		return err
	}
	if err := overrideDuration("CATALOG_SYNC_INTERVAL", &cfg.Catalog.SyncInterval); err != nil {
		return err
	}

	if err := overrideInt("RATE_PURCHASE_PER_MINUTE", &cfg.Rate.PurchasePerMinute); err != nil {
		return err
	}
	if err := overrideInt("RATE_PURCHASE_PER_10SEC", &cfg.Rate.PurchasePer10Sec); err != nil {
		return err
	}

	return nil
}

func overrideDuration(key string, target *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s duration: %w", key, err)
	}
	*target = d
	return nil
}

func overrideInt(key string, target *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s int: %w", key, err)
	}
	*target = n
	return nil
}
