// README: Config loader: defaults, optional YAML file, SKYFARE_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings sources for the pricing configuration record.
const (
	SettingsFile     = "file"
	SettingsDB       = "db"
	SettingsDefaults = "defaults"
)

// Flight repository kinds.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	HTTP struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
	Feeds   FeedsConfig
	Pricing PricingConfig
	Store   string
	Log     LogConfig
}

type FeedsConfig struct {
	HolidaysURL    string
	HolidaysAPIKey string
	TourismURL     string
	Timeout        time.Duration
	CacheTTL       time.Duration
}

type PricingConfig struct {
	SettingsSource string
	SettingsPath   string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration. path, when non-empty, names the config file explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("maps.api_key", "")
	v.SetDefault("feeds.holidays_url", "https://api.api-ninjas.com")
	v.SetDefault("feeds.holidays_api_key", "")
	v.SetDefault("feeds.tourism_url", "https://api.worldbank.org")
	v.SetDefault("feeds.timeout", "10s")
	v.SetDefault("feeds.cache_ttl", "24h")
	v.SetDefault("pricing.settings_source", SettingsFile)
	v.SetDefault("pricing.settings_path", "settings.json")
	v.SetDefault("store", StoreMemory)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("skyfare")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/skyfare")
	v.AddConfigPath(".")

	if path == "" {
		path = os.Getenv("SKYFARE_CONFIG_PATH")
	}
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SKYFARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.ShutdownTimeout = v.GetDuration("http.shutdown_timeout")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Maps.APIKey = v.GetString("maps.api_key")
	cfg.Feeds = FeedsConfig{
		HolidaysURL:    v.GetString("feeds.holidays_url"),
		HolidaysAPIKey: v.GetString("feeds.holidays_api_key"),
		TourismURL:     v.GetString("feeds.tourism_url"),
		Timeout:        v.GetDuration("feeds.timeout"),
		CacheTTL:       v.GetDuration("feeds.cache_ttl"),
	}
	cfg.Pricing = PricingConfig{
		SettingsSource: strings.ToLower(v.GetString("pricing.settings_source")),
		SettingsPath:   v.GetString("pricing.settings_path"),
	}
	cfg.Store = strings.ToLower(v.GetString("store"))
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if cfg.Feeds.Timeout <= 0 {
		return fmt.Errorf("feeds.timeout must be greater than 0")
	}
	if cfg.Feeds.CacheTTL <= 0 {
		return fmt.Errorf("feeds.cache_ttl must be greater than 0")
	}

	switch cfg.Pricing.SettingsSource {
	case SettingsFile:
		if cfg.Pricing.SettingsPath == "" {
			return fmt.Errorf("pricing.settings_path is required when pricing.settings_source is file")
		}
	case SettingsDB:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required when pricing.settings_source is db")
		}
	case SettingsDefaults:
	default:
		return fmt.Errorf("invalid pricing.settings_source: %s (must be file, db or defaults)", cfg.Pricing.SettingsSource)
	}

	switch cfg.Store {
	case StoreMemory:
	case StorePostgres:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required when store is postgres")
		}
	default:
		return fmt.Errorf("invalid store: %s (must be memory or postgres)", cfg.Store)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}
	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}
	return nil
}
