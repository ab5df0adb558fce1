package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=foodcost port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string `yaml:"http_port"`
	DatabaseDSN string `yaml:"database_dsn"`
	JWTSecret   string `yaml:"-"`
	CORSOrigins string `yaml:"cors_allowed_origins"`

	LogLevel       string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat      string `yaml:"log_format"` // text, json
	MetricsEnabled bool   `yaml:"metrics_enabled"`

	Costing CostingConfig `yaml:"costing"`
}

// CostingConfig: maliyet motoru ayarları
type CostingConfig struct {
	MaxDepth              int   `yaml:"max_depth"`
	Parallelism           int   `yaml:"parallelism"`
	ApplyYieldToPrepItems bool  `yaml:"apply_yield_to_prep_items"`
	MoneyPlaces           int32 `yaml:"money_places"`
	PercentPlaces         int32 `yaml:"percent_places"`
}

func defaults() *Config {
	return &Config{
		HTTPPort:       "8080",
		DatabaseDSN:    defaultDSN,
		CORSOrigins:    "http://localhost:5173",
		LogLevel:       "info",
		LogFormat:      "text",
		MetricsEnabled: true,
		Costing: CostingConfig{
			MaxDepth:      20,
			Parallelism:   4,
			MoneyPlaces:   2,
			PercentPlaces: 1,
		},
	}
}

func Load() *Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}
	return cfg
}

// load: varsayılanlar -> CONFIG_FILE (yaml) -> environment
func load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config dosyası okunamadı: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config dosyası çözümlenemedi: %w", err)
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.CORSOrigins = getEnv("CORS_ALLOWED_ORIGINS", cfg.CORSOrigins)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.MetricsEnabled, err = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled); err != nil {
		return nil, err
	}
	if cfg.Costing.MaxDepth, err = getEnvInt("COSTING_MAX_DEPTH", cfg.Costing.MaxDepth); err != nil {
		return nil, err
	}
	if cfg.Costing.Parallelism, err = getEnvInt("COSTING_PARALLELISM", cfg.Costing.Parallelism); err != nil {
		return nil, err
	}
	if cfg.Costing.ApplyYieldToPrepItems, err = getEnvBool("COSTING_APPLY_YIELD_TO_PREP_ITEMS", cfg.Costing.ApplyYieldToPrepItems); err != nil {
		return nil, err
	}
	places, err := getEnvInt("COSTING_MONEY_PLACES", int(cfg.Costing.MoneyPlaces))
	if err != nil {
		return nil, err
	}
	cfg.Costing.MoneyPlaces = int32(places)
	if places, err = getEnvInt("COSTING_PERCENT_PLACES", int(cfg.Costing.PercentPlaces)); err != nil {
		return nil, err
	}
	cfg.Costing.PercentPlaces = int32(places)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	// Production güvenlik kontrolleri
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski")
	}
	if c.Costing.MaxDepth < 1 {
		return fmt.Errorf("COSTING_MAX_DEPTH en az 1 olmalı (%d)", c.Costing.MaxDepth)
	}
	if c.Costing.Parallelism < 1 {
		return fmt.Errorf("COSTING_PARALLELISM en az 1 olmalı (%d)", c.Costing.Parallelism)
	}
	if c.Costing.MoneyPlaces < 0 || c.Costing.PercentPlaces < 0 {
		return errors.New("yuvarlama basamakları negatif olamaz")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s sayı olmalı: %q", key, v)
	}
	return n, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s true/false olmalı: %q", key, v)
	}
	return b, nil
}
