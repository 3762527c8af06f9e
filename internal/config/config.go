package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends for solar azimuths.
const (
	CacheNone     = "none"
	CacheSqlite   = "sqlite"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Config holds the settings read from the environment (and .env).
type Config struct {
	Cache       string
	SqlitePath  string
	DatabaseURL string
	RedisAddr   string
	RedisTTL    time.Duration
	Concurrency int
	Step        time.Duration
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Cache:       strings.ToLower(Get("SUNSIDE_CACHE", CacheNone)),
		SqlitePath:  Get("SQLITE_PATH", "data/sunside.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisAddr:   Get("REDIS_ADDR", "localhost:6379"),
	}

	switch cfg.Cache {
	case CacheNone, CacheSqlite, CacheRedis:
	case CachePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("config: DATABASE_URL is required for SUNSIDE_CACHE=%s", CachePostgres)
		}
	default:
		return Config{}, fmt.Errorf("config: unknown SUNSIDE_CACHE %q", cfg.Cache)
	}

	var err error
	if cfg.RedisTTL, err = time.ParseDuration(Get("REDIS_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("config: REDIS_TTL: %w", err)
	}
	if cfg.Step, err = time.ParseDuration(Get("SUNSIDE_STEP", "0s")); err != nil {
		return Config{}, fmt.Errorf("config: SUNSIDE_STEP: %w", err)
	}
	if cfg.Step < 0 {
		return Config{}, fmt.Errorf("config: SUNSIDE_STEP must not be negative, got %s", cfg.Step)
	}

	if cfg.Concurrency, err = strconv.Atoi(Get("SUNSIDE_CONCURRENCY", "4")); err != nil {
		return Config{}, fmt.Errorf("config: SUNSIDE_CONCURRENCY: %w", err)
	}
	if cfg.Concurrency < 1 {
		return Config{}, fmt.Errorf("config: SUNSIDE_CONCURRENCY must be at least 1, got %d", cfg.Concurrency)
	}

	return cfg, nil
}
