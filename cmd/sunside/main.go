package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sunside-service/internal/adapters/cache"
	"sunside-service/internal/adapters/solar"
	"sunside-service/internal/config"
	"sunside-service/internal/platform/db"
	"sunside-service/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// main is the composition root.
// It wires the Meeus solar provider, optionally behind a persistent cache,
// and hands it to the command tree.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	provider, closeFn, err := buildProvider(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	code := run(ctx, newRootCmd(&app{cfg: cfg, provider: provider}))
	closeFn()
	os.Exit(code)
}

// run executes the command tree and returns the process exit code.
// Cobra's own error printing is silenced, so failures are logged here.
func run(ctx context.Context, root *cobra.Command) int {
	if err := root.ExecuteContext(ctx); err != nil {
		log.Printf("error: %v", err)
		return 1
	}
	return 0
}

// buildProvider returns the solar provider selected by cfg.Cache and a
// function releasing whatever backing store it opened.
func buildProvider(ctx context.Context, cfg config.Config) (ports.SolarAltitudeProvider, func(), error) {
	meeus := solar.NewMeeusSolarProvider()
	noop := func() {}

	var (
		store   ports.AzimuthCache
		closeFn = noop
	)

	switch cfg.Cache {
	case config.CacheNone:
		return meeus, noop, nil

	case config.CacheSqlite:
		conn, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("build provider: %w", err)
		}
		if err := cache.InitSqliteSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("build provider: %w", err)
		}
		store, closeFn = cache.NewSqliteAzimuthCache(conn), closeDB(conn)

	case config.CachePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("build provider: %w", err)
		}
		store, closeFn = cache.NewSQLAzimuthCache(conn), closeDB(conn)

	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("build provider: ping redis %s: %w", cfg.RedisAddr, err)
		}
		store = cache.NewRedisAzimuthCache(client, cfg.RedisTTL)
		closeFn = func() {
			if err := client.Close(); err != nil {
				log.Printf("redis close failed: %v", err)
			}
		}

	default:
		return nil, nil, fmt.Errorf("build provider: unknown cache %q", cfg.Cache)
	}

	provider, err := cache.NewCachedSolarProvider(meeus, store)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("build provider: %w", err)
	}

	log.Printf("solar provider ready cache=%s", cfg.Cache)
	return provider, closeFn, nil
}

func closeDB(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Printf("db close failed: %v", err)
		}
	}
}
