package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"sunside-service/internal/adapters/cache"
	"sunside-service/internal/config"
	"sunside-service/internal/platform/db"
	"time"

	"github.com/joho/godotenv"
)

// dbtool prepares the Postgres azimuth cache: it creates the schema and,
// with -prune-older-than, drops entries for instants older than that.
func main() {
	pruneOlderThan := flag.Duration("prune-older-than", 0, "delete cached azimuths older than this (0 keeps all)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing azimuth cache schema...")
	if err := cache.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *pruneOlderThan > 0 {
		cutoff := time.Now().Add(-*pruneOlderThan)
		n, err := cache.Prune(ctx, conn, cutoff.Unix(), true)
		if err != nil {
			log.Fatalf("prune failed: %v", err)
		}
		log.Printf("Pruned azimuth cache rows=%d before=%s", n, cutoff.UTC().Format(time.RFC3339))
	}
}
