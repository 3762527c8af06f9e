package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Postgres pool limits. The azimuth cache issues one small query per lookup.
const (
	postgresMaxConns    = 10
	postgresConnMaxLife = 30 * time.Minute
)

// Open a Postgres connection pool through the pgx stdlib driver and verify
// it within ctx. The connection string is logged without its password.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(postgresMaxConns)
	db.SetMaxIdleConns(postgresMaxConns)
	db.SetConnMaxLifetime(postgresConnMaxLife)

	start := time.Now()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify postgres connection to %s: %w", Redact(databaseURL), err)
	}
	log.Printf("db=postgres url=%s ping=%dms", Redact(databaseURL), time.Since(start).Milliseconds())

	return db, nil
}

// Redact hides the password of a URL-style connection string.
// Strings that do not parse as URLs are replaced entirely.
func Redact(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil || u.Scheme == "" {
		return "[redacted]"
	}
	return u.Redacted()
}

// Open a SQLite database file. ":memory:" is pinned to a single connection,
// since every connection would otherwise get its own empty database.
func OpenSqlite(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("openDB: create directory for %q: %w", dbPath, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
