package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite azimuth cache schema.
func InitSqliteSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, []string{
		`
	CREATE TABLE IF NOT EXISTS azimuth_cache (
        cache_key TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL,
        unix_seconds INTEGER NOT NULL,
        azimuth REAL NOT NULL
    );
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_azimuth_cache_unix_seconds
    ON azimuth_cache(unix_seconds);
	`,
	})
}

// Initialize the Postgres azimuth cache schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, []string{
		`
	CREATE TABLE IF NOT EXISTS azimuth_cache (
        cache_key TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        unix_seconds BIGINT NOT NULL,
        azimuth DOUBLE PRECISION NOT NULL
    );
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_azimuth_cache_unix_seconds
    ON azimuth_cache(unix_seconds);
	`,
	})
}

func initSchema(ctx context.Context, db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Delete cached entries for instants before cutoff (unix seconds).
func Prune(ctx context.Context, db *sql.DB, before int64, postgres bool) (int64, error) {
	if db == nil {
		return 0, errors.New("prune azimuth cache: DB is nil")
	}

	q := `DELETE FROM azimuth_cache WHERE unix_seconds < ?;`
	if postgres {
		q = `DELETE FROM azimuth_cache WHERE unix_seconds < $1;`
	}

	res, err := db.ExecContext(ctx, q, before)
	if err != nil {
		return 0, fmt.Errorf("prune azimuth cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune azimuth cache: rows affected: %w", err)
	}
	return n, nil
}
