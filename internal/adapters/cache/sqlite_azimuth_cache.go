package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sunside-service/internal/ports"
)

// SQLite backed cache of solar azimuth lookups.
// Rows are keyed by the AzimuthKey string form.
type SqliteAzimuthCache struct {
	DB *sql.DB
}

func NewSqliteAzimuthCache(db *sql.DB) *SqliteAzimuthCache {
	return &SqliteAzimuthCache{DB: db}
}

// Fetch cached azimuths for the given keys.
func (s *SqliteAzimuthCache) GetMany(ctx context.Context, keys []ports.AzimuthKey) (map[ports.AzimuthKey]float64, error) {
	if s.DB == nil {
		return nil, errors.New("azimuth cache: db is nil")
	}

	uniq, byString := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[ports.AzimuthKey]float64{}, nil
	}

	ph := make([]string, 0, len(uniq))
	args := make([]any, 0, len(uniq))
	for _, k := range uniq {
		ph = append(ph, "?")
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        cache_key,
        azimuth
    FROM azimuth_cache
    WHERE cache_key IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get azimuth cache: query azimuth_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[ports.AzimuthKey]float64, len(uniq))
	for rows.Next() {
		var key string
		var az float64
		if err := rows.Scan(&key, &az); err != nil {
			return nil, fmt.Errorf("get azimuth cache: scan rows: %w", err)
		}
		if k, ok := byString[key]; ok {
			out[k] = az
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get azimuth cache: row iteration: %w", err)
	}

	return out, nil
}

// Store key -> azimuth mappings in the cache.
func (s *SqliteAzimuthCache) PutMany(ctx context.Context, values map[ports.AzimuthKey]float64) error {
	if s.DB == nil {
		return errors.New("azimuth cache: db is nil")
	}

	if len(values) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert azimuth cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO azimuth_cache (
        cache_key,
        lat,
        lon,
        unix_seconds,
        azimuth
    )
    VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert azimuth cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for k, az := range values {
		if _, err := stmt.ExecContext(ctx, k.String(), k.Lat, k.Lon, k.Unix, az); err != nil {
			return fmt.Errorf("insert azimuth cache key=%q: %w", k.String(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert azimuth cache commit: %w", err)
	}

	return nil
}

// uniqueKeys deduplicates keys and indexes them by their string form.
func uniqueKeys(keys []ports.AzimuthKey) ([]string, map[string]ports.AzimuthKey) {
	byString := make(map[string]ports.AzimuthKey, len(keys))
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		s := k.String()
		if _, ok := byString[s]; ok {
			continue
		}
		byString[s] = k
		uniq = append(uniq, s)
	}
	return uniq, byString
}
