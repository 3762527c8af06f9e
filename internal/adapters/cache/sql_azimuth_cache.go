package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sunside-service/internal/platform/obs"
	"sunside-service/internal/ports"
)

// SQLAzimuthCache is a Postgres-backed cache of solar azimuth lookups.
type SQLAzimuthCache struct {
	DB *sql.DB
}

func NewSQLAzimuthCache(db *sql.DB) *SQLAzimuthCache {
	return &SQLAzimuthCache{DB: db}
}

// Fetch cached azimuths for the given keys.
func (s *SQLAzimuthCache) GetMany(
	ctx context.Context,
	keys []ports.AzimuthKey,
) (_ map[ports.AzimuthKey]float64, err error) {
	defer obs.Time(ctx, "azimuth.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("azimuth cache: db is nil")
	}

	uniq, byString := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[ports.AzimuthKey]float64{}, nil
	}

	q := `
	SELECT cache_key, azimuth
    FROM azimuth_cache
    WHERE cache_key = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
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
func (s *SQLAzimuthCache) PutMany(ctx context.Context, values map[ports.AzimuthKey]float64) (err error) {
	defer obs.Time(ctx, "azimuth.cache.PutMany")(&err)

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
	INSERT INTO azimuth_cache (cache_key, lat, lon, unix_seconds, azimuth)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (cache_key) DO UPDATE
	SET azimuth = EXCLUDED.azimuth;
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
