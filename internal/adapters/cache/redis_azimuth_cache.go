package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sunside-service/internal/platform/obs"
	"sunside-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sunside:azimuth:"

// RedisAzimuthCache keeps solar azimuth lookups in Redis with a TTL.
// A zero TTL keeps entries forever.
type RedisAzimuthCache struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

func NewRedisAzimuthCache(client redis.UniversalClient, ttl time.Duration) *RedisAzimuthCache {
	return &RedisAzimuthCache{Client: client, TTL: ttl}
}

// Fetch cached azimuths for the given keys with a single MGET.
func (r *RedisAzimuthCache) GetMany(
	ctx context.Context,
	keys []ports.AzimuthKey,
) (_ map[ports.AzimuthKey]float64, err error) {
	defer obs.Time(ctx, "azimuth.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("azimuth cache: redis client is nil")
	}

	uniq, byString := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[ports.AzimuthKey]float64{}, nil
	}

	redisKeys := make([]string, 0, len(uniq))
	for _, k := range uniq {
		redisKeys = append(redisKeys, redisKeyPrefix+k)
	}

	vals, err := r.Client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get azimuth cache: redis mget: %w", err)
	}

	out := make(map[ports.AzimuthKey]float64, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		az, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("get azimuth cache: parse %q for key=%q: %w", s, uniq[i], err)
		}
		out[byString[uniq[i]]] = az
	}

	return out, nil
}

// Store key -> azimuth mappings in one pipeline.
func (r *RedisAzimuthCache) PutMany(ctx context.Context, values map[ports.AzimuthKey]float64) (err error) {
	defer obs.Time(ctx, "azimuth.redis.PutMany")(&err)

	if r.Client == nil {
		return errors.New("azimuth cache: redis client is nil")
	}

	if len(values) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for k, az := range values {
		pipe.Set(ctx, redisKeyPrefix+k.String(), strconv.FormatFloat(az, 'g', -1, 64), r.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert azimuth cache: redis pipeline: %w", err)
	}

	return nil
}
