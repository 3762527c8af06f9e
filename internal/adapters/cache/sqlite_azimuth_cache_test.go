package cache

import (
	"context"
	"errors"
	"sunside-service/internal/adapters/solar"
	"sunside-service/internal/platform/db"
	"sunside-service/internal/ports"
	"testing"
	"time"
)

func newSqliteCache(t *testing.T) *SqliteAzimuthCache {
	t.Helper()

	conn, err := db.OpenSqlite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSqliteSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSqliteAzimuthCache(conn)
}

func TestSqliteAzimuthCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newSqliteCache(t)
	at := time.Date(2023, 10, 24, 9, 30, 30, 0, time.UTC)

	k1 := ports.NewAzimuthKey(50.76711, 15.05619, at)
	k2 := ports.NewAzimuthKey(50.210361, 15.825211, at)
	missing := ports.NewAzimuthKey(0, 0, at)

	if err := c.PutMany(ctx, map[ports.AzimuthKey]float64{k1: 160.25, k2: 161.5}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []ports.AzimuthKey{k1, k2, k1, missing})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("hits = %d, want 2", len(got))
	}
	if got[k1] != 160.25 || got[k2] != 161.5 {
		t.Errorf("got %v", got)
	}

	// Overwrite keeps a single row per key.
	if err := c.PutMany(ctx, map[ports.AzimuthKey]float64{k1: 10}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err = c.GetMany(ctx, []ports.AzimuthKey{k1})
	if err != nil || got[k1] != 10 {
		t.Errorf("after overwrite got %v, err %v", got, err)
	}
}

func TestSqliteAzimuthCacheEmptyAndNil(t *testing.T) {
	ctx := context.Background()
	c := newSqliteCache(t)

	got, err := c.GetMany(ctx, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("empty get: %v, %v", got, err)
	}
	if err := c.PutMany(ctx, nil); err != nil {
		t.Errorf("empty put: %v", err)
	}

	var nilDB SqliteAzimuthCache
	if _, err := nilDB.GetMany(ctx, []ports.AzimuthKey{{}}); err == nil {
		t.Errorf("expected error for nil db")
	}
}

func TestPruneSqlite(t *testing.T) {
	ctx := context.Background()
	c := newSqliteCache(t)

	old := ports.NewAzimuthKey(1, 1, time.Unix(1000, 0))
	fresh := ports.NewAzimuthKey(1, 1, time.Unix(5000, 0))
	if err := c.PutMany(ctx, map[ports.AzimuthKey]float64{old: 1, fresh: 2}); err != nil {
		t.Fatalf("put: %v", err)
	}

	n, err := Prune(ctx, c.DB, 2000, false)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned = %d, want 1", n)
	}

	got, err := c.GetMany(ctx, []ports.AzimuthKey{old, fresh})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := got[old]; ok {
		t.Errorf("old entry should be pruned")
	}
	if got[fresh] != 2 {
		t.Errorf("fresh entry = %v, want 2", got[fresh])
	}
}

type failingCache struct {
	getErr, putErr error
	puts           int
}

func (f *failingCache) GetMany(context.Context, []ports.AzimuthKey) (map[ports.AzimuthKey]float64, error) {
	return map[ports.AzimuthKey]float64{}, f.getErr
}

func (f *failingCache) PutMany(context.Context, map[ports.AzimuthKey]float64) error {
	f.puts++
	return f.putErr
}

func TestCachedSolarProvider(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2023, 10, 24, 9, 30, 30, 0, time.UTC)

	inner := solar.NewMockSolarProvider(123.5)
	p, err := NewCachedSolarProvider(inner, newSqliteCache(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for i := 0; i < 3; i++ {
		az, err := p.GetSolarAzimuth(ctx, 50.76711, 15.05619, at)
		if err != nil {
			t.Fatalf("lookup %d: %v", i, err)
		}
		if az != 123.5 {
			t.Fatalf("lookup %d: azimuth = %v, want 123.5", i, az)
		}
	}
	if inner.Calls() != 1 {
		t.Errorf("inner calls = %d, want 1", inner.Calls())
	}

	// A different second is a different key.
	if _, err := p.GetSolarAzimuth(ctx, 50.76711, 15.05619, at.Add(time.Second)); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if inner.Calls() != 2 {
		t.Errorf("inner calls = %d, want 2", inner.Calls())
	}

	// Sub-meter and sub-second differences round to the same key.
	if _, err := p.GetSolarAzimuth(ctx, 50.767112, 15.056188, at.Add(400*time.Millisecond)); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if inner.Calls() != 2 {
		t.Errorf("inner calls = %d, want 2 after a lookup within the key resolution", inner.Calls())
	}

	alt, err := p.GetSolarAltitude(ctx, 50.76711, 15.05619, at)
	if err != nil || alt != inner.Altitude {
		t.Errorf("altitude = %v, err %v", alt, err)
	}
}

func TestCachedSolarProviderCacheFailures(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2023, 10, 24, 9, 30, 30, 0, time.UTC)

	readFail := &failingCache{getErr: errors.New("read failed")}
	p, _ := NewCachedSolarProvider(solar.NewMockSolarProvider(10), readFail)
	if _, err := p.GetSolarAzimuth(ctx, 1, 1, at); err == nil {
		t.Errorf("expected cache read error")
	}

	writeFail := &failingCache{putErr: errors.New("write failed")}
	p, _ = NewCachedSolarProvider(solar.NewMockSolarProvider(10), writeFail)
	az, err := p.GetSolarAzimuth(ctx, 1, 1, at)
	if err != nil || az != 10 {
		t.Errorf("write failure should not fail lookup: %v, %v", az, err)
	}

	// Out of range values are never stored.
	bad := &failingCache{}
	p, _ = NewCachedSolarProvider(solar.NewMockSolarProvider(400), bad)
	if _, err := p.GetSolarAzimuth(ctx, 1, 1, at); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if bad.puts != 0 {
		t.Errorf("puts = %d, want 0", bad.puts)
	}

	if _, err := NewCachedSolarProvider(nil, bad); err == nil {
		t.Errorf("expected error for nil inner provider")
	}
}
