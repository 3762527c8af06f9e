package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sunside-service/internal/adapters/solar"
	"sunside-service/internal/config"
	"sunside-service/internal/domain"
	"sunside-service/internal/dto"
	"testing"
	"time"
)

func runCmd(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeRouteFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "route.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write route: %v", err)
	}
	return path
}

func TestEvaluateCommandJSON(t *testing.T) {
	a := &app{cfg: config.Config{Concurrency: 2}, provider: solar.NewMockSolarProvider(90)}
	path := writeRouteFile(t, `[[50.7663, 15.0543], [50.2092, 15.8328]]`)

	out, err := runCmd(t, a, "evaluate", "--route", path, "--at", "2023-10-24T09:30:30Z", "--json", "--segments")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	var res dto.EvaluateResponse
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if res.Summary.TotalSegments != 1 || res.Summary.LeftCount != 1 || res.Summary.PreferredSide != domain.SideLeft {
		t.Errorf("unexpected summary: %+v", res.Summary)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(res.Segments))
	}
}

func TestEvaluateCommandText(t *testing.T) {
	a := &app{cfg: config.Config{Concurrency: 1}, provider: solar.NewMockSolarProvider(90)}
	path := writeRouteFile(t, `[[50.7663, 15.0543], [50.2092, 15.8328]]`)

	out, err := runCmd(t, a, "evaluate", "--route", path, "--at", "2023-10-24T09:30:30Z")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !strings.Contains(out, "Sun mostly on the LEFT; sit on the RIGHT") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestEvaluateCommandRejectsNaiveTime(t *testing.T) {
	a := &app{cfg: config.Config{Concurrency: 1}, provider: solar.NewMockSolarProvider(90)}
	path := writeRouteFile(t, `[[50.7663, 15.0543], [50.2092, 15.8328]]`)

	_, err := runCmd(t, a, "evaluate", "--route", path, "--at", "2023-10-24T09:30:30")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEvaluateCommandSinglePoint(t *testing.T) {
	a := &app{cfg: config.Config{Concurrency: 1}, provider: solar.NewMockSolarProvider(90)}
	path := writeRouteFile(t, `[[50.7663, 15.0543]]`)

	_, err := runCmd(t, a, "evaluate", "--route", path, "--at", "2023-10-24T09:30:30Z")
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestTrajectoryCommand(t *testing.T) {
	a := &app{cfg: config.Config{Concurrency: 1}, provider: solar.NewMeeusSolarProvider()}

	out, err := runCmd(t, a, "trajectory", "--lat", "51.4779", "--lon", "0", "--at", "2023-06-21T00:00:00Z", "--json")
	if err != nil {
		t.Fatalf("trajectory: %v", err)
	}

	var res dto.TrajectoryResponse
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(res.Points) == 0 || len(res.Points) >= 100 {
		t.Errorf("expected only daytime samples, got %d", len(res.Points))
	}
}

func TestDaylightCommand(t *testing.T) {
	out, err := runCmd(t, &app{}, "daylight", "--lat", "51.4779", "--lon", "0", "--date", "2023-06-21", "--json")
	if err != nil {
		t.Fatalf("daylight: %v", err)
	}

	var res dto.DaylightResponse
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if res.Polar || res.Sunrise == nil || res.Sunset == nil {
		t.Fatalf("expected a sunrise and sunset: %+v", res)
	}
	if h := res.Sunrise.Hour(); h != 3 {
		t.Errorf("sunrise hour = %d, want 3 UTC", h)
	}
	if h := res.Sunset.Hour(); h != 20 {
		t.Errorf("sunset hour = %d, want 20 UTC", h)
	}
}

func TestDaylightCommandBadDate(t *testing.T) {
	_, err := runCmd(t, &app{}, "daylight", "--lat", "0", "--lon", "0", "--date", "21/06/2023")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBuildProviderNone(t *testing.T) {
	p, closeFn, err := buildProvider(context.Background(), config.Config{Cache: config.CacheNone})
	if err != nil {
		t.Fatalf("buildProvider: %v", err)
	}
	defer closeFn()
	if _, ok := p.(*solar.MeeusSolarProvider); !ok {
		t.Errorf("expected bare Meeus provider, got %T", p)
	}
}

func TestBuildProviderSqlite(t *testing.T) {
	cfg := config.Config{Cache: config.CacheSqlite, SqlitePath: filepath.Join(t.TempDir(), "cache.db")}
	p, closeFn, err := buildProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildProvider: %v", err)
	}
	defer closeFn()

	az, err := p.GetSolarAzimuth(context.Background(), 51.4779, 0, mustTime(t, "2023-06-21T12:02:00Z"))
	if err != nil {
		t.Fatalf("GetSolarAzimuth: %v", err)
	}
	if az < 178 || az > 182 {
		t.Errorf("azimuth = %.2f, want ~180", az)
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := parseInstant(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func TestEvaluateCommandRejectsNegativeStep(t *testing.T) {
	provider := solar.NewMockSolarProvider(90)
	a := &app{cfg: config.Config{Concurrency: 1}, provider: provider}
	path := writeRouteFile(t, `[[50.7663, 15.0543], [50.2092, 15.8328], [50.0, 16.0]]`)

	_, err := runCmd(t, a, "evaluate", "--route", path, "--at", "2023-10-24T09:30:30Z", "--step=-5m", "--json")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if provider.Calls() != 0 {
		t.Errorf("provider calls = %d, want 0", provider.Calls())
	}
}

func TestRunLogsCommandError(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	root := newRootCmd(&app{})
	root.SetOut(io.Discard)
	root.SetArgs([]string{"daylight", "--lat", "0", "--lon", "0", "--date", "yesterday"})

	if code := run(context.Background(), root); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(logs.String(), `error: invalid input: date "yesterday"`) {
		t.Errorf("error not logged: %q", logs.String())
	}
}

func TestRunSuccess(t *testing.T) {
	root := newRootCmd(&app{})
	root.SetOut(io.Discard)
	root.SetArgs([]string{"daylight", "--lat", "51.4779", "--lon", "0", "--date", "2023-06-21"})

	if code := run(context.Background(), root); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}
