package services

import (
	"context"
	"errors"
	"fmt"
	"sunside-service/internal/domain"
	"sunside-service/internal/ports"
	"time"

	"golang.org/x/sync/errgroup"
)

// Tuning for EvaluateRouteDetailed.
type EvaluateOptions struct {
	// Maximum number of concurrent provider lookups. Values below 1 mean sequential.
	Concurrency int

	// Ask the provider for the sun's altitude to fill SegmentResult.SunUp.
	// Only used when the provider implements ports.SolarAltitudeProvider; a
	// failed or out-of-range altitude then fails the evaluation. Otherwise
	// SunUp comes from the day's sunrise/sunset window and only azimuths are
	// looked up.
	UseAltitude bool
}

// EvaluateRoute classifies every segment of points and folds the labels
// into a route summary.
//
// Segment i runs from points[i] to points[i+1]; the sun is looked up at the
// segment start, at policy.TimeAt(i).
func EvaluateRoute(
	ctx context.Context,
	points []domain.Coordinates,
	policy domain.TimePolicy,
	provider ports.SolarPositionProvider,
) (*domain.RouteSunSummary, error) {
	report, err := EvaluateRouteDetailed(ctx, points, policy, provider, EvaluateOptions{})
	if err != nil {
		return nil, err
	}
	return &report.Summary, nil
}

// EvaluateRouteDetailed is EvaluateRoute with per-segment results.
//
// Zero-length segments have no bearing; they are skipped and counted in
// RouteReport.Skipped. Results do not depend on opts.Concurrency.
func EvaluateRouteDetailed(
	ctx context.Context,
	points []domain.Coordinates,
	policy domain.TimePolicy,
	provider ports.SolarPositionProvider,
	opts EvaluateOptions,
) (*domain.RouteReport, error) {
	route, err := domain.NewRoute(points)
	if err != nil {
		return nil, fmt.Errorf("evaluate route: %w", err)
	}
	if policy == nil {
		return nil, fmt.Errorf("evaluate route: %w: time policy is nil", domain.ErrInvalidInput)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("evaluate route: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("evaluate route: %w: provider is nil", domain.ErrInvalidInput)
	}

	classifier := NewSolarSideClassifier(provider)
	var altitudes ports.SolarAltitudeProvider
	if opts.UseAltitude {
		altitudes, _ = provider.(ports.SolarAltitudeProvider)
	}

	segments := make([]domain.SegmentResult, len(route)-1)
	evaluated := make([]bool, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i := range segments {
		from, to := route[i], route[i+1]
		if from.Coordinates == to.Coordinates {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			at := policy.TimeAt(from.Index)
			bearing := ComputeBearing(from.Coordinates, to.Coordinates)

			side, az, err := classifier.Classify(gctx, from.Coordinates, at, bearing)
			if err != nil {
				return fmt.Errorf("segment #%d: %w", i, err)
			}

			sunUp, err := sunIsUp(gctx, altitudes, from.Coordinates, at)
			if err != nil {
				return fmt.Errorf("segment #%d: %w", i, err)
			}

			segments[i] = domain.SegmentResult{
				Index:          i,
				From:           from,
				To:             to,
				Bearing:        bearing,
				Azimuth:        az,
				At:             at,
				Side:           side,
				DistanceMeters: DistanceMeters(from.Coordinates, to.Coordinates),
				SunUp:          sunUp,
			}
			evaluated[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate route: %w", err)
	}

	// Fold in route order once every worker is done.
	var tally domain.SideTally
	report := &domain.RouteReport{Segments: make([]domain.SegmentResult, 0, len(segments))}
	for i, seg := range segments {
		if !evaluated[i] {
			report.Skipped++
			continue
		}
		tally.Add(seg.Side)
		report.TotalDistanceMeters += seg.DistanceMeters
		report.Segments = append(report.Segments, seg)
	}

	summary, err := tally.Summary()
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			return nil, fmt.Errorf("evaluate route: all %d segments have zero length: %w", len(segments), domain.ErrInsufficientData)
		}
		return nil, fmt.Errorf("evaluate route: %w", err)
	}
	report.Summary = summary

	return report, nil
}

// sunIsUp uses the provider's altitude when given one and the
// sunrise/sunset window for the day otherwise.
func sunIsUp(
	ctx context.Context,
	altitudes ports.SolarAltitudeProvider,
	point domain.Coordinates,
	at time.Time,
) (bool, error) {
	if altitudes == nil {
		return IsDaylight(point, at), nil
	}

	alt, err := altitudeAt(ctx, altitudes, point, at)
	if err != nil {
		return false, err
	}
	return alt > 0, nil
}
