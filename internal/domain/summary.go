package domain

import (
	"fmt"
	"time"
)

// SideTally counts per-segment labels. Tallies can be merged in any order.
type SideTally struct {
	Left  int
	Right int
}

func (t *SideTally) Add(s Side) {
	if s == SideRight {
		t.Right++
		return
	}
	t.Left++
}

func (t SideTally) Merge(o SideTally) SideTally {
	return SideTally{Left: t.Left + o.Left, Right: t.Right + o.Right}
}

func (t SideTally) Total() int { return t.Left + t.Right }

// Build the route-level summary. A tally without segments has no percentages.
func (t SideTally) Summary() (RouteSunSummary, error) {
	total := t.Total()
	if total == 0 {
		return RouteSunSummary{}, fmt.Errorf("summarize: %w", ErrInsufficientData)
	}

	left := float64(t.Left) / float64(total) * 100
	right := float64(t.Right) / float64(total) * 100

	// Ties resolve to LEFT.
	preferred := SideLeft
	if right > left {
		preferred = SideRight
	}

	return RouteSunSummary{
		TotalSegments:   total,
		LeftCount:       t.Left,
		RightCount:      t.Right,
		LeftPercentage:  left,
		RightPercentage: right,
		PreferredSide:   preferred,
	}, nil
}

// Aggregate sun exposure for a whole route.
// PreferredSide is the side the sun is on for most segments.
// It is immutable evaluation output.
type RouteSunSummary struct {
	TotalSegments   int
	LeftCount       int
	RightCount      int
	LeftPercentage  float64
	RightPercentage float64
	PreferredSide   Side
}

// ShadedSide is the side with less sun, i.e. where to sit to avoid it.
func (s RouteSunSummary) ShadedSide() Side { return s.PreferredSide.Opposite() }

// Classification of a single segment.
type SegmentResult struct {
	Index          int
	From           RoutePoint
	To             RoutePoint
	Bearing        float64
	Azimuth        float64
	At             time.Time
	Side           Side
	DistanceMeters float64
	SunUp          bool
}

// Full output of a detailed route evaluation.
type RouteReport struct {
	Summary             RouteSunSummary
	Segments            []SegmentResult
	Skipped             int
	TotalDistanceMeters float64
}
