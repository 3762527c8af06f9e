package dto

import (
	"sunside-service/internal/domain"
	"time"
)

type SummaryResponse struct {
	TotalSegments   int         `json:"total_segments"`
	LeftCount       int         `json:"left_count"`
	RightCount      int         `json:"right_count"`
	LeftPercentage  float64     `json:"left_percentage"`
	RightPercentage float64     `json:"right_percentage"`
	PreferredSide   domain.Side `json:"preferred_side"`
	ShadedSide      domain.Side `json:"shaded_side"`
}

type SegmentResponse struct {
	Index          int         `json:"index"`
	FromLat        float64     `json:"from_lat"`
	FromLon        float64     `json:"from_lon"`
	ToLat          float64     `json:"to_lat"`
	ToLon          float64     `json:"to_lon"`
	Bearing        float64     `json:"bearing"`
	Azimuth        float64     `json:"azimuth"`
	At             time.Time   `json:"at"`
	Side           domain.Side `json:"side"`
	DistanceMeters float64     `json:"distance_meters"`
	SunUp          bool        `json:"sun_up"`
}

type EvaluateResponse struct {
	Summary             SummaryResponse   `json:"summary"`
	Skipped             int               `json:"skipped_segments"`
	TotalDistanceMeters float64           `json:"total_distance_meters"`
	Segments            []SegmentResponse `json:"segments,omitempty"`
}

func NewSummaryResponse(s domain.RouteSunSummary) SummaryResponse {
	return SummaryResponse{
		TotalSegments:   s.TotalSegments,
		LeftCount:       s.LeftCount,
		RightCount:      s.RightCount,
		LeftPercentage:  s.LeftPercentage,
		RightPercentage: s.RightPercentage,
		PreferredSide:   s.PreferredSide,
		ShadedSide:      s.ShadedSide(),
	}
}

// NewEvaluateResponse maps a report; segments are only included when asked for.
func NewEvaluateResponse(r *domain.RouteReport, withSegments bool) EvaluateResponse {
	res := EvaluateResponse{
		Summary:             NewSummaryResponse(r.Summary),
		Skipped:             r.Skipped,
		TotalDistanceMeters: r.TotalDistanceMeters,
	}
	if !withSegments {
		return res
	}

	res.Segments = make([]SegmentResponse, 0, len(r.Segments))
	for _, s := range r.Segments {
		res.Segments = append(res.Segments, SegmentResponse{
			Index:          s.Index,
			FromLat:        s.From.Lat,
			FromLon:        s.From.Lon,
			ToLat:          s.To.Lat,
			ToLon:          s.To.Lon,
			Bearing:        s.Bearing,
			Azimuth:        s.Azimuth,
			At:             s.At,
			Side:           s.Side,
			DistanceMeters: s.DistanceMeters,
			SunUp:          s.SunUp,
		})
	}
	return res
}
