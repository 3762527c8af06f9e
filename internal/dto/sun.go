package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"sunside-service/internal/domain"
	"time"
)

type TrajectoryPointResponse struct {
	At       time.Time `json:"at"`
	Azimuth  float64   `json:"azimuth"`
	Altitude float64   `json:"altitude"`
	Lat      float64   `json:"lat"`
	Lon      float64   `json:"lon"`
}

type TrajectoryResponse struct {
	Lat    float64                   `json:"lat"`
	Lon    float64                   `json:"lon"`
	Points []TrajectoryPointResponse `json:"points"`
}

type DaylightResponse struct {
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Date      string     `json:"date"`
	Sunrise   *time.Time `json:"sunrise"`
	Sunset    *time.Time `json:"sunset"`
	SolarNoon *time.Time `json:"solar_noon"`
	Polar     bool       `json:"polar"`
}

func NewTrajectoryResponse(location domain.Coordinates, points []domain.TrajectoryPoint) TrajectoryResponse {
	res := TrajectoryResponse{
		Lat:    location.Lat,
		Lon:    location.Lon,
		Points: make([]TrajectoryPointResponse, 0, len(points)),
	}
	for _, p := range points {
		res.Points = append(res.Points, TrajectoryPointResponse{
			At:       p.At,
			Azimuth:  p.Azimuth,
			Altitude: p.Altitude,
			Lat:      p.Point.Lat,
			Lon:      p.Point.Lon,
		})
	}
	return res
}

// TimePtr maps the zero time to nil so it encodes as null.
func TimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// WriteJSON encodes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
