package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sunside-service/internal/domain"

	"github.com/twpayne/go-polyline"
)

// Supported route file formats.
type Format string

const (
	FormatAuto     Format = ""
	FormatJSON     Format = "json"
	FormatGeoJSON  Format = "geojson"
	FormatPolyline Format = "polyline"
)

// FileRouteSource reads a recorded route from a file.
//
//   - json: [[lat, lon], ...] or [{"lat": .., "lon": ..}, ...]
//   - geojson: a LineString geometry, Feature or FeatureCollection ([lon, lat] order)
//   - polyline: an encoded polyline (Google format, 1e5 precision)
type FileRouteSource struct {
	Path   string
	Format Format
}

func NewFileRouteSource(path string, format Format) *FileRouteSource {
	return &FileRouteSource{Path: path, Format: format}
}

// Return the route points in file order.
func (f *FileRouteSource) LoadRoute(ctx context.Context) ([]domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("load route: read %q: %w", f.Path, err)
	}

	coords, err := Parse(b, f.Format)
	if err != nil {
		return nil, fmt.Errorf("load route %q: %w", f.Path, err)
	}
	return coords, nil
}

// Parse decodes route data. FormatAuto picks JSON for '[', GeoJSON for '{',
// and an encoded polyline otherwise.
func Parse(data []byte, format Format) ([]domain.Coordinates, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("parse route: %w: empty input", domain.ErrInvalidInput)
	}

	if format == FormatAuto {
		switch data[0] {
		case '[':
			format = FormatJSON
		case '{':
			format = FormatGeoJSON
		default:
			format = FormatPolyline
		}
	}

	var (
		coords []domain.Coordinates
		err    error
	)
	switch format {
	case FormatJSON:
		coords, err = parsePoints(data)
	case FormatGeoJSON:
		coords, err = parseGeoJSON(data)
	case FormatPolyline:
		coords, err = parsePolyline(data)
	default:
		return nil, fmt.Errorf("parse route: %w: unknown format %q", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse route: %w", err)
	}

	for i, c := range coords {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("parse route: point #%d: %w", i, err)
		}
	}
	return coords, nil
}

type pointSeed struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

func parsePoints(data []byte) ([]domain.Coordinates, error) {
	var pairs [][]float64
	if err := json.Unmarshal(data, &pairs); err == nil {
		out := make([]domain.Coordinates, 0, len(pairs))
		for i, p := range pairs {
			if len(p) != 2 {
				return nil, fmt.Errorf("%w: point #%d has %d values, want [lat, lon]", domain.ErrInvalidInput, i, len(p))
			}
			out = append(out, domain.Coordinates{Lat: p[0], Lon: p[1]})
		}
		return out, nil
	}

	var seeds []pointSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("%w: parse json points: %v", domain.ErrInvalidInput, err)
	}
	out := make([]domain.Coordinates, 0, len(seeds))
	for i, s := range seeds {
		if s.Lat == nil || s.Lon == nil {
			return nil, fmt.Errorf("%w: point #%d needs lat and lon", domain.ErrInvalidInput, i)
		}
		out = append(out, domain.Coordinates{Lat: *s.Lat, Lon: *s.Lon})
	}
	return out, nil
}

type geoJSONObject struct {
	Type      string           `json:"type"`
	RawCoords json.RawMessage  `json:"coordinates"`
	Geometry  *geoJSONObject   `json:"geometry"`
	Features  []*geoJSONObject `json:"features"`
}

// parseGeoJSON returns the first LineString found.
func parseGeoJSON(data []byte) ([]domain.Coordinates, error) {
	var obj geoJSONObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: parse geojson: %v", domain.ErrInvalidInput, err)
	}

	line, err := findLineString(&obj)
	if err != nil {
		return nil, err
	}

	var positions [][]float64
	if err := json.Unmarshal(line.RawCoords, &positions); err != nil {
		return nil, fmt.Errorf("%w: parse geojson coordinates: %v", domain.ErrInvalidInput, err)
	}

	out := make([]domain.Coordinates, 0, len(positions))
	for i, p := range positions {
		// Positions may carry an elevation.
		if len(p) < 2 {
			return nil, fmt.Errorf("%w: position #%d has %d values", domain.ErrInvalidInput, i, len(p))
		}
		out = append(out, domain.Coordinates{Lon: p[0], Lat: p[1]})
	}
	return out, nil
}

func findLineString(obj *geoJSONObject) (*geoJSONObject, error) {
	switch obj.Type {
	case "LineString":
		return obj, nil
	case "Feature":
		if obj.Geometry != nil {
			return findLineString(obj.Geometry)
		}
	case "FeatureCollection":
		for _, f := range obj.Features {
			if f == nil {
				continue
			}
			if line, err := findLineString(f); err == nil {
				return line, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no LineString in geojson %q", domain.ErrInvalidInput, obj.Type)
}

func parsePolyline(data []byte) ([]domain.Coordinates, error) {
	encoded := strings.TrimSpace(string(data))
	pairs, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: decode polyline: %v", domain.ErrInvalidInput, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: decode polyline: %d trailing bytes", domain.ErrInvalidInput, len(rest))
	}

	out := make([]domain.Coordinates, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.Coordinates{Lat: p[0], Lon: p[1]})
	}
	return out, nil
}

// EncodePolyline is the inverse of the polyline format, for writing routes back out.
func EncodePolyline(coords []domain.Coordinates) string {
	pairs := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pairs = append(pairs, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pairs))
}
