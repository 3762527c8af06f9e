package ports

import (
	"context"
	"sunside-service/internal/domain"
)

// Port: a boundary for reading an already planned route.
type RouteSource interface {
	// Return the route points in travel order.
	LoadRoute(ctx context.Context) ([]domain.Coordinates, error)
}
