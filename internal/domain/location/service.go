package location

import "context"

// LocationService defines business logic for geofenced site management.
type LocationService interface {
	CreateLocation(ctx context.Context, req CreateLocationRequest) (LocationResponse, error)
	GetLocation(ctx context.Context, id string) (LocationResponse, error)
	ListLocations(ctx context.Context) (ListLocationResponse, error)
	UpdateLocation(ctx context.Context, req UpdateLocationRequest) (LocationResponse, error)
	DeleteLocation(ctx context.Context, id string) error
}
