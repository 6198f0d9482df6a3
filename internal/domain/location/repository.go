package location

import (
	"context"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
)

// LocationRepository defines data access methods for geofenced sites.
type LocationRepository interface {
	// Create inserts a new location. Returns ErrNameTaken on duplicate name.
	Create(ctx context.Context, loc Location) (Location, error)

	// GetByID retrieves a location by ID.
	GetByID(ctx context.Context, id string) (Location, error)

	// List retrieves all locations.
	List(ctx context.Context) ([]Location, error)

	// ListActiveByDivision retrieves active locations for a division in
	// creation order. The attendance processor accepts the first whose
	// radius contains the reported point.
	ListActiveByDivision(ctx context.Context, div division.Division) ([]Location, error)

	// Update updates a location.
	Update(ctx context.Context, loc Location) error

	// Delete removes a location.
	Delete(ctx context.Context, id string) error
}
