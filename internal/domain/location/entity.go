package location

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
)

// Location is a named geofenced site. Attendance check-ins and
// check-outs must fall within the radius of an active location owned by
// the employee's division.
type Location struct {
	ID           string
	Name         string
	Address      *string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Division     division.Division
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
