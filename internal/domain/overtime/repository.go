package overtime

import (
	"context"
	"time"
)

// OvertimeRepository defines data access methods for overtime requests.
type OvertimeRepository interface {
	// Create inserts a new overtime request.
	Create(ctx context.Context, ot Overtime) (Overtime, error)

	// GetByID retrieves an overtime request by ID.
	GetByID(ctx context.Context, id string) (Overtime, error)

	// ListByUser retrieves a user's requests ordered by date descending.
	ListByUser(ctx context.Context, userID string) ([]Overtime, error)

	// ListPending retrieves all PENDING requests.
	ListPending(ctx context.Context) ([]Overtime, error)

	// ListByUserInRange retrieves a user's requests within [from, to].
	// Used by payroll and performance analysis.
	ListByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]Overtime, error)

	// UpdateStatus records an approval decision.
	UpdateStatus(ctx context.Context, ot Overtime) error
}
