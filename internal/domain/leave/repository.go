package leave

import (
	"context"
)

// LeaveRepository defines data access methods for leave requests.
type LeaveRepository interface {
	// Create inserts a new leave request.
	Create(ctx context.Context, lv Leave) (Leave, error)

	// GetByID retrieves a leave request by ID.
	GetByID(ctx context.Context, id string) (Leave, error)

	// ListByUser retrieves a user's requests ordered by start date descending.
	ListByUser(ctx context.Context, userID string) ([]Leave, error)

	// ListPending retrieves all PENDING requests.
	ListPending(ctx context.Context) ([]Leave, error)

	// UpdateStatus records an approval decision.
	UpdateStatus(ctx context.Context, lv Leave) error
}
