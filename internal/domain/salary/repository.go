package salary

import (
	"context"
)

// SalaryRepository defines data access methods for salary records.
type SalaryRepository interface {
	// Upsert inserts or replaces the record keyed by (user_id, month,
	// year). Recomputation is idempotent.
	Upsert(ctx context.Context, sal Salary) (Salary, error)

	// GetByID retrieves a salary record by ID.
	GetByID(ctx context.Context, id string) (Salary, error)

	// GetByUserPeriod retrieves the record for a user and period.
	GetByUserPeriod(ctx context.Context, userID string, month, year int) (Salary, error)

	// ListByUser retrieves a user's records ordered by period descending.
	ListByUser(ctx context.Context, userID string) ([]Salary, error)

	// ListByPeriod retrieves all records for a period.
	ListByPeriod(ctx context.Context, month, year int) ([]Salary, error)
}
