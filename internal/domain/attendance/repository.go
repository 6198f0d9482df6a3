package attendance

import (
	"context"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new attendance record. The store holds a unique
	// constraint on (user_id, date); a duplicate insert returns
	// ErrAlreadyCheckedIn so concurrent check-ins cannot both succeed.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves an attendance record by ID.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate retrieves the record for a user on a calendar day.
	// Returns nil when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record.
	Update(ctx context.Context, att Attendance) error

	// ListByUser retrieves a user's records within [from, to] ordered by
	// date descending.
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)

	// ListByDivision retrieves all records for users of a division within
	// [from, to].
	ListByDivision(ctx context.Context, div division.Division, from, to time.Time) ([]Attendance, error)

	// GetMonthlySummary aggregates a user's records for a calendar month.
	GetMonthlySummary(ctx context.Context, userID string, month, year int) (Summary, error)

	// BulkCreateAbsences inserts ABSENT records, skipping conflicts on
	// (user_id, date).
	BulkCreateAbsences(ctx context.Context, records []Attendance) error

	// Delete removes an attendance record.
	Delete(ctx context.Context, id string) error
}
