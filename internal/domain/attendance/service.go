package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// CheckIn processes a check-in with geofence and face verification.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut processes a check-out for today's open record.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetToday retrieves the authenticated user's record for today.
	// Returns ErrAttendanceNotFound when no record exists yet.
	GetToday(ctx context.Context, userID string) (AttendanceResponse, error)

	// GetHistory retrieves the authenticated user's records in a range.
	GetHistory(ctx context.Context, filter HistoryFilter) (ListAttendanceResponse, error)

	// GetSummary aggregates a user's records for a calendar month.
	GetSummary(ctx context.Context, userID string, month, year int) (SummaryResponse, error)

	// GetDivisionHistory retrieves records for a division (admin).
	GetDivisionHistory(ctx context.Context, div string, from, to string) (ListAttendanceResponse, error)

	// CreateManualEntry creates a record administratively (admin).
	CreateManualEntry(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error)

	// DeleteAttendance hard-deletes a record (admin).
	DeleteAttendance(ctx context.Context, id string) error
}
