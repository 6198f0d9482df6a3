package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrLocationInvalid   = errors.New("you are outside every allowed location")
	ErrFaceMismatch      = errors.New("face verification failed")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrRecordExists       = errors.New("an attendance record already exists for this date")
)

// LocationError rejects an attempt made outside every allowed site and
// reports how far away the nearest one was, so the employee can tell a
// GPS glitch from actually being off-site.
type LocationError struct {
	DistanceMeters float64
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("%s (nearest site is %.0f meters away)", ErrLocationInvalid.Error(), e.DistanceMeters)
}

func (e *LocationError) Unwrap() error { return ErrLocationInvalid }

// FaceMatchError rejects an attempt whose photo did not match the
// stored reference, carrying the confidence the verifier returned.
type FaceMatchError struct {
	Confidence float64
}

func (e *FaceMatchError) Error() string {
	return fmt.Sprintf("%s (confidence %.2f)", ErrFaceMismatch.Error(), e.Confidence)
}

func (e *FaceMatchError) Unwrap() error { return ErrFaceMismatch }
