package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
	StatusSick    Status = "SICK"
)

// Attendance is the per-(user, day) record. The store enforces a unique
// constraint on (user_id, date); a record receives at most one check-in
// and one check-out.
type Attendance struct {
	ID                string
	UserID            string
	Date              time.Time
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLocation   *string
	CheckOutLocation  *string
	CheckInPhotoURL   *string
	CheckOutPhotoURL  *string
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	LateMinutes       int
	OvertimeMinutes   int
	Status            Status
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	UserName     *string
	UserDivision *string
}

// Summary aggregates a user's attendance for a calendar month. Consumed
// by the payroll calculator and the performance scorer.
type Summary struct {
	UserID           string
	PresentDays      int
	LateDays         int
	AbsentDays       int
	LeaveDays        int
	SickDays         int
	TotalLateMinutes int
}
