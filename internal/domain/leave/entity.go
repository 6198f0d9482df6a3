package leave

import (
	"time"
)

type Type string

const (
	TypeLeave Type = "LEAVE"
	TypeSick  Type = "SICK"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Leave is an employee-submitted request for a date range. Approval
// writes LEAVE or SICK attendance records for the range, which is how
// leave reaches payroll and performance analysis.
type Leave struct {
	ID         string
	UserID     string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	UserName     *string
	UserDivision *string
}
