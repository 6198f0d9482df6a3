package overtime

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Overtime is an employee-submitted claim for overtime hours on a date.
// Only APPROVED requests contribute to payroll.
type Overtime struct {
	ID         string
	UserID     string
	Date       time.Time
	Hours      float64
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
