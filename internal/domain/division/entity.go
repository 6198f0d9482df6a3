package division

import (
	"time"

	"github.com/shopspring/decimal"
)

type Division string

const (
	DivisionFinance   Division = "FINANCE"
	DivisionAPO       Division = "APO"
	DivisionFrontDesk Division = "FRONT_DESK"
	DivisionOnsite    Division = "ONSITE"
)

// AllDivisions returns every known division.
func AllDivisions() []Division {
	return []Division{
		DivisionFinance,
		DivisionAPO,
		DivisionFrontDesk,
		DivisionOnsite,
	}
}

// IsValid reports whether the division is one of the known values.
func (d Division) IsValid() bool {
	switch d {
	case DivisionFinance, DivisionAPO, DivisionFrontDesk, DivisionOnsite:
		return true
	}
	return false
}

// Policy is the per-division work-hour and compensation policy. Exactly
// one active policy exists per division; the attendance processor and
// the payroll calculator read it but never mutate it.
type Policy struct {
	ID                     string
	Division               Division
	WorkStartTime          string // "HH:MM" 24-hour
	WorkEndTime            string // "HH:MM" 24-hour
	LateThresholdMinutes   int
	DeductionPerMinute     decimal.Decimal
	BaseSalary             decimal.Decimal
	OvertimeRateMultiplier decimal.Decimal
	WorkingDaysPerMonth    int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
