package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is the computed payroll result for a (user, month, year)
// period. The store holds a unique constraint on the period key;
// recomputation replaces the prior row (upsert, not append).
type Salary struct {
	ID             string
	UserID         string
	Month          int
	Year           int
	BaseSalary     decimal.Decimal
	OvertimeSalary decimal.Decimal
	Deduction      decimal.Decimal
	TotalSalary    decimal.Decimal
	PresentDays    int
	LateMinutes    int
	OvertimeHours  float64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	UserName     *string
	UserDivision *string
}
