package salary

import (
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	Month   int      `json:"month"`
	Year    int      `json:"year"`
	UserIDs []string `json:"user_ids,omitempty"` // Empty = all active employees
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	UserName       *string         `json:"user_name,omitempty"`
	UserDivision   *string         `json:"user_division,omitempty"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	OvertimeSalary decimal.Decimal `json:"overtime_salary"`
	Deduction      decimal.Decimal `json:"deduction"`
	TotalSalary    decimal.Decimal `json:"total_salary"`
	PresentDays    int             `json:"present_days"`
	LateMinutes    int             `json:"late_minutes"`
	OvertimeHours  float64         `json:"overtime_hours"`
}

type ListSalaryResponse struct {
	Data []SalaryResponse `json:"data"`
}

// BatchItemResult is the per-employee outcome of a batch calculation.
// One employee's failure never aborts the batch.
type BatchItemResult struct {
	UserID string          `json:"user_id"`
	Salary *SalaryResponse `json:"salary,omitempty"`
	Error  *string         `json:"error,omitempty"`
}

type BatchCalculateResponse struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
}
