package overtime

import (
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

const maxHoursPerDay = 12

type SubmitOvertimeRequest struct {
	UserID string  `json:"-"`
	Date   string  `json:"date"` // "YYYY-MM-DD"
	Hours  float64 `json:"hours"`
	Reason string  `json:"reason"`
}

func (r *SubmitOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if r.Hours <= 0 || r.Hours > maxHoursPerDay {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than 0 and at most 12",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideOvertimeRequest struct {
	ID         string  `json:"-"`
	ApproverID string  `json:"-"`
	Status     string  `json:"status"` // APPROVED or REJECTED
	Notes      *string `json:"notes,omitempty"`
}

func (r *DecideOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(StatusApproved) && r.Status != string(StatusRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be APPROVED or REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	UserDivision *string `json:"user_division,omitempty"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type ListOvertimeResponse struct {
	Data []OvertimeResponse `json:"data"`
}
