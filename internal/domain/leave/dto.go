package leave

import (
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	UserID    string `json:"-"`
	Type      string `json:"type"` // LEAVE or SICK
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != string(TypeLeave) && r.Type != string(TypeSick) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be LEAVE or SICK",
		})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
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

type DecideLeaveRequest struct {
	ID         string  `json:"-"`
	ApproverID string  `json:"-"`
	Status     string  `json:"status"` // APPROVED or REJECTED
	Notes      *string `json:"notes,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
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

type LeaveResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	UserDivision *string `json:"user_division,omitempty"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type ListLeaveResponse struct {
	Data []LeaveResponse `json:"data"`
}
