package division

import (
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertPolicyRequest struct {
	Division               string          `json:"division"`
	WorkStartTime          string          `json:"work_start_time"`
	WorkEndTime            string          `json:"work_end_time"`
	LateThresholdMinutes   int             `json:"late_threshold_minutes"`
	DeductionPerMinute     decimal.Decimal `json:"deduction_per_minute"`
	BaseSalary             decimal.Decimal `json:"base_salary"`
	OvertimeRateMultiplier decimal.Decimal `json:"overtime_rate_multiplier"`
	WorkingDaysPerMonth    int             `json:"working_days_per_month"`
}

func (r *UpsertPolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Division(r.Division).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "division",
			Message: "division must be one of FINANCE, APO, FRONT_DESK, ONSITE",
		})
	}

	start, okStart := validator.IsValidTimeOfDay(r.WorkStartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "work_start_time",
			Message: "work_start_time must be in HH:MM 24-hour format",
		})
	}
	end, okEnd := validator.IsValidTimeOfDay(r.WorkEndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end_time",
			Message: "work_end_time must be in HH:MM 24-hour format",
		})
	}
	if okStart && okEnd && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end_time",
			Message: "work_end_time must be after work_start_time",
		})
	}

	if r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_threshold_minutes",
			Message: "late_threshold_minutes must be non-negative",
		})
	}
	if r.DeductionPerMinute.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction_per_minute",
			Message: "deduction_per_minute must be non-negative",
		})
	}
	if !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be positive",
		})
	}
	if r.OvertimeRateMultiplier.LessThan(decimal.NewFromInt(1)) {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_rate_multiplier",
			Message: "overtime_rate_multiplier must be at least 1",
		})
	}
	if r.WorkingDaysPerMonth < 1 || r.WorkingDaysPerMonth > 31 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days_per_month",
			Message: "working_days_per_month must be between 1 and 31",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyResponse struct {
	ID                     string          `json:"id"`
	Division               string          `json:"division"`
	WorkStartTime          string          `json:"work_start_time"`
	WorkEndTime            string          `json:"work_end_time"`
	LateThresholdMinutes   int             `json:"late_threshold_minutes"`
	DeductionPerMinute     decimal.Decimal `json:"deduction_per_minute"`
	BaseSalary             decimal.Decimal `json:"base_salary"`
	OvertimeRateMultiplier decimal.Decimal `json:"overtime_rate_multiplier"`
	WorkingDaysPerMonth    int             `json:"working_days_per_month"`
}

type ListPolicyResponse struct {
	Data []PolicyResponse `json:"data"`
}
