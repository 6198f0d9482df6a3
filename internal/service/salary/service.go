package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/overtime"
	"github.com/presensia/attendance-backend-go/internal/domain/salary"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// workHoursPerDay converts a monthly base salary into an hourly rate.
const workHoursPerDay = 8

type SalaryServiceImpl struct {
	salaryRepo     salary.SalaryRepository
	attendanceRepo attendance.AttendanceRepository
	overtimeRepo   overtime.OvertimeRepository
	policyRepo     division.PolicyRepository
	userRepo       user.UserRepository
	notifier       notification.Service
}

// Calculate implements salary.SalaryService.
//
// All money math runs on decimals; floats only enter as overtime hours.
// The result is rounded to 2 decimal places and floored at zero, then
// upserted on (user_id, month, year) so recomputation replaces the
// previous record.
func (s *SalaryServiceImpl) Calculate(ctx context.Context, userID string, month, year int) (salary.SalaryResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 2100"})
	}
	if len(errs) > 0 {
		return salary.SalaryResponse{}, errs
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	// Payroll has no fallback policy: paying someone requires knowing
	// their salary terms.
	policy, err := s.policyRepo.GetByDivision(ctx, u.Division)
	if err != nil {
		if errors.Is(err, division.ErrPolicyNotFound) {
			return salary.SalaryResponse{}, salary.ErrPolicyMissing
		}
		return salary.SalaryResponse{}, err
	}
	if policy.WorkingDaysPerMonth <= 0 {
		return salary.SalaryResponse{}, salary.ErrPolicyMissing
	}

	summary, err := s.attendanceRepo.GetMonthlySummary(ctx, userID, month, year)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	approvedHours, err := s.approvedOvertimeHours(ctx, userID, month, year)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	deduction := decimal.NewFromInt(int64(summary.TotalLateMinutes)).
		Mul(policy.DeductionPerMinute)

	hourlyRate := policy.BaseSalary.
		Div(decimal.NewFromInt(int64(policy.WorkingDaysPerMonth * workHoursPerDay)))

	overtimeSalary := decimal.NewFromFloat(approvedHours).
		Mul(hourlyRate).
		Mul(policy.OvertimeRateMultiplier)

	total := policy.BaseSalary.Add(overtimeSalary).Sub(deduction)
	if total.IsNegative() {
		total = decimal.Zero
	}

	record := salary.Salary{
		UserID:         userID,
		Month:          month,
		Year:           year,
		BaseSalary:     policy.BaseSalary.Round(2),
		OvertimeSalary: overtimeSalary.Round(2),
		Deduction:      deduction.Round(2),
		TotalSalary:    total.Round(2),
		PresentDays:    summary.PresentDays + summary.LateDays,
		LateMinutes:    summary.TotalLateMinutes,
		OvertimeHours:  approvedHours,
	}

	saved, err := s.salaryRepo.Upsert(ctx, record)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	s.notifier.Dispatch(ctx, notification.Notify{
		UserID:  userID,
		Type:    notification.TypeSalaryReleased,
		Title:   "Gaji telah dihitung",
		Message: fmt.Sprintf("Gaji Anda untuk periode %02d/%d telah dihitung.", month, year),
		Data: map[string]interface{}{
			"salary_id": saved.ID,
			"month":     month,
			"year":      year,
		},
	})

	return mapSalaryToResponse(saved), nil
}

// CalculateBatch implements salary.SalaryService. Employees are
// processed sequentially; one failure is captured in its item and never
// aborts the batch.
func (s *SalaryServiceImpl) CalculateBatch(ctx context.Context, req salary.CalculateRequest) (salary.BatchCalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.BatchCalculateResponse{}, err
	}

	userIDs := req.UserIDs
	if len(userIDs) == 0 {
		users, err := s.userRepo.ListActive(ctx)
		if err != nil {
			return salary.BatchCalculateResponse{}, err
		}
		for _, u := range users {
			userIDs = append(userIDs, u.ID)
		}
	}

	resp := salary.BatchCalculateResponse{
		Month:   req.Month,
		Year:    req.Year,
		Results: make([]salary.BatchItemResult, 0, len(userIDs)),
	}

	for _, userID := range userIDs {
		item := salary.BatchItemResult{UserID: userID}

		result, err := s.Calculate(ctx, userID, req.Month, req.Year)
		if err != nil {
			message := err.Error()
			item.Error = &message
			resp.Failed++
		} else {
			item.Salary = &result
			resp.Succeeded++
		}

		resp.Results = append(resp.Results, item)
	}

	return resp, nil
}

// GetMySalary implements salary.SalaryService.
func (s *SalaryServiceImpl) GetMySalary(ctx context.Context, userID string) (salary.ListSalaryResponse, error) {
	records, err := s.salaryRepo.ListByUser(ctx, userID)
	if err != nil {
		return salary.ListSalaryResponse{}, err
	}

	responses := make([]salary.SalaryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapSalaryToResponse(record))
	}

	return salary.ListSalaryResponse{Data: responses}, nil
}

// GetSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) GetSalary(ctx context.Context, id string) (salary.SalaryResponse, error) {
	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	return mapSalaryToResponse(record), nil
}

// approvedOvertimeHours sums the APPROVED overtime hours of a calendar
// month.
func (s *SalaryServiceImpl) approvedOvertimeHours(ctx context.Context, userID string, month, year int) (float64, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	requests, err := s.overtimeRepo.ListByUserInRange(ctx, userID, from, to)
	if err != nil {
		return 0, err
	}

	var hours float64
	for _, req := range requests {
		if req.Status == overtime.StatusApproved {
			hours += req.Hours
		}
	}

	return hours, nil
}

func mapSalaryToResponse(record salary.Salary) salary.SalaryResponse {
	return salary.SalaryResponse{
		ID:             record.ID,
		UserID:         record.UserID,
		UserName:       record.UserName,
		UserDivision:   record.UserDivision,
		Month:          record.Month,
		Year:           record.Year,
		BaseSalary:     record.BaseSalary,
		OvertimeSalary: record.OvertimeSalary,
		Deduction:      record.Deduction,
		TotalSalary:    record.TotalSalary,
		PresentDays:    record.PresentDays,
		LateMinutes:    record.LateMinutes,
		OvertimeHours:  record.OvertimeHours,
	}
}

func NewSalaryService(
	salaryRepo salary.SalaryRepository,
	attendanceRepo attendance.AttendanceRepository,
	overtimeRepo overtime.OvertimeRepository,
	policyRepo division.PolicyRepository,
	userRepo user.UserRepository,
	notifier notification.Service,
) salary.SalaryService {
	return &SalaryServiceImpl{
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
		overtimeRepo:   overtimeRepo,
		policyRepo:     policyRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}
