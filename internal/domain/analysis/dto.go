package analysis

import (
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PerformanceFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *PerformanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidYear(f.Year) {
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

// EmployeePerformance is the per-employee scoring result.
type EmployeePerformance struct {
	UserID             string          `json:"user_id"`
	UserName           string          `json:"user_name"`
	Division           string          `json:"division"`
	AttendanceRate     float64         `json:"attendance_rate"`
	PunctualityScore   float64         `json:"punctuality_score"`
	OvertimeEfficiency float64         `json:"overtime_efficiency"`
	PerformanceScore   int             `json:"performance_score"`
	RewardEligible     bool            `json:"reward_eligible"`
	OvertimeHours      float64         `json:"overtime_hours"`
	OvertimeCost       decimal.Decimal `json:"overtime_cost"`
	Recommendation     string          `json:"recommendation"`
}

// CohortSummary aggregates the whole cohort for reporting.
type CohortSummary struct {
	TotalEmployees    int             `json:"total_employees"`
	AverageScore      float64         `json:"average_score"`
	RewardEligible    int             `json:"reward_eligible"`
	HighPerformers    int             `json:"high_performers"`    // score >= 80
	AveragePerformers int             `json:"average_performers"` // 60 <= score < 80
	LowPerformers     int             `json:"low_performers"`     // score < 60
	TotalOvertimeCost decimal.Decimal `json:"total_overtime_cost"`
}

type PerformanceReportResponse struct {
	Month     int                   `json:"month"`
	Year      int                   `json:"year"`
	Summary   CohortSummary         `json:"summary"`
	Employees []EmployeePerformance `json:"employees"`
}
