package analysis

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/presensia/attendance-backend-go/internal/domain/analysis"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/overtime"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
)

// Scoring model constants. The classifier is a hand-set naive-Bayes
// heuristic, not a trained model: each feature contributes a full weight
// when it clears its band's threshold and a dampened weight otherwise.
const (
	priorGood = 0.6
	priorPoor = 0.4

	weightHit  = 1.0
	weightMiss = 0.1

	attendanceGoodThreshold  = 0.8
	attendancePoorThreshold  = 0.3
	punctualityGoodThreshold = 0.7
	punctualityPoorThreshold = 0.2
	overtimeGoodThreshold    = 0.6
	overtimePoorThreshold    = 0.4

	rewardThreshold = 70

	// Overtime cost baseline per hour; scaled up for high performers.
	overtimeBaseRate = 50000

	// Working days assumed when a division has no policy. Reporting is
	// advisory, so a fallback beats skipping the employee.
	defaultWorkingDays = 22
)

type AnalysisServiceImpl struct {
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	overtimeRepo   overtime.OvertimeRepository
	policyRepo     division.PolicyRepository
}

// GetPerformanceReport implements analysis.AnalysisService.
func (s *AnalysisServiceImpl) GetPerformanceReport(ctx context.Context, filter analysis.PerformanceFilter) (analysis.PerformanceReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return analysis.PerformanceReportResponse{}, err
	}

	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return analysis.PerformanceReportResponse{}, err
	}

	from := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	workingDaysByDivision := make(map[division.Division]int)

	employees := make([]analysis.EmployeePerformance, 0, len(users))
	for _, u := range users {
		workingDays, ok := workingDaysByDivision[u.Division]
		if !ok {
			workingDays = defaultWorkingDays
			policy, err := s.policyRepo.GetByDivision(ctx, u.Division)
			if err != nil && !errors.Is(err, division.ErrPolicyNotFound) {
				return analysis.PerformanceReportResponse{}, err
			}
			if err == nil && policy.WorkingDaysPerMonth > 0 {
				workingDays = policy.WorkingDaysPerMonth
			}
			workingDaysByDivision[u.Division] = workingDays
		}

		summary, err := s.attendanceRepo.GetMonthlySummary(ctx, u.ID, filter.Month, filter.Year)
		if err != nil {
			return analysis.PerformanceReportResponse{}, err
		}

		overtimes, err := s.overtimeRepo.ListByUserInRange(ctx, u.ID, from, to)
		if err != nil {
			return analysis.PerformanceReportResponse{}, err
		}

		perf := scorePerformance(summary, overtimes, workingDays)
		perf.UserID = u.ID
		perf.UserName = u.Name
		perf.Division = string(u.Division)
		employees = append(employees, perf)
	}

	return analysis.PerformanceReportResponse{
		Month:     filter.Month,
		Year:      filter.Year,
		Summary:   summarizeCohort(employees),
		Employees: employees,
	}, nil
}

// scorePerformance computes the performance score for one employee. Pure
// function over the month's attendance summary and overtime requests.
func scorePerformance(summary attendance.Summary, overtimes []overtime.Overtime, totalWorkingDays int) analysis.EmployeePerformance {
	presentDays := summary.PresentDays + summary.LateDays

	attendanceRate := 0.0
	if totalWorkingDays > 0 {
		attendanceRate = float64(presentDays) / float64(totalWorkingDays)
	}

	punctuality := 0.0
	if presentDays > 0 {
		punctuality = 1 - float64(summary.LateDays)/float64(presentDays)
	}

	approvedCount := 0
	var approvedHours float64
	for _, req := range overtimes {
		if req.Status == overtime.StatusApproved {
			approvedCount++
			approvedHours += req.Hours
		}
	}

	overtimeEfficiency := 0.0
	if len(overtimes) > 0 {
		overtimeEfficiency = float64(approvedCount) / float64(len(overtimes))
	}

	likelihoodGood := priorGood *
		goodWeight(attendanceRate, attendanceGoodThreshold) *
		goodWeight(punctuality, punctualityGoodThreshold) *
		goodWeight(overtimeEfficiency, overtimeGoodThreshold)

	likelihoodPoor := priorPoor *
		poorWeight(attendanceRate, attendancePoorThreshold) *
		poorWeight(punctuality, punctualityPoorThreshold) *
		poorWeight(overtimeEfficiency, overtimePoorThreshold)

	probability := 0.5
	if likelihoodGood+likelihoodPoor > 0 {
		probability = likelihoodGood / (likelihoodGood + likelihoodPoor)
	}

	score := int(math.Round(probability * 100))

	cost := decimal.NewFromFloat(approvedHours).
		Mul(decimal.NewFromInt(overtimeBaseRate)).
		Mul(decimal.NewFromFloat(1 + (float64(score)/100)*0.5)).
		Round(0)

	return analysis.EmployeePerformance{
		AttendanceRate:     attendanceRate,
		PunctualityScore:   punctuality,
		OvertimeEfficiency: overtimeEfficiency,
		PerformanceScore:   score,
		RewardEligible:     score >= rewardThreshold,
		OvertimeHours:      approvedHours,
		OvertimeCost:       cost,
		Recommendation:     recommendationFor(score),
	}
}

func goodWeight(value, threshold float64) float64 {
	if value >= threshold {
		return weightHit
	}
	return weightMiss
}

func poorWeight(value, threshold float64) float64 {
	if value <= threshold {
		return weightHit
	}
	return weightMiss
}

func recommendationFor(score int) string {
	switch {
	case score >= 80:
		return "Kinerja sangat baik. Pertimbangkan untuk penghargaan atau promosi."
	case score >= 60:
		return "Kinerja cukup baik. Pertahankan kedisiplinan kehadiran."
	default:
		return "Kinerja perlu perhatian. Jadwalkan evaluasi dengan atasan langsung."
	}
}

func summarizeCohort(employees []analysis.EmployeePerformance) analysis.CohortSummary {
	summary := analysis.CohortSummary{
		TotalEmployees:    len(employees),
		TotalOvertimeCost: decimal.Zero,
	}

	if len(employees) == 0 {
		return summary
	}

	totalScore := 0
	for _, emp := range employees {
		totalScore += emp.PerformanceScore
		if emp.RewardEligible {
			summary.RewardEligible++
		}
		switch {
		case emp.PerformanceScore >= 80:
			summary.HighPerformers++
		case emp.PerformanceScore >= 60:
			summary.AveragePerformers++
		default:
			summary.LowPerformers++
		}
		summary.TotalOvertimeCost = summary.TotalOvertimeCost.Add(emp.OvertimeCost)
	}

	summary.AverageScore = float64(totalScore) / float64(len(employees))
	return summary
}

func NewAnalysisService(
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	overtimeRepo overtime.OvertimeRepository,
	policyRepo division.PolicyRepository,
) analysis.AnalysisService {
	return &AnalysisServiceImpl{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		overtimeRepo:   overtimeRepo,
		policyRepo:     policyRepo,
	}
}
