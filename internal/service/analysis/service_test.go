package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/attendance-backend-go/internal/domain/analysis"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/overtime"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
)

// ==================== SCORER ====================

func approvedOvertimes(hoursEach float64, approved, rejected int) []overtime.Overtime {
	var out []overtime.Overtime
	for i := 0; i < approved; i++ {
		out = append(out, overtime.Overtime{Hours: hoursEach, Status: overtime.StatusApproved})
	}
	for i := 0; i < rejected; i++ {
		out = append(out, overtime.Overtime{Hours: hoursEach, Status: overtime.StatusRejected})
	}
	return out
}

func TestScorePerformance_AllGoodBoundary(t *testing.T) {
	// Every feature sits exactly at its "good" threshold: attendance
	// 20/25 = 0.8, punctuality 1 - 6/20 = 0.7, efficiency 3/5 = 0.6.
	summary := attendance.Summary{PresentDays: 14, LateDays: 6}
	overtimes := approvedOvertimes(2, 3, 2)

	perf := scorePerformance(summary, overtimes, 25)

	assert.InDelta(t, 0.8, perf.AttendanceRate, 1e-9)
	assert.InDelta(t, 0.7, perf.PunctualityScore, 1e-9)
	assert.InDelta(t, 0.6, perf.OvertimeEfficiency, 1e-9)
	assert.Equal(t, 100, perf.PerformanceScore)
	assert.True(t, perf.RewardEligible)
}

func TestScorePerformance_AllPoor(t *testing.T) {
	// attendance 5/22 = 0.23, punctuality 1 - 4/5 = 0.2, efficiency 1/4.
	summary := attendance.Summary{PresentDays: 1, LateDays: 4}
	overtimes := approvedOvertimes(2, 1, 3)

	perf := scorePerformance(summary, overtimes, 22)

	assert.Equal(t, 0, perf.PerformanceScore)
	assert.False(t, perf.RewardEligible)
}

func TestScorePerformance_NoActivity(t *testing.T) {
	perf := scorePerformance(attendance.Summary{}, nil, 22)

	assert.Zero(t, perf.AttendanceRate)
	assert.Zero(t, perf.PunctualityScore)
	assert.Zero(t, perf.OvertimeEfficiency)
	// Zero features hit every "poor" threshold.
	assert.Less(t, perf.PerformanceScore, 60)
	assert.False(t, perf.RewardEligible)
	assert.True(t, perf.OvertimeCost.IsZero())
}

func TestScorePerformance_OvertimeCostScalesWithScore(t *testing.T) {
	// Top performer: 10 approved hours at 50,000/hour x 1.5 multiplier.
	summary := attendance.Summary{PresentDays: 20, LateDays: 0}
	overtimes := approvedOvertimes(5, 2, 0)

	perf := scorePerformance(summary, overtimes, 22)

	require.Equal(t, 100, perf.PerformanceScore)
	assert.InDelta(t, 10.0, perf.OvertimeHours, 1e-9)
	assert.True(t, perf.OvertimeCost.Equal(decimal.NewFromInt(750000)),
		"cost: %s", perf.OvertimeCost)
}

func TestScorePerformance_RewardThreshold(t *testing.T) {
	// Mixed features land between the bands: attendance good, the rest
	// neither good nor poor.
	// lg = 0.6 x 1.0 x 0.1 x 0.1 = 0.006
	// lp = 0.4 x 0.1 x 0.1 x 0.1 = 0.0004
	// score = round(0.9375 x 100) = 94
	mixed := attendance.Summary{PresentDays: 11, LateDays: 9} // rate 20/22, punctuality 0.55
	overtimes := approvedOvertimes(2, 1, 1)                   // efficiency 0.5

	perf := scorePerformance(mixed, overtimes, 22)

	assert.Equal(t, 94, perf.PerformanceScore)
	assert.True(t, perf.RewardEligible)
}

// ==================== REPORT ====================

type fakeUserRepo struct {
	users []user.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (r *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	return r.users, nil
}
func (r *fakeUserRepo) ListActiveByDivision(ctx context.Context, div division.Division) ([]user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }
func (r *fakeUserRepo) Update(ctx context.Context, u user.User) error              { return nil }
func (r *fakeUserRepo) SetFaceReference(ctx context.Context, id string, path string) error {
	return nil
}

type fakeAttendanceRepo struct {
	summaries map[string]attendance.Summary
}

func (r *fakeAttendanceRepo) GetMonthlySummary(ctx context.Context, userID string, month, year int) (attendance.Summary, error) {
	return r.summaries[userID], nil
}
func (r *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}
func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}
func (r *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	return nil, nil
}
func (r *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error { return nil }
func (r *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}
func (r *fakeAttendanceRepo) ListByDivision(ctx context.Context, div division.Division, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}
func (r *fakeAttendanceRepo) BulkCreateAbsences(ctx context.Context, records []attendance.Attendance) error {
	return nil
}
func (r *fakeAttendanceRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeOvertimeRepo struct {
	byUser map[string][]overtime.Overtime
}

func (r *fakeOvertimeRepo) ListByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]overtime.Overtime, error) {
	return r.byUser[userID], nil
}
func (r *fakeOvertimeRepo) Create(ctx context.Context, ot overtime.Overtime) (overtime.Overtime, error) {
	return ot, nil
}
func (r *fakeOvertimeRepo) GetByID(ctx context.Context, id string) (overtime.Overtime, error) {
	return overtime.Overtime{}, overtime.ErrOvertimeNotFound
}
func (r *fakeOvertimeRepo) ListByUser(ctx context.Context, userID string) ([]overtime.Overtime, error) {
	return nil, nil
}
func (r *fakeOvertimeRepo) ListPending(ctx context.Context) ([]overtime.Overtime, error) {
	return nil, nil
}
func (r *fakeOvertimeRepo) UpdateStatus(ctx context.Context, ot overtime.Overtime) error { return nil }

type fakePolicyRepo struct {
	policies map[division.Division]division.Policy
}

func (r *fakePolicyRepo) GetByDivision(ctx context.Context, div division.Division) (division.Policy, error) {
	if p, ok := r.policies[div]; ok {
		return p, nil
	}
	return division.Policy{}, division.ErrPolicyNotFound
}
func (r *fakePolicyRepo) List(ctx context.Context) ([]division.Policy, error) { return nil, nil }
func (r *fakePolicyRepo) Upsert(ctx context.Context, policy division.Policy) (division.Policy, error) {
	return policy, nil
}

func TestGetPerformanceReport_CohortSummary(t *testing.T) {
	userRepo := &fakeUserRepo{users: []user.User{
		{ID: "u1", Name: "Budi Santoso", Division: division.DivisionFinance, IsActive: true},
		{ID: "u2", Name: "Siti Rahma", Division: division.DivisionFinance, IsActive: true},
	}}
	attendanceRepo := &fakeAttendanceRepo{summaries: map[string]attendance.Summary{
		"u1": {PresentDays: 20, LateDays: 0}, // high performer
		"u2": {PresentDays: 1, LateDays: 4},  // low performer
	}}
	overtimeRepo := &fakeOvertimeRepo{byUser: map[string][]overtime.Overtime{
		"u1": approvedOvertimes(5, 2, 0),
	}}
	policyRepo := &fakePolicyRepo{policies: map[division.Division]division.Policy{
		division.DivisionFinance: {Division: division.DivisionFinance, WorkingDaysPerMonth: 22},
	}}

	svc := NewAnalysisService(userRepo, attendanceRepo, overtimeRepo, policyRepo)

	report, err := svc.GetPerformanceReport(context.Background(), analysis.PerformanceFilter{Month: 2, Year: 2026})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.TotalEmployees)
	assert.Equal(t, 1, report.Summary.HighPerformers)
	assert.Equal(t, 1, report.Summary.LowPerformers)
	assert.Equal(t, 1, report.Summary.RewardEligible)
	require.Len(t, report.Employees, 2)
	assert.Equal(t, "Budi Santoso", report.Employees[0].UserName)
	assert.True(t, report.Summary.TotalOvertimeCost.Equal(decimal.NewFromInt(750000)),
		"total cost: %s", report.Summary.TotalOvertimeCost)
}

func TestGetPerformanceReport_InvalidFilter(t *testing.T) {
	svc := NewAnalysisService(&fakeUserRepo{}, &fakeAttendanceRepo{}, &fakeOvertimeRepo{}, &fakePolicyRepo{})

	_, err := svc.GetPerformanceReport(context.Background(), analysis.PerformanceFilter{Month: 0, Year: 2026})
	require.Error(t, err)
}
