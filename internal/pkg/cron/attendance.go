package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees writes ABSENT records for every active employee
// who produced no attendance record yesterday. The job ticks hourly but
// acts only in the first hour after midnight UTC; the conflict-skipping
// bulk insert makes a repeated run within that hour harmless.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	now := time.Now().UTC()
	if now.Hour() != 0 {
		return nil
	}

	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -1)

	// Weekends are not working days.
	if yesterday.Weekday() == time.Saturday || yesterday.Weekday() == time.Sunday {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job", "date", yesterday.Format("2006-01-02"))

	users, err := j.userRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	var absences []attendance.Attendance
	for _, u := range users {
		record, err := j.attendanceRepo.GetByUserAndDate(ctx, u.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to check attendance record",
				"user_id", u.ID,
				"date", yesterday.Format("2006-01-02"),
				"error", err)
			continue
		}
		if record != nil {
			// Checked in, on leave, or already marked.
			continue
		}

		absences = append(absences, attendance.Attendance{
			UserID: u.ID,
			Date:   yesterday,
			Status: attendance.StatusAbsent,
		})
	}

	if len(absences) == 0 {
		slog.Info("Cron: No employees to mark absent")
		return nil
	}

	if err := j.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
		return fmt.Errorf("failed to bulk create absences: %w", err)
	}

	slog.Info("Cron: Marked absent employees", "count", len(absences))
	return nil
}
