package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, user_id, date, check_in_time, check_out_time,
	   check_in_location, check_out_location, check_in_photo_url, check_out_photo_url,
	   check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
	   late_minutes, overtime_minutes, status, notes, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&att.CheckInLocation, &att.CheckOutLocation, &att.CheckInPhotoURL, &att.CheckOutPhotoURL,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.LateMinutes, &att.OvertimeMinutes, &att.Status, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository. The attendances
// table has a unique constraint on (user_id, date); a duplicate insert
// is reported as ErrAlreadyCheckedIn so the rejection is atomic even
// under concurrent requests.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			user_id, date, check_in_time, check_out_time,
			check_in_location, check_out_location,
			check_in_photo_url, check_out_photo_url,
			check_in_latitude, check_in_longitude,
			check_out_latitude, check_out_longitude,
			late_minutes, overtime_minutes, status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.UserID, att.Date, att.CheckInTime, att.CheckOutTime,
		att.CheckInLocation, att.CheckOutLocation,
		att.CheckInPhotoURL, att.CheckOutPhotoURL,
		att.CheckInLatitude, att.CheckInLongitude,
		att.CheckOutLatitude, att.CheckOutLongitude,
		att.LateMinutes, att.OvertimeMinutes, att.Status, att.Notes,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances
		WHERE user_id = $1 AND date = $2
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in_time = $2, check_out_time = $3,
			check_in_location = $4, check_out_location = $5,
			check_in_photo_url = $6, check_out_photo_url = $7,
			check_in_latitude = $8, check_in_longitude = $9,
			check_out_latitude = $10, check_out_longitude = $11,
			late_minutes = $12, overtime_minutes = $13,
			status = $14, notes = $15, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.CheckInTime, att.CheckOutTime,
		att.CheckInLocation, att.CheckOutLocation,
		att.CheckInPhotoURL, att.CheckOutPhotoURL,
		att.CheckInLatitude, att.CheckInLongitude,
		att.CheckOutLatitude, att.CheckOutLongitude,
		att.LateMinutes, att.OvertimeMinutes,
		att.Status, att.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by user: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// ListByDivision implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDivision(ctx context.Context, div division.Division, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.check_in_time, a.check_out_time,
			   a.check_in_location, a.check_out_location, a.check_in_photo_url, a.check_out_photo_url,
			   a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
			   a.late_minutes, a.overtime_minutes, a.status, a.notes, a.created_at, a.updated_at,
			   u.name AS user_name,
			   u.division AS user_division
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE u.division = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date DESC, u.name
	`

	rows, err := q.Query(ctx, query, div, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by division: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
			&att.CheckInLocation, &att.CheckOutLocation, &att.CheckInPhotoURL, &att.CheckOutPhotoURL,
			&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
			&att.LateMinutes, &att.OvertimeMinutes, &att.Status, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
			&att.UserName, &att.UserDivision,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// GetMonthlySummary implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetMonthlySummary(ctx context.Context, userID string, month, year int) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PRESENT') AS present_days,
			COUNT(*) FILTER (WHERE status = 'LATE') AS late_days,
			COUNT(*) FILTER (WHERE status = 'ABSENT') AS absent_days,
			COUNT(*) FILTER (WHERE status = 'LEAVE') AS leave_days,
			COUNT(*) FILTER (WHERE status = 'SICK') AS sick_days,
			COALESCE(SUM(late_minutes), 0) AS total_late_minutes
		FROM attendances
		WHERE user_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
	`

	summary := attendance.Summary{UserID: userID}
	err := q.QueryRow(ctx, query, userID, month, year).Scan(
		&summary.PresentDays, &summary.LateDays, &summary.AbsentDays,
		&summary.LeaveDays, &summary.SickDays, &summary.TotalLateMinutes,
	)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	return summary, nil
}

// BulkCreateAbsences implements attendance.AttendanceRepository.
// Conflicts on (user_id, date) are skipped: a record that appeared in
// the meantime wins.
func (r *attendanceRepository) BulkCreateAbsences(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (user_id, date, status, late_minutes, overtime_minutes, notes)
		VALUES ($1, $2, $3, 0, 0, $4)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	for _, rec := range records {
		if _, err := q.Exec(ctx, query, rec.UserID, rec.Date, rec.Status, rec.Notes); err != nil {
			return fmt.Errorf("failed to create absence record: %w", err)
		}
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
