package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/overtime"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `id, user_id, date, hours, reason, status, approved_by, approved_at,
	   notes, created_at, updated_at`

func scanOvertime(row pgx.Row) (overtime.Overtime, error) {
	var ot overtime.Overtime
	err := row.Scan(
		&ot.ID, &ot.UserID, &ot.Date, &ot.Hours, &ot.Reason, &ot.Status, &ot.ApprovedBy, &ot.ApprovedAt,
		&ot.Notes, &ot.CreatedAt, &ot.UpdatedAt,
	)
	return ot, err
}

// Create implements overtime.OvertimeRepository.
func (r *overtimeRepository) Create(ctx context.Context, ot overtime.Overtime) (overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtimes (user_id, date, hours, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ot.UserID, ot.Date, ot.Hours, ot.Reason, ot.Status,
	).Scan(&ot.ID, &ot.CreatedAt, &ot.UpdatedAt)

	if err != nil {
		return overtime.Overtime{}, fmt.Errorf("failed to create overtime: %w", err)
	}

	return ot, nil
}

// GetByID implements overtime.OvertimeRepository.
func (r *overtimeRepository) GetByID(ctx context.Context, id string) (overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtimes WHERE id = $1`

	ot, err := scanOvertime(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.Overtime{}, overtime.ErrOvertimeNotFound
		}
		return overtime.Overtime{}, fmt.Errorf("failed to get overtime by ID: %w", err)
	}

	return ot, nil
}

// ListByUser implements overtime.OvertimeRepository.
func (r *overtimeRepository) ListByUser(ctx context.Context, userID string) ([]overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtimes
		WHERE user_id = $1
		ORDER BY date DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtimes by user: %w", err)
	}
	defer rows.Close()

	var requests []overtime.Overtime
	for rows.Next() {
		ot, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime: %w", err)
		}
		requests = append(requests, ot)
	}

	return requests, rows.Err()
}

// ListPending implements overtime.OvertimeRepository.
func (r *overtimeRepository) ListPending(ctx context.Context) ([]overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT o.id, o.user_id, o.date, o.hours, o.reason, o.status, o.approved_by, o.approved_at,
			   o.notes, o.created_at, o.updated_at,
			   u.name AS user_name,
			   u.division AS user_division
		FROM overtimes o
		JOIN users u ON u.id = o.user_id
		WHERE o.status = 'PENDING'
		ORDER BY o.date
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending overtimes: %w", err)
	}
	defer rows.Close()

	var requests []overtime.Overtime
	for rows.Next() {
		var ot overtime.Overtime
		err := rows.Scan(
			&ot.ID, &ot.UserID, &ot.Date, &ot.Hours, &ot.Reason, &ot.Status, &ot.ApprovedBy, &ot.ApprovedAt,
			&ot.Notes, &ot.CreatedAt, &ot.UpdatedAt,
			&ot.UserName, &ot.UserDivision,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime: %w", err)
		}
		requests = append(requests, ot)
	}

	return requests, rows.Err()
}

// ListByUserInRange implements overtime.OvertimeRepository.
func (r *overtimeRepository) ListByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtimes
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtimes in range: %w", err)
	}
	defer rows.Close()

	var requests []overtime.Overtime
	for rows.Next() {
		ot, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime: %w", err)
		}
		requests = append(requests, ot)
	}

	return requests, rows.Err()
}

// UpdateStatus implements overtime.OvertimeRepository.
func (r *overtimeRepository) UpdateStatus(ctx context.Context, ot overtime.Overtime) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtimes
		SET status = $2, approved_by = $3, approved_at = $4, notes = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, ot.ID, ot.Status, ot.ApprovedBy, ot.ApprovedAt, ot.Notes)
	if err != nil {
		return fmt.Errorf("failed to update overtime status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrOvertimeNotFound
	}

	return nil
}
