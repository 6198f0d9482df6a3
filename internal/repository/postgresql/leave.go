package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/leave"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `id, user_id, type, start_date, end_date, reason, status, approved_by,
	   approved_at, notes, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var lv leave.Leave
	err := row.Scan(
		&lv.ID, &lv.UserID, &lv.Type, &lv.StartDate, &lv.EndDate, &lv.Reason, &lv.Status, &lv.ApprovedBy,
		&lv.ApprovedAt, &lv.Notes, &lv.CreatedAt, &lv.UpdatedAt,
	)
	return lv, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (user_id, type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lv.UserID, lv.Type, lv.StartDate, lv.EndDate, lv.Reason, lv.Status,
	).Scan(&lv.ID, &lv.CreatedAt, &lv.UpdatedAt)

	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return lv, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE id = $1`

	lv, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave by ID: %w", err)
	}

	return lv, nil
}

// ListByUser implements leave.LeaveRepository.
func (r *leaveRepository) ListByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves
		WHERE user_id = $1
		ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves by user: %w", err)
	}
	defer rows.Close()

	var requests []leave.Leave
	for rows.Next() {
		lv, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		requests = append(requests, lv)
	}

	return requests, rows.Err()
}

// ListPending implements leave.LeaveRepository.
func (r *leaveRepository) ListPending(ctx context.Context) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.user_id, l.type, l.start_date, l.end_date, l.reason, l.status, l.approved_by,
			   l.approved_at, l.notes, l.created_at, l.updated_at,
			   u.name AS user_name,
			   u.division AS user_division
		FROM leaves l
		JOIN users u ON u.id = l.user_id
		WHERE l.status = 'PENDING'
		ORDER BY l.start_date
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leaves: %w", err)
	}
	defer rows.Close()

	var requests []leave.Leave
	for rows.Next() {
		var lv leave.Leave
		err := rows.Scan(
			&lv.ID, &lv.UserID, &lv.Type, &lv.StartDate, &lv.EndDate, &lv.Reason, &lv.Status, &lv.ApprovedBy,
			&lv.ApprovedAt, &lv.Notes, &lv.CreatedAt, &lv.UpdatedAt,
			&lv.UserName, &lv.UserDivision,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		requests = append(requests, lv)
	}

	return requests, rows.Err()
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepository) UpdateStatus(ctx context.Context, lv leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $2, approved_by = $3, approved_at = $4, notes = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, lv.ID, lv.Status, lv.ApprovedBy, lv.ApprovedAt, lv.Notes)
	if err != nil {
		return fmt.Errorf("failed to update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}
