package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/salary"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, user_id, month, year, base_salary, overtime_salary, deduction,
	   total_salary, present_days, late_minutes, overtime_hours, created_at, updated_at`

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var sal salary.Salary
	err := row.Scan(
		&sal.ID, &sal.UserID, &sal.Month, &sal.Year, &sal.BaseSalary, &sal.OvertimeSalary, &sal.Deduction,
		&sal.TotalSalary, &sal.PresentDays, &sal.LateMinutes, &sal.OvertimeHours, &sal.CreatedAt, &sal.UpdatedAt,
	)
	return sal, err
}

// Upsert implements salary.SalaryRepository. The salaries table has a
// unique constraint on (user_id, month, year); recomputation replaces
// the previous record so payroll is idempotent.
func (r *salaryRepository) Upsert(ctx context.Context, sal salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (
			user_id, month, year, base_salary, overtime_salary, deduction,
			total_salary, present_days, late_minutes, overtime_hours
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (user_id, month, year) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			overtime_salary = EXCLUDED.overtime_salary,
			deduction = EXCLUDED.deduction,
			total_salary = EXCLUDED.total_salary,
			present_days = EXCLUDED.present_days,
			late_minutes = EXCLUDED.late_minutes,
			overtime_hours = EXCLUDED.overtime_hours,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sal.UserID, sal.Month, sal.Year, sal.BaseSalary, sal.OvertimeSalary, sal.Deduction,
		sal.TotalSalary, sal.PresentDays, sal.LateMinutes, sal.OvertimeHours,
	).Scan(&sal.ID, &sal.CreatedAt, &sal.UpdatedAt)

	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to upsert salary: %w", err)
	}

	return sal, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE id = $1`

	sal, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary by ID: %w", err)
	}

	return sal, nil
}

// GetByUserPeriod implements salary.SalaryRepository.
func (r *salaryRepository) GetByUserPeriod(ctx context.Context, userID string, month, year int) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salaries
		WHERE user_id = $1 AND month = $2 AND year = $3`

	sal, err := scanSalary(q.QueryRow(ctx, query, userID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary by period: %w", err)
	}

	return sal, nil
}

// ListByUser implements salary.SalaryRepository.
func (r *salaryRepository) ListByUser(ctx context.Context, userID string) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salaries
		WHERE user_id = $1
		ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries by user: %w", err)
	}
	defer rows.Close()

	var records []salary.Salary
	for rows.Next() {
		sal, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		records = append(records, sal)
	}

	return records, rows.Err()
}

// ListByPeriod implements salary.SalaryRepository.
func (r *salaryRepository) ListByPeriod(ctx context.Context, month, year int) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, s.month, s.year, s.base_salary, s.overtime_salary, s.deduction,
			   s.total_salary, s.present_days, s.late_minutes, s.overtime_hours, s.created_at, s.updated_at,
			   u.name AS user_name,
			   u.division AS user_division
		FROM salaries s
		JOIN users u ON u.id = s.user_id
		WHERE s.month = $1 AND s.year = $2
		ORDER BY u.name
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries by period: %w", err)
	}
	defer rows.Close()

	var records []salary.Salary
	for rows.Next() {
		var sal salary.Salary
		err := rows.Scan(
			&sal.ID, &sal.UserID, &sal.Month, &sal.Year, &sal.BaseSalary, &sal.OvertimeSalary, &sal.Deduction,
			&sal.TotalSalary, &sal.PresentDays, &sal.LateMinutes, &sal.OvertimeHours, &sal.CreatedAt, &sal.UpdatedAt,
			&sal.UserName, &sal.UserDivision,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		records = append(records, sal)
	}

	return records, rows.Err()
}
