package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) division.PolicyRepository {
	return &policyRepository{db: db}
}

const policyColumns = `id, division, work_start_time, work_end_time, late_threshold_minutes,
	   deduction_per_minute, base_salary, overtime_rate_multiplier, working_days_per_month,
	   created_at, updated_at`

func scanPolicy(row pgx.Row) (division.Policy, error) {
	var p division.Policy
	err := row.Scan(
		&p.ID, &p.Division, &p.WorkStartTime, &p.WorkEndTime, &p.LateThresholdMinutes,
		&p.DeductionPerMinute, &p.BaseSalary, &p.OvertimeRateMultiplier, &p.WorkingDaysPerMonth,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetByDivision implements division.PolicyRepository.
func (r *policyRepository) GetByDivision(ctx context.Context, div division.Division) (division.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + policyColumns + ` FROM division_policies WHERE division = $1`

	p, err := scanPolicy(q.QueryRow(ctx, query, div))
	if err != nil {
		if err == pgx.ErrNoRows {
			return division.Policy{}, division.ErrPolicyNotFound
		}
		return division.Policy{}, fmt.Errorf("failed to get policy by division: %w", err)
	}

	return p, nil
}

// List implements division.PolicyRepository.
func (r *policyRepository) List(ctx context.Context) ([]division.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + policyColumns + ` FROM division_policies ORDER BY division`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	var policies []division.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, p)
	}

	return policies, rows.Err()
}

// Upsert implements division.PolicyRepository. The division column is
// unique; re-submitting replaces the previous policy.
func (r *policyRepository) Upsert(ctx context.Context, policy division.Policy) (division.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO division_policies (
			division, work_start_time, work_end_time, late_threshold_minutes,
			deduction_per_minute, base_salary, overtime_rate_multiplier, working_days_per_month
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (division) DO UPDATE SET
			work_start_time = EXCLUDED.work_start_time,
			work_end_time = EXCLUDED.work_end_time,
			late_threshold_minutes = EXCLUDED.late_threshold_minutes,
			deduction_per_minute = EXCLUDED.deduction_per_minute,
			base_salary = EXCLUDED.base_salary,
			overtime_rate_multiplier = EXCLUDED.overtime_rate_multiplier,
			working_days_per_month = EXCLUDED.working_days_per_month,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		policy.Division, policy.WorkStartTime, policy.WorkEndTime, policy.LateThresholdMinutes,
		policy.DeductionPerMinute, policy.BaseSalary, policy.OvertimeRateMultiplier, policy.WorkingDaysPerMonth,
	).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)

	if err != nil {
		return division.Policy{}, fmt.Errorf("failed to upsert policy: %w", err)
	}

	return policy, nil
}
