package salary

import "context"

// SalaryService defines business logic for payroll calculation.
type SalaryService interface {
	// Calculate computes and upserts the salary record for one employee
	// and period. A missing division policy is a hard failure
	// (ErrPolicyMissing); there is no fallback in payroll.
	Calculate(ctx context.Context, userID string, month, year int) (SalaryResponse, error)

	// CalculateBatch runs Calculate for the requested employees (or all
	// active employees when none are named), capturing per-employee
	// failures in the aggregate result.
	CalculateBatch(ctx context.Context, req CalculateRequest) (BatchCalculateResponse, error)

	// GetMySalary retrieves the authenticated user's records.
	GetMySalary(ctx context.Context, userID string) (ListSalaryResponse, error)

	// GetSalary retrieves a single record by ID (admin, or owner).
	GetSalary(ctx context.Context, id string) (SalaryResponse, error)
}
