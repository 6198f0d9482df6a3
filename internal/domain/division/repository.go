package division

import "context"

// PolicyRepository defines data access for division policies.
type PolicyRepository interface {
	// GetByDivision retrieves the active policy for a division.
	// Returns ErrPolicyNotFound when no policy exists.
	GetByDivision(ctx context.Context, div Division) (Policy, error)

	// List retrieves all policies.
	List(ctx context.Context) ([]Policy, error)

	// Upsert creates or replaces the policy for its division.
	Upsert(ctx context.Context, policy Policy) (Policy, error)
}
