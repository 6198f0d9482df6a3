package division

import "context"

// PolicyService defines business logic for division policy management.
type PolicyService interface {
	// GetPolicy retrieves the policy for a single division.
	GetPolicy(ctx context.Context, div string) (PolicyResponse, error)

	// ListPolicies retrieves all division policies.
	ListPolicies(ctx context.Context) (ListPolicyResponse, error)

	// UpsertPolicy creates or replaces a division policy.
	UpsertPolicy(ctx context.Context, req UpsertPolicyRequest) (PolicyResponse, error)
}
