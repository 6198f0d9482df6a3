package overtime

import "context"

// OvertimeService defines business logic for the overtime workflow.
type OvertimeService interface {
	// Submit files a new PENDING overtime request.
	Submit(ctx context.Context, req SubmitOvertimeRequest) (OvertimeResponse, error)

	// GetMyOvertime retrieves the authenticated user's requests.
	GetMyOvertime(ctx context.Context, userID string) (ListOvertimeResponse, error)

	// ListPending retrieves all PENDING requests (admin).
	ListPending(ctx context.Context) (ListOvertimeResponse, error)

	// Decide approves or rejects a request and notifies the requester.
	Decide(ctx context.Context, req DecideOvertimeRequest) (OvertimeResponse, error)
}
