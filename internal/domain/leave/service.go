package leave

import "context"

// LeaveService defines business logic for the leave workflow.
type LeaveService interface {
	// Submit files a new PENDING leave request.
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)

	// GetMyLeave retrieves the authenticated user's requests.
	GetMyLeave(ctx context.Context, userID string) (ListLeaveResponse, error)

	// ListPending retrieves all PENDING requests (admin).
	ListPending(ctx context.Context) (ListLeaveResponse, error)

	// Decide approves or rejects a request. Approval writes LEAVE/SICK
	// attendance records for every day in the range.
	Decide(ctx context.Context, req DecideLeaveRequest) (LeaveResponse, error)
}
