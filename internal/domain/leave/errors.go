package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound  = errors.New("leave request not found")
	ErrAlreadyDecided = errors.New("leave request has already been approved or rejected")
	ErrInvalidRange   = errors.New("end date must not be before start date")
)
