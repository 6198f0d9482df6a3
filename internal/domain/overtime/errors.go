package overtime

import "errors"

// Overtime domain errors
var (
	ErrOvertimeNotFound = errors.New("overtime request not found")
	ErrAlreadyDecided   = errors.New("overtime request has already been approved or rejected")
	ErrInvalidStatus    = errors.New("invalid overtime status")
)
