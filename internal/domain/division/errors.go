package division

import "errors"

// Division domain errors
var (
	ErrPolicyNotFound  = errors.New("no policy found for this division")
	ErrInvalidDivision = errors.New("invalid division")
)
