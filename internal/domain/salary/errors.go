package salary

import "errors"

// Salary domain errors
var (
	ErrSalaryNotFound = errors.New("salary record not found")
	ErrPolicyMissing  = errors.New("no division policy found for this employee")
)
