package user

import "errors"

// User domain errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email is already registered")
	ErrUserInactive = errors.New("user account is inactive")
	ErrInvalidRole  = errors.New("invalid role")
)
