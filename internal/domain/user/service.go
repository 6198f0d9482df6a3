package user

import (
	"context"
	"io"
)

// UserService defines business logic for employee administration.
type UserService interface {
	// CreateUser registers a new employee account (admin).
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// GetUser retrieves a single user by ID.
	GetUser(ctx context.Context, id string) (UserResponse, error)

	// ListUsers retrieves all active users (admin).
	ListUsers(ctx context.Context) (ListUserResponse, error)

	// UpdateUser updates an employee's mutable fields (admin).
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// RegisterFaceReference stores the reference photo used by face
	// verification. Until one is registered the face gate is skipped
	// for that employee.
	RegisterFaceReference(ctx context.Context, userID string, file io.Reader, filename string) (UserResponse, error)
}
