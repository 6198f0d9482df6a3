package user

import (
	"context"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
)

// UserRepository defines data access methods for users.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns ErrUserNotFound when absent.
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email for authentication.
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListActive retrieves all active users.
	ListActive(ctx context.Context) ([]User, error)

	// ListActiveByDivision retrieves active users in a division.
	ListActiveByDivision(ctx context.Context, div division.Division) ([]User, error)

	// Create inserts a new user. Returns ErrEmailTaken on duplicate email.
	Create(ctx context.Context, u User) (User, error)

	// Update updates a user's mutable fields.
	Update(ctx context.Context, u User) error

	// SetFaceReference sets the stored face reference photo path.
	SetFaceReference(ctx context.Context, id string, path string) error
}
