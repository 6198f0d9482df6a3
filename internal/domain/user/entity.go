package user

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
)

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN" // Full access, manages policies and approvals
	RoleUser       Role = "USER"        // Regular employee
)

type User struct {
	ID               string
	EmployeeCode     string
	Name             string
	Email            string
	PasswordHash     string
	Division         division.Division
	Role             Role
	Position         *string
	Phone            *string
	FaceReferenceURL *string // reference photo for face verification, nil skips the gate
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsSuperAdmin checks if the user has administrative access.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// CanApprove checks if the user can approve overtime and leave requests.
func (u *User) CanApprove() bool {
	return u.IsSuperAdmin()
}
