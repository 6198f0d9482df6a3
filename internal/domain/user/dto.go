package user

import (
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

const minPasswordLength = 8

type CreateUserRequest struct {
	EmployeeCode string  `json:"employee_code,omitempty"` // generated when empty
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Division     string  `json:"division"`
	Role         string  `json:"role,omitempty"` // defaults to USER
	Position     *string `json:"position,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if len(r.Password) < minPasswordLength {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if !division.Division(r.Division).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "division",
			Message: "division must be one of FINANCE, APO, FRONT_DESK, ONSITE",
		})
	}
	if r.Role != "" && r.Role != string(RoleUser) && r.Role != string(RoleSuperAdmin) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be USER or SUPER_ADMIN",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Division *string `json:"division,omitempty"`
	Role     *string `json:"role,omitempty"`
	Position *string `json:"position,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Division != nil && !division.Division(*r.Division).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "division",
			Message: "division must be one of FINANCE, APO, FRONT_DESK, ONSITE",
		})
	}
	if r.Role != nil && *r.Role != string(RoleUser) && *r.Role != string(RoleSuperAdmin) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be USER or SUPER_ADMIN",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID             string  `json:"id"`
	EmployeeCode   string  `json:"employee_code"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Division       string  `json:"division"`
	Role           string  `json:"role"`
	Position       *string `json:"position,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	FaceRegistered bool    `json:"face_registered"`
	IsActive       bool    `json:"is_active"`
}

type ListUserResponse struct {
	Data []UserResponse `json:"data"`
}
