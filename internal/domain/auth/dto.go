package auth

import (
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

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
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Division string  `json:"division"`
	Role     string  `json:"role"`
	Position *string `json:"position,omitempty"`
}

type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	ExpiresAt    int64    `json:"expires_at"`
	RefreshToken string   `json:"-"` // delivered via HttpOnly cookie
	RefreshExp   int64    `json:"-"`
	User         UserInfo `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
