package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/auth"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/leave"
	"github.com/presensia/attendance-backend-go/internal/domain/location"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/overtime"
	"github.com/presensia/attendance-backend-go/internal/domain/salary"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/geo"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Rejections that carry a measurement report it to the client.
	var locationErr *attendance.LocationError
	if errors.As(err, &locationErr) {
		BadRequest(w, fmt.Sprintf("You are outside every allowed location; the nearest site is %.0f meters away",
			locationErr.DistanceMeters), nil)
		return
	}
	var faceErr *attendance.FaceMatchError
	if errors.As(err, &faceErr) {
		BadRequest(w, fmt.Sprintf("Face verification failed with confidence %.2f", faceErr.Confidence), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrEmailTaken):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "You have not checked in yet", nil)
	case errors.Is(err, attendance.ErrLocationInvalid):
		BadRequest(w, "You are outside every allowed location", nil)
	case errors.Is(err, attendance.ErrFaceMismatch):
		BadRequest(w, "Face verification failed", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, "An attendance record already exists for this date")
	case errors.Is(err, geo.ErrInvalidCoordinate):
		BadRequest(w, "Invalid coordinates", nil)

	// Division policy errors
	case errors.Is(err, division.ErrPolicyNotFound):
		NotFound(w, "Division policy not found")
	case errors.Is(err, division.ErrInvalidDivision):
		BadRequest(w, "Unknown division", nil)

	// Location errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrNameTaken):
		Conflict(w, "Location name already in use")

	// Overtime / leave errors
	case errors.Is(err, overtime.ErrOvertimeNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrAlreadyDecided):
		Conflict(w, "Overtime request already processed")
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request already processed")

	// Salary errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrPolicyMissing):
		BadRequest(w, "No division policy configured for this employee", nil)

	// Notification errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
