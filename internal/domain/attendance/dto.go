package attendance

import (
	"mime/multipart"
	"strings"

	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	UserID     string                `json:"-"`
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	Notes      *string               `json:"notes,omitempty"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	return validateEventRequest(r.UserID, r.Latitude, r.Longitude, r.FileHeader)
}

type CheckOutRequest struct {
	UserID     string                `json:"-"`
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	Notes      *string               `json:"notes,omitempty"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	return validateEventRequest(r.UserID, r.Latitude, r.Longitude, r.FileHeader)
}

func validateEventRequest(userID string, lat, lon float64, header *multipart.FileHeader) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(userID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if lat < -90 || lat > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lon < -180 || lon > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if header == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "attendance photo is required",
		})
	} else {
		filename := header.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if header.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "attendance photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ManualEntryRequest struct {
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"` // "YYYY-MM-DD"
	Status       string  `json:"status"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string `json:"check_out_time,omitempty"` // RFC3339
	Notes        *string `json:"notes,omitempty"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	switch Status(r.Status) {
	case StatusPresent, StatusLate, StatusAbsent, StatusLeave, StatusSick:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of PRESENT, LATE, ABSENT, LEAVE, SICK",
		})
	}
	if r.CheckInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be a valid ISO8601 timestamp",
			})
		}
	}
	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be a valid ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	UserID string `json:"-"`
	From   string `json:"from,omitempty"` // "YYYY-MM-DD"
	To     string `json:"to,omitempty"`   // "YYYY-MM-DD"
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != "" {
		if _, ok := validator.IsValidDate(f.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}
	if f.To != "" {
		if _, ok := validator.IsValidDate(f.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	UserName          *string  `json:"user_name,omitempty"`
	UserDivision      *string  `json:"user_division,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       *string  `json:"check_in_time,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	CheckInLocation   *string  `json:"check_in_location,omitempty"`
	CheckOutLocation  *string  `json:"check_out_location,omitempty"`
	CheckInPhotoURL   *string  `json:"check_in_photo_url,omitempty"`
	CheckOutPhotoURL  *string  `json:"check_out_photo_url,omitempty"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	LateMinutes       int      `json:"late_minutes"`
	OvertimeMinutes   int      `json:"overtime_minutes"`
	Status            string   `json:"status"`
	Notes             *string  `json:"notes,omitempty"`
	DistanceMeters    *float64 `json:"distance_meters,omitempty"`
	FaceConfidence    *float64 `json:"face_confidence,omitempty"`
}

type ListAttendanceResponse struct {
	Data []AttendanceResponse `json:"data"`
}

type SummaryResponse struct {
	UserID           string `json:"user_id"`
	Month            int    `json:"month"`
	Year             int    `json:"year"`
	PresentDays      int    `json:"present_days"`
	LateDays         int    `json:"late_days"`
	AbsentDays       int    `json:"absent_days"`
	LeaveDays        int    `json:"leave_days"`
	SickDays         int    `json:"sick_days"`
	TotalLateMinutes int    `json:"total_late_minutes"`
}
