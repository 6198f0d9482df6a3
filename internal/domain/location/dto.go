package location

import (
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

const (
	minRadiusMeters = 50
	maxRadiusMeters = 5000
)

type CreateLocationRequest struct {
	Name         string  `json:"name"`
	Address      *string `json:"address,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	Division     string  `json:"division"`
}

func (r *CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	errs = append(errs, validateGeofence(r.Latitude, r.Longitude, r.RadiusMeters)...)
	if !division.Division(r.Division).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "division",
			Message: "division must be one of FINANCE, APO, FRONT_DESK, ONSITE",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLocationRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

func (r *UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if r.RadiusMeters != nil && (*r.RadiusMeters < minRadiusMeters || *r.RadiusMeters > maxRadiusMeters) {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be between 50 and 5000",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateGeofence(lat, lon, radius float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

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
	if radius < minRadiusMeters || radius > maxRadiusMeters {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be between 50 and 5000",
		})
	}

	return errs
}

type LocationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      *string `json:"address,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	Division     string  `json:"division"`
	IsActive     bool    `json:"is_active"`
}

type ListLocationResponse struct {
	Data []LocationResponse `json:"data"`
}
