package location

import (
	"context"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/location"
)

type LocationServiceImpl struct {
	locationRepo location.LocationRepository
}

// CreateLocation implements location.LocationService.
func (s *LocationServiceImpl) CreateLocation(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc := location.Location{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		Division:     division.Division(req.Division),
		IsActive:     true,
	}

	created, err := s.locationRepo.Create(ctx, loc)
	if err != nil {
		return location.LocationResponse{}, err
	}

	return mapLocationToResponse(created), nil
}

// GetLocation implements location.LocationService.
func (s *LocationServiceImpl) GetLocation(ctx context.Context, id string) (location.LocationResponse, error) {
	loc, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}

	return mapLocationToResponse(loc), nil
}

// ListLocations implements location.LocationService.
func (s *LocationServiceImpl) ListLocations(ctx context.Context) (location.ListLocationResponse, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		return location.ListLocationResponse{}, err
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapLocationToResponse(loc))
	}

	return location.ListLocationResponse{Data: responses}, nil
}

// UpdateLocation implements location.LocationService. Only the fields
// present in the request change.
func (s *LocationServiceImpl) UpdateLocation(ctx context.Context, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc, err := s.locationRepo.GetByID(ctx, req.ID)
	if err != nil {
		return location.LocationResponse{}, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = req.Address
	}
	if req.Latitude != nil {
		loc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		loc.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		loc.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}

	if err := s.locationRepo.Update(ctx, loc); err != nil {
		return location.LocationResponse{}, err
	}

	return mapLocationToResponse(loc), nil
}

// DeleteLocation implements location.LocationService.
func (s *LocationServiceImpl) DeleteLocation(ctx context.Context, id string) error {
	return s.locationRepo.Delete(ctx, id)
}

func mapLocationToResponse(loc location.Location) location.LocationResponse {
	return location.LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Address:      loc.Address,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
		Division:     string(loc.Division),
		IsActive:     loc.IsActive,
	}
}

func NewLocationService(locationRepo location.LocationRepository) location.LocationService {
	return &LocationServiceImpl{locationRepo: locationRepo}
}
