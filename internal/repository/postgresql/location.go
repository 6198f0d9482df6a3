package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/location"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

const locationColumns = `id, name, address, latitude, longitude, radius_meters, division,
	   is_active, created_at, updated_at`

func scanLocation(row pgx.Row) (location.Location, error) {
	var loc location.Location
	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Address, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
		&loc.Division, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt,
	)
	return loc, err
}

// Create implements location.LocationRepository.
func (r *locationRepository) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO locations (
			name, address, latitude, longitude, radius_meters, division, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		loc.Name, loc.Address, loc.Latitude, loc.Longitude, loc.RadiusMeters, loc.Division, loc.IsActive,
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return location.Location{}, location.ErrNameTaken
		}
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return loc, nil
}

// GetByID implements location.LocationRepository.
func (r *locationRepository) GetByID(ctx context.Context, id string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	loc, err := scanLocation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location by ID: %w", err)
	}

	return loc, nil
}

// List implements location.LocationRepository.
func (r *locationRepository) List(ctx context.Context) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

// ListActiveByDivision implements location.LocationRepository. Creation
// order determines which site wins a first-match geofence lookup.
func (r *locationRepository) ListActiveByDivision(ctx context.Context, div division.Division) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + locationColumns + ` FROM locations
		WHERE is_active = TRUE AND division = $1
		ORDER BY created_at`

	rows, err := q.Query(ctx, query, div)
	if err != nil {
		return nil, fmt.Errorf("failed to list active locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}

// Update implements location.LocationRepository.
func (r *locationRepository) Update(ctx context.Context, loc location.Location) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE locations
		SET name = $2, address = $3, latitude = $4, longitude = $5,
			radius_meters = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		loc.ID, loc.Name, loc.Address, loc.Latitude, loc.Longitude, loc.RadiusMeters, loc.IsActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return location.ErrNameTaken
		}
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

// Delete implements location.LocationRepository.
func (r *locationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
