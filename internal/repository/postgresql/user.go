package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, employee_code, name, email, password_hash, division, role,
	   position, phone, face_reference_url, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.EmployeeCode, &u.Name, &u.Email, &u.PasswordHash, &u.Division, &u.Role,
		&u.Position, &u.Phone, &u.FaceReferenceURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// ListActive implements user.UserRepository.
func (r *userRepository) ListActive(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = TRUE ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ListActiveByDivision implements user.UserRepository.
func (r *userRepository) ListActiveByDivision(ctx context.Context, div division.Division) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = TRUE AND division = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, div)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by division: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			employee_code, name, email, password_hash, division, role,
			position, phone, face_reference_url, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.EmployeeCode, u.Name, u.Email, u.PasswordHash, u.Division, u.Role,
		u.Position, u.Phone, u.FaceReferenceURL, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = $2, email = $3, division = $4, role = $5,
			position = $6, phone = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.Division, u.Role, u.Position, u.Phone, u.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SetFaceReference implements user.UserRepository.
func (r *userRepository) SetFaceReference(ctx context.Context, id string, path string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET face_reference_url = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, path)
	if err != nil {
		return fmt.Errorf("failed to set face reference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
