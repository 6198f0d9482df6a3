package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/presensia/attendance-backend-go/internal/domain/auth"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}
func (r *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) { return nil, nil }
func (r *fakeUserRepo) ListActiveByDivision(ctx context.Context, div division.Division) ([]user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }
func (r *fakeUserRepo) Update(ctx context.Context, u user.User) error              { return nil }
func (r *fakeUserRepo) SetFaceReference(ctx context.Context, id string, path string) error {
	return nil
}

func newAuthEnv(t *testing.T) (auth.AuthService, *fakeUserRepo, jwt.Service) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{users: map[string]user.User{
		"u1": {
			ID:           "u1",
			Name:         "Budi Santoso",
			Email:        "budi@presensia.id",
			PasswordHash: string(hash),
			Division:     division.DivisionFinance,
			Role:         user.RoleUser,
			IsActive:     true,
		},
	}}

	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	return NewAuthService(userRepo, jwtService), userRepo, jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@presensia.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "USER", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@presensia.id",
		Password: "salah",
	})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "unknown@presensia.id",
		Password: "rahasia123",
	})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, userRepo, _ := newAuthEnv(t)
	u := userRepo.users["u1"]
	u.IsActive = false
	userRepo.users["u1"] = u

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@presensia.id",
		Password: "rahasia123",
	})
	require.ErrorIs(t, err, user.ErrUserInactive)
}

func TestRefresh_Success(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@presensia.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@presensia.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	// An access token must not be accepted by the refresh endpoint.
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@presensia.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _, _ := newAuthEnv(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
