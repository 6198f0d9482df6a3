package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/presensia/attendance-backend-go/internal/domain/auth"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

// Login implements auth.AuthService. A wrong email and a wrong password
// return the same error so the endpoint cannot be used to probe for
// registered addresses.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
		User: auth.UserInfo{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Division: string(u.Division),
			Role:     string(u.Role),
			Position: u.Position,
		},
	}, nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrUserNotFound
		}
		return auth.RefreshResponse{}, err
	}
	if !u.IsActive {
		return auth.RefreshResponse{}, user.ErrUserInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.RefreshResponse{}, err
	}

	return auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}
