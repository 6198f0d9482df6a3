package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/attendance-backend-go/internal/domain/auth"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/handler/http/middleware"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

type fakeAuthService struct {
	loginResp auth.LoginResponse
	loginErr  error
}

func (s *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if s.loginErr != nil {
		return auth.LoginResponse{}, s.loginErr
	}
	return s.loginResp, nil
}
func (s *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	return auth.RefreshResponse{AccessToken: "new-access"}, nil
}
func (s *fakeAuthService) Logout(ctx context.Context, refreshToken string) error { return nil }

func newTestJWTService() jwt.Service {
	return jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestLogin_SetsRefreshCookie(t *testing.T) {
	jwtService := newTestJWTService()
	handler := NewAuthHandler(jwtService, &fakeAuthService{
		loginResp: auth.LoginResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			User:         auth.UserInfo{ID: "u1", Role: "USER"},
		},
	})

	body, _ := json.Marshal(map[string]string{"email": "budi@presensia.id", "password": "rahasia123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "refresh_token cookie must be set")
	assert.Equal(t, "refresh-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(newTestJWTService(), &fakeAuthService{
		loginErr: auth.ErrInvalidCredentials,
	})

	body, _ := json.Marshal(map[string]string{"email": "budi@presensia.id", "password": "salah"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	handler := NewAuthHandler(newTestJWTService(), &fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{not-json")))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// protectedTestRouter mounts a probe endpoint behind the auth and admin
// middleware chain exactly as the real router does.
func protectedTestRouter(jwtService jwt.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			userID, err := userIDFromRequest(r)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			response.Success(w, map[string]string{"user_id": userID})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSuperAdmin)
			r.Get("/admin-only", func(w http.ResponseWriter, r *http.Request) {
				response.Success(w, nil)
			})
		})
	})
	return r
}

func TestAuthRequired_MissingToken(t *testing.T) {
	router := protectedTestRouter(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestJWTService()
	router := protectedTestRouter(jwtService)

	refreshToken, _, err := jwtService.GenerateRefreshToken("u1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_AccessTokenAccepted(t *testing.T) {
	jwtService := newTestJWTService()
	router := protectedTestRouter(jwtService)

	accessToken, _, err := jwtService.GenerateAccessToken("u1", "budi@presensia.id", user.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", data["user_id"])
}

func TestRequireSuperAdmin_BlocksRegularUser(t *testing.T) {
	jwtService := newTestJWTService()
	router := protectedTestRouter(jwtService)

	accessToken, _, err := jwtService.GenerateAccessToken("u1", "budi@presensia.id", user.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireSuperAdmin_AllowsAdmin(t *testing.T) {
	jwtService := newTestJWTService()
	router := protectedTestRouter(jwtService)

	accessToken, _, err := jwtService.GenerateAccessToken("a1", "admin@presensia.id", user.RoleSuperAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
