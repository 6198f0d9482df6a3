package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/service/file"
)

type UserServiceImpl struct {
	userRepo    user.UserRepository
	fileService file.FileService
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleUser
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	employeeCode := req.EmployeeCode
	if employeeCode == "" {
		employeeCode = generateEmployeeCode()
	}

	created, err := s.userRepo.Create(ctx, user.User{
		EmployeeCode: employeeCode,
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Division:     division.Division(req.Division),
		Role:         role,
		Position:     req.Position,
		Phone:        req.Phone,
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return mapUserToResponse(created), nil
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	return mapUserToResponse(u), nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) (user.ListUserResponse, error) {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return user.ListUserResponse{}, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, mapUserToResponse(u))
	}
	return user.ListUserResponse{Data: responses}, nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Division != nil {
		u.Division = division.Division(*req.Division)
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Position != nil {
		u.Position = req.Position
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return mapUserToResponse(u), nil
}

// RegisterFaceReference implements user.UserService. A replaced
// reference photo is removed from storage once the new path is saved.
func (s *UserServiceImpl) RegisterFaceReference(ctx context.Context, userID string, f io.Reader, filename string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	path, err := s.fileService.UploadFaceReference(ctx, u.ID, f, filename)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := s.userRepo.SetFaceReference(ctx, u.ID, path); err != nil {
		if cleanupErr := s.fileService.DeleteFile(ctx, path); cleanupErr != nil {
			slog.Error("Failed to remove orphaned face reference", "path", path, "error", cleanupErr)
		}
		return user.UserResponse{}, err
	}

	if u.FaceReferenceURL != nil {
		if err := s.fileService.DeleteFile(ctx, *u.FaceReferenceURL); err != nil {
			slog.Error("Failed to remove replaced face reference", "path", *u.FaceReferenceURL, "error", err)
		}
	}

	u.FaceReferenceURL = &path
	return mapUserToResponse(u), nil
}

func generateEmployeeCode() string {
	return "EMP-" + strings.ToUpper(uuid.New().String()[:8])
}

func mapUserToResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:             u.ID,
		EmployeeCode:   u.EmployeeCode,
		Name:           u.Name,
		Email:          u.Email,
		Division:       string(u.Division),
		Role:           string(u.Role),
		Position:       u.Position,
		Phone:          u.Phone,
		FaceRegistered: u.FaceReferenceURL != nil,
		IsActive:       u.IsActive,
	}
}

func NewUserService(userRepo user.UserRepository, fileService file.FileService) user.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		fileService: fileService,
	}
}
