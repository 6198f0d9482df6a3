package user

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	users  map[string]user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
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

func (r *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListActiveByDivision(ctx context.Context, div division.Division) ([]user.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) SetFaceReference(ctx context.Context, id string, path string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.FaceReferenceURL = &path
	r.users[id] = u
	return nil
}

// fakeFileService records face reference uploads and deletions.
type fakeFileService struct {
	uploads []string
	deleted []string
}

func (s *fakeFileService) UploadAttendancePhoto(ctx context.Context, userID string, date time.Time, photo []byte, eventType string) (string, error) {
	return "", nil
}

func (s *fakeFileService) UploadFaceReference(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	path := "faces/" + userID + "/" + filename
	s.uploads = append(s.uploads, path)
	return path, nil
}

func (s *fakeFileService) Download(ctx context.Context, path string) ([]byte, error) {
	return nil, nil
}

func (s *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost/" + path, nil
}

func newUserEnv() (user.UserService, *fakeUserRepo, *fakeFileService) {
	userRepo := newFakeUserRepo()
	fileService := &fakeFileService{}
	return NewUserService(userRepo, fileService), userRepo, fileService
}

func createRequest() user.CreateUserRequest {
	return user.CreateUserRequest{
		Name:     "Budi Santoso",
		Email:    "budi@presensia.id",
		Password: "rahasia123",
		Division: string(division.DivisionFinance),
	}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, userRepo, _ := newUserEnv()

	resp, err := svc.CreateUser(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, "USER", resp.Role)
	assert.True(t, resp.IsActive)
	assert.NotEmpty(t, resp.EmployeeCode)
	assert.False(t, resp.FaceRegistered)

	stored := userRepo.users[resp.ID]
	assert.NotEqual(t, "rahasia123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("rahasia123")))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserEnv()

	_, err := svc.CreateUser(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), createRequest())
	require.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestCreateUser_ShortPasswordRejected(t *testing.T) {
	svc, _, _ := newUserEnv()

	req := createRequest()
	req.Password = "pendek"

	_, err := svc.CreateUser(context.Background(), req)
	require.Error(t, err)
}

func TestCreateUser_InvalidDivisionRejected(t *testing.T) {
	svc, _, _ := newUserEnv()

	req := createRequest()
	req.Division = "WAREHOUSE"

	_, err := svc.CreateUser(context.Background(), req)
	require.Error(t, err)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	svc, userRepo, _ := newUserEnv()

	created, err := svc.CreateUser(context.Background(), createRequest())
	require.NoError(t, err)

	inactive := false
	newName := "Budi S."
	resp, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:       created.ID,
		Name:     &newName,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Budi S.", resp.Name)
	assert.False(t, resp.IsActive)
	// Untouched fields survive.
	assert.Equal(t, created.Email, resp.Email)
	assert.Equal(t, created.Division, resp.Division)
	assert.Equal(t, "Budi S.", userRepo.users[created.ID].Name)
}

func TestRegisterFaceReference_EnablesFaceGate(t *testing.T) {
	svc, userRepo, fileService := newUserEnv()

	created, err := svc.CreateUser(context.Background(), createRequest())
	require.NoError(t, err)
	require.Nil(t, userRepo.users[created.ID].FaceReferenceURL)

	resp, err := svc.RegisterFaceReference(context.Background(), created.ID,
		bytes.NewReader([]byte("reference-image")), "ref.jpg")
	require.NoError(t, err)

	assert.True(t, resp.FaceRegistered)
	require.NotNil(t, userRepo.users[created.ID].FaceReferenceURL)
	require.Len(t, fileService.uploads, 1)
	assert.Equal(t, fileService.uploads[0], *userRepo.users[created.ID].FaceReferenceURL)
}

func TestRegisterFaceReference_ReplacesOldPhoto(t *testing.T) {
	svc, _, fileService := newUserEnv()

	created, err := svc.CreateUser(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.RegisterFaceReference(context.Background(), created.ID,
		bytes.NewReader([]byte("first")), "first.jpg")
	require.NoError(t, err)

	_, err = svc.RegisterFaceReference(context.Background(), created.ID,
		bytes.NewReader([]byte("second")), "second.jpg")
	require.NoError(t, err)

	// The first reference photo is removed from storage.
	require.Len(t, fileService.deleted, 1)
	assert.Equal(t, fileService.uploads[0], fileService.deleted[0])
}

func TestRegisterFaceReference_UnknownUser(t *testing.T) {
	svc, _, _ := newUserEnv()

	_, err := svc.RegisterFaceReference(context.Background(), "missing",
		bytes.NewReader(nil), "ref.jpg")
	require.ErrorIs(t, err, user.ErrUserNotFound)
}
