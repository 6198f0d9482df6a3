package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UploadFaceReference(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// Create implements UserHandler.
func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		slog.Error("Create user service error", "email", req.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", result)
}

// Get implements UserHandler.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.userService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements UserHandler.
func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.UpdateUser(r.Context(), req)
	if err != nil {
		slog.Error("Update user service error", "id", req.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", result)
}

// UploadFaceReference implements UserHandler. The photo arrives as a
// multipart 'photo' field, like the attendance endpoints.
func (h *userHandlerImpl) UploadFaceReference(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Reference photo is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	id := chi.URLParam(r, "id")
	result, err := h.userService.RegisterFaceReference(r.Context(), id, file, fileHeader.Filename)
	if err != nil {
		slog.Error("UploadFaceReference service error", "id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Face reference registered", result)
}
