package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/location"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type LocationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type locationHandlerImpl struct {
	locationService location.LocationService
}

func NewLocationHandler(locationService location.LocationService) LocationHandler {
	return &locationHandlerImpl{
		locationService: locationService,
	}
}

// Create implements LocationHandler.
func (h *locationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req location.CreateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create location decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.locationService.CreateLocation(r.Context(), req)
	if err != nil {
		slog.Error("Create location service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location created", result)
}

// Get implements LocationHandler.
func (h *locationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.locationService.GetLocation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LocationHandler.
func (h *locationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.locationService.ListLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements LocationHandler.
func (h *locationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req location.UpdateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update location decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.locationService.UpdateLocation(r.Context(), req)
	if err != nil {
		slog.Error("Update location service error", "id", req.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location updated", result)
}

// Delete implements LocationHandler.
func (h *locationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.locationService.DeleteLocation(r.Context(), id); err != nil {
		slog.Error("Delete location service error", "id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location deleted", nil)
}
