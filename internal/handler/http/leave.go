package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/leave"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyLeave(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Submit leave service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// GetMyLeave implements LeaveHandler.
func (h *leaveHandlerImpl) GetMyLeave(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.GetMyLeave(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements LeaveHandler.
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decide implements LeaveHandler.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approverID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ApproverID = approverID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Decide(r.Context(), req)
	if err != nil {
		slog.Error("Decide leave service error", "id", req.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request processed", result)
}
