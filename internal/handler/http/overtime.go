package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/overtime"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyOvertime(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// Submit implements OvertimeHandler.
func (h *overtimeHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req overtime.SubmitOvertimeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit overtime decode error", "error", err)
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

	result, err := h.overtimeService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Submit overtime service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", result)
}

// GetMyOvertime implements OvertimeHandler.
func (h *overtimeHandlerImpl) GetMyOvertime(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.overtimeService.GetMyOvertime(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decide implements OvertimeHandler.
func (h *overtimeHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req overtime.DecideOvertimeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide overtime decode error", "error", err)
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

	result, err := h.overtimeService.Decide(r.Context(), req)
	if err != nil {
		slog.Error("Decide overtime service error", "id", req.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request processed", result)
}
