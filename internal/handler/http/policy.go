package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type PolicyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyService division.PolicyService
}

func NewPolicyHandler(policyService division.PolicyService) PolicyHandler {
	return &policyHandlerImpl{
		policyService: policyService,
	}
}

// Get implements PolicyHandler.
func (h *policyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	div := chi.URLParam(r, "division")

	result, err := h.policyService.GetPolicy(r.Context(), div)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PolicyHandler.
func (h *policyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.policyService.ListPolicies(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Upsert implements PolicyHandler.
func (h *policyHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req division.UpsertPolicyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert policy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.policyService.UpsertPolicy(r.Context(), req)
	if err != nil {
		slog.Error("Upsert policy service error", "division", req.Division, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Division policy saved", result)
}
