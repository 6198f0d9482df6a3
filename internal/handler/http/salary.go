package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/salary"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	GetMySalary(w http.ResponseWriter, r *http.Request)
	GetSalary(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
	}
}

// GetMySalary implements SalaryHandler.
func (h *salaryHandlerImpl) GetMySalary(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetMySalary(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSalary implements SalaryHandler.
func (h *salaryHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.salaryService.GetSalary(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calculate implements SalaryHandler. The batch runs synchronously and
// returns per-employee outcomes; one failure never aborts the rest.
func (h *salaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req salary.CalculateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Calculate salary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.CalculateBatch(r.Context(), req)
	if err != nil {
		slog.Error("Calculate salary service error", "month", req.Month, "year", req.Year, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary calculation completed", result)
}
