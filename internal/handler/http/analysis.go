package http

import (
	"net/http"

	"github.com/presensia/attendance-backend-go/internal/domain/analysis"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type AnalysisHandler interface {
	GetPerformanceReport(w http.ResponseWriter, r *http.Request)
}

type analysisHandlerImpl struct {
	analysisService analysis.AnalysisService
}

func NewAnalysisHandler(analysisService analysis.AnalysisService) AnalysisHandler {
	return &analysisHandlerImpl{
		analysisService: analysisService,
	}
}

// GetPerformanceReport implements AnalysisHandler.
func (h *analysisHandlerImpl) GetPerformanceReport(w http.ResponseWriter, r *http.Request) {
	month, year, ok := monthYearFromQuery(r)
	if !ok {
		response.BadRequest(w, "Query parameters 'month' and 'year' are required", nil)
		return
	}

	filter := analysis.PerformanceFilter{Month: month, Year: year}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analysisService.GetPerformanceReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
