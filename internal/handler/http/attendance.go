package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetDivisionHistory(w http.ResponseWriter, r *http.Request)
	CreateManualEntry(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler. The request is multipart: a
// 'data' field carrying the JSON payload and a 'photo' field carrying
// the attendance proof.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attendance proof photo is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req.File = file
	req.FileHeader = fileHeader

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

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("CheckIn service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attendance proof photo is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req.File = file
	req.FileHeader = fileHeader

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

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("CheckOut service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.HistoryFilter{
		UserID: userID,
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month, year, ok := monthYearFromQuery(r)
	if !ok {
		response.BadRequest(w, "Query parameters 'month' and 'year' are required", nil)
		return
	}

	result, err := h.attendanceService.GetSummary(r.Context(), userID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDivisionHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDivisionHistory(w http.ResponseWriter, r *http.Request) {
	div := chi.URLParam(r, "division")

	result, err := h.attendanceService.GetDivisionHistory(
		r.Context(), div, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateManualEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateManualEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateManualEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CreateManualEntry(r.Context(), req)
	if err != nil {
		slog.Error("CreateManualEntry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record created", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		slog.Error("Delete attendance service error", "id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}

// monthYearFromQuery parses the month/year query pair shared by the
// summary, payroll, and performance endpoints.
func monthYearFromQuery(r *http.Request) (month, year int, ok bool) {
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	if errMonth != nil || errYear != nil {
		return 0, 0, false
	}
	return month, year, true
}
