package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/presensia/attendance-backend-go/internal/config"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/location"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/face"
	"github.com/presensia/attendance-backend-go/internal/pkg/geo"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/presensia/attendance-backend-go/internal/service/file"
)

// photoURLExpiry bounds how long a served attendance photo link stays
// valid.
const photoURLExpiry = 15 * time.Minute

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	locationRepo   location.LocationRepository
	policyRepo     division.PolicyRepository
	fileService    file.FileService
	faceVerifier   face.Verifier
	notifier       notification.Service
	cfg            config.AttendanceConfig

	// now is swappable in tests.
	now func() time.Time
}

// CheckIn implements attendance.AttendanceService.
//
// The gates run in order: geofence, photo upload, face verification.
// The uploaded photo is removed again when a later gate fails, so a
// rejected attempt leaves nothing behind in storage.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !u.IsActive {
		return attendance.AttendanceResponse{}, user.ErrUserInactive
	}

	now := s.now()
	date := dateOf(now)

	// Pre-check for an existing record. The unique constraint on
	// (user_id, date) still backs this up under concurrency.
	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, u.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	matched, distance, err := s.matchGeofence(ctx, u.Division, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if matched == nil {
		s.notifyFailure(ctx, u.ID, "Check-in gagal",
			fmt.Sprintf("Lokasi Anda berada di luar area kantor yang diizinkan (sekitar %.0f meter dari lokasi terdekat).", distance))
		return attendance.AttendanceResponse{}, &attendance.LocationError{DistanceMeters: distance}
	}

	photo, err := io.ReadAll(req.File)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to read attendance photo: %w", err)
	}

	photoPath, err := s.fileService.UploadAttendancePhoto(ctx, u.ID, date, photo, "checkin")
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	confidence, err := s.verifyFace(ctx, u, photo)
	if err != nil {
		s.cleanupPhoto(ctx, photoPath)
		var faceErr *attendance.FaceMatchError
		if errors.As(err, &faceErr) {
			s.notifyFailure(ctx, u.ID, "Check-in gagal",
				fmt.Sprintf("Verifikasi wajah tidak berhasil (tingkat kecocokan %.0f%%). Silakan coba lagi.", faceErr.Confidence*100))
		}
		return attendance.AttendanceResponse{}, err
	}

	policy := s.resolvePolicy(ctx, u.Division)
	workStart := timeOnDate(policy.WorkStartTime, now)

	lateMinutes := 0
	status := attendance.StatusPresent
	if now.After(workStart.Add(time.Duration(policy.LateThresholdMinutes) * time.Minute)) {
		status = attendance.StatusLate
		lateMinutes = int(now.Sub(workStart).Minutes())
	}

	record := attendance.Attendance{
		UserID:           u.ID,
		Date:             date,
		CheckInTime:      &now,
		CheckInLocation:  &matched.Name,
		CheckInPhotoURL:  &photoPath,
		CheckInLatitude:  &req.Latitude,
		CheckInLongitude: &req.Longitude,
		LateMinutes:      lateMinutes,
		Status:           status,
		Notes:            req.Notes,
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		s.cleanupPhoto(ctx, photoPath)
		return attendance.AttendanceResponse{}, err
	}

	message := fmt.Sprintf("Check-in berhasil pada %s di %s.", now.Format("15:04"), matched.Name)
	if status == attendance.StatusLate {
		message = fmt.Sprintf("Check-in berhasil pada %s di %s. Anda terlambat %d menit.",
			now.Format("15:04"), matched.Name, lateMinutes)
	}
	s.notifier.Dispatch(ctx, notification.Notify{
		UserID:  u.ID,
		Type:    notification.TypeAttendanceSuccess,
		Title:   "Check-in berhasil",
		Message: message,
		Data:    map[string]interface{}{"attendance_id": created.ID},
	})

	resp := mapAttendanceToResponse(created)
	resp.DistanceMeters = &distance
	resp.FaceConfidence = confidence
	s.resolvePhotoURLs(ctx, &resp)
	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !u.IsActive {
		return attendance.AttendanceResponse{}, user.ErrUserInactive
	}

	now := s.now()
	date := dateOf(now)

	record, err := s.attendanceRepo.GetByUserAndDate(ctx, u.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil || record.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	matched, distance, err := s.matchGeofence(ctx, u.Division, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if matched == nil {
		s.notifyFailure(ctx, u.ID, "Check-out gagal",
			fmt.Sprintf("Lokasi Anda berada di luar area kantor yang diizinkan (sekitar %.0f meter dari lokasi terdekat).", distance))
		return attendance.AttendanceResponse{}, &attendance.LocationError{DistanceMeters: distance}
	}

	photo, err := io.ReadAll(req.File)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to read attendance photo: %w", err)
	}

	photoPath, err := s.fileService.UploadAttendancePhoto(ctx, u.ID, date, photo, "checkout")
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	confidence, err := s.verifyFace(ctx, u, photo)
	if err != nil {
		s.cleanupPhoto(ctx, photoPath)
		var faceErr *attendance.FaceMatchError
		if errors.As(err, &faceErr) {
			s.notifyFailure(ctx, u.ID, "Check-out gagal",
				fmt.Sprintf("Verifikasi wajah tidak berhasil (tingkat kecocokan %.0f%%). Silakan coba lagi.", faceErr.Confidence*100))
		}
		return attendance.AttendanceResponse{}, err
	}

	policy := s.resolvePolicy(ctx, u.Division)
	workEnd := timeOnDate(policy.WorkEndTime, now)

	overtimeMinutes := 0
	if now.After(workEnd) {
		overtimeMinutes = int(now.Sub(workEnd).Minutes())
	}

	record.CheckOutTime = &now
	record.CheckOutLocation = &matched.Name
	record.CheckOutPhotoURL = &photoPath
	record.CheckOutLatitude = &req.Latitude
	record.CheckOutLongitude = &req.Longitude
	record.OvertimeMinutes = overtimeMinutes
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.attendanceRepo.Update(ctx, *record); err != nil {
		s.cleanupPhoto(ctx, photoPath)
		return attendance.AttendanceResponse{}, err
	}

	s.notifier.Dispatch(ctx, notification.Notify{
		UserID:  u.ID,
		Type:    notification.TypeAttendanceSuccess,
		Title:   "Check-out berhasil",
		Message: fmt.Sprintf("Check-out berhasil pada %s di %s.", now.Format("15:04"), matched.Name),
		Data:    map[string]interface{}{"attendance_id": record.ID},
	})

	resp := mapAttendanceToResponse(*record)
	resp.DistanceMeters = &distance
	resp.FaceConfidence = confidence
	s.resolvePhotoURLs(ctx, &resp)
	return resp, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, dateOf(s.now()))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	resp := mapAttendanceToResponse(*record)
	s.resolvePhotoURLs(ctx, &resp)
	return resp, nil
}

// GetHistory implements attendance.AttendanceService. An empty range
// defaults to the last 30 days.
func (s *AttendanceServiceImpl) GetHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	to := dateOf(s.now())
	from := to.AddDate(0, 0, -30)
	if filter.From != "" {
		from, _ = validator.IsValidDate(filter.From)
	}
	if filter.To != "" {
		to, _ = validator.IsValidDate(filter.To)
	}

	records, err := s.attendanceRepo.ListByUser(ctx, filter.UserID, from, to)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := mapAttendanceListToResponse(records)
	for i := range resp.Data {
		s.resolvePhotoURLs(ctx, &resp.Data[i])
	}
	return resp, nil
}

// GetSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetSummary(ctx context.Context, userID string, month, year int) (attendance.SummaryResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 2100"})
	}
	if len(errs) > 0 {
		return attendance.SummaryResponse{}, errs
	}

	summary, err := s.attendanceRepo.GetMonthlySummary(ctx, userID, month, year)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	return attendance.SummaryResponse{
		UserID:           userID,
		Month:            month,
		Year:             year,
		PresentDays:      summary.PresentDays,
		LateDays:         summary.LateDays,
		AbsentDays:       summary.AbsentDays,
		LeaveDays:        summary.LeaveDays,
		SickDays:         summary.SickDays,
		TotalLateMinutes: summary.TotalLateMinutes,
	}, nil
}

// GetDivisionHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDivisionHistory(ctx context.Context, div string, from, to string) (attendance.ListAttendanceResponse, error) {
	d := division.Division(div)
	if !d.IsValid() {
		return attendance.ListAttendanceResponse{}, division.ErrInvalidDivision
	}

	toDate := dateOf(s.now())
	fromDate := toDate.AddDate(0, 0, -30)
	if from != "" {
		parsed, ok := validator.IsValidDate(from)
		if !ok {
			return attendance.ListAttendanceResponse{}, validator.ValidationErrors{
				{Field: "from", Message: "from must be in YYYY-MM-DD format"},
			}
		}
		fromDate = parsed
	}
	if to != "" {
		parsed, ok := validator.IsValidDate(to)
		if !ok {
			return attendance.ListAttendanceResponse{}, validator.ValidationErrors{
				{Field: "to", Message: "to must be in YYYY-MM-DD format"},
			}
		}
		toDate = parsed
	}

	records, err := s.attendanceRepo.ListByDivision(ctx, d, fromDate, toDate)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := mapAttendanceListToResponse(records)
	for i := range resp.Data {
		s.resolvePhotoURLs(ctx, &resp.Data[i])
	}
	return resp, nil
}

// CreateManualEntry implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	record := attendance.Attendance{
		UserID: req.UserID,
		Date:   date,
		Status: attendance.Status(req.Status),
		Notes:  req.Notes,
	}
	if req.CheckInTime != nil {
		checkIn, _ := validator.IsValidDateTime(*req.CheckInTime)
		record.CheckInTime = &checkIn
	}
	if req.CheckOutTime != nil {
		checkOut, _ := validator.IsValidDateTime(*req.CheckOutTime)
		record.CheckOutTime = &checkOut
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, attendance.ErrRecordExists
		}
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}

// matchGeofence returns the first active location of the division whose
// radius contains the reported point, in creation order. A nil location
// with a nil error means no site matched.
func (s *AttendanceServiceImpl) matchGeofence(ctx context.Context, div division.Division, lat, lon float64) (*location.Location, float64, error) {
	locations, err := s.locationRepo.ListActiveByDivision(ctx, div)
	if err != nil {
		return nil, 0, err
	}

	nearest := -1.0
	for i := range locations {
		result, err := geo.Validate(lat, lon, locations[i].Latitude, locations[i].Longitude, locations[i].RadiusMeters)
		if err != nil {
			return nil, 0, err
		}
		if result.IsValid {
			return &locations[i], result.DistanceMeters, nil
		}
		if nearest < 0 || result.DistanceMeters < nearest {
			nearest = result.DistanceMeters
		}
	}

	if nearest < 0 {
		nearest = 0
	}
	return nil, nearest, nil
}

// verifyFace runs face verification against the user's stored reference
// photo. A user without a reference photo passes with a nil confidence.
// Returns ErrFaceMismatch when confidence falls below the threshold.
func (s *AttendanceServiceImpl) verifyFace(ctx context.Context, u user.User, photo []byte) (*float64, error) {
	if u.FaceReferenceURL == nil {
		return nil, nil
	}

	reference, err := s.fileService.Download(ctx, *u.FaceReferenceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load face reference: %w", err)
	}

	result, err := s.faceVerifier.Verify(ctx, photo, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to verify face: %w", err)
	}
	if !result.IsMatch {
		return nil, &attendance.FaceMatchError{Confidence: result.Confidence}
	}

	return &result.Confidence, nil
}

// resolvePolicy loads the division policy, falling back to the default
// work hours when no policy is configured.
func (s *AttendanceServiceImpl) resolvePolicy(ctx context.Context, div division.Division) division.Policy {
	policy, err := s.policyRepo.GetByDivision(ctx, div)
	if err != nil {
		if !errors.Is(err, division.ErrPolicyNotFound) {
			slog.Error("failed to load division policy, using defaults", "division", div, "error", err)
		}
		return division.Policy{
			Division:      div,
			WorkStartTime: s.cfg.DefaultWorkStart,
			WorkEndTime:   s.cfg.DefaultWorkEnd,
		}
	}
	return policy
}

func (s *AttendanceServiceImpl) notifyFailure(ctx context.Context, userID, title, message string) {
	s.notifier.Dispatch(ctx, notification.Notify{
		UserID:  userID,
		Type:    notification.TypeAttendanceFailed,
		Title:   title,
		Message: message,
	})
}

// resolvePhotoURLs swaps stored photo paths for servable URLs. A
// resolution failure keeps the raw path rather than failing the
// request.
func (s *AttendanceServiceImpl) resolvePhotoURLs(ctx context.Context, resp *attendance.AttendanceResponse) {
	resp.CheckInPhotoURL = s.photoURL(ctx, resp.CheckInPhotoURL)
	resp.CheckOutPhotoURL = s.photoURL(ctx, resp.CheckOutPhotoURL)
}

func (s *AttendanceServiceImpl) photoURL(ctx context.Context, path *string) *string {
	if path == nil {
		return nil
	}
	url, err := s.fileService.GetFileURL(ctx, *path, photoURLExpiry)
	if err != nil {
		slog.Warn("failed to resolve attendance photo URL", "path", *path, "error", err)
		return path
	}
	return &url
}

func (s *AttendanceServiceImpl) cleanupPhoto(ctx context.Context, path string) {
	if err := s.fileService.DeleteFile(ctx, path); err != nil {
		slog.Warn("failed to remove rejected attendance photo", "path", path, "error", err)
	}
}

// dateOf truncates a timestamp to its calendar day in UTC. The unique
// constraint on (user_id, date) keys on this value.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// timeOnDate combines an "HH:MM" time of day with the calendar day of
// the given timestamp.
func timeOnDate(hhmm string, on time.Time) time.Time {
	tod, ok := validator.IsValidTimeOfDay(hhmm)
	if !ok {
		// Malformed policy times fall back to midnight.
		return dateOf(on)
	}
	on = on.UTC()
	return time.Date(on.Year(), on.Month(), on.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		UserID:            att.UserID,
		UserName:          att.UserName,
		UserDivision:      att.UserDivision,
		Date:              att.Date.Format("2006-01-02"),
		CheckInTime:       timePtrToString(att.CheckInTime),
		CheckOutTime:      timePtrToString(att.CheckOutTime),
		CheckInLocation:   att.CheckInLocation,
		CheckOutLocation:  att.CheckOutLocation,
		CheckInPhotoURL:   att.CheckInPhotoURL,
		CheckOutPhotoURL:  att.CheckOutPhotoURL,
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		LateMinutes:       att.LateMinutes,
		OvertimeMinutes:   att.OvertimeMinutes,
		Status:            string(att.Status),
		Notes:             att.Notes,
	}
}

func mapAttendanceListToResponse(records []attendance.Attendance) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}
	return attendance.ListAttendanceResponse{Data: responses}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02T15:04:05Z07:00")
	return &s
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	locationRepo location.LocationRepository,
	policyRepo division.PolicyRepository,
	fileService file.FileService,
	faceVerifier face.Verifier,
	notifier notification.Service,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		locationRepo:   locationRepo,
		policyRepo:     policyRepo,
		fileService:    fileService,
		faceVerifier:   faceVerifier,
		notifier:       notifier,
		cfg:            cfg,
		now:            time.Now,
	}
}
