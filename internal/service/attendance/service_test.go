package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/attendance-backend-go/internal/config"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/location"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/face"
)

// ==================== FAKES ====================

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance // keyed by userID + "|" + date
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (r *fakeAttendanceRepo) key(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	k := r.key(att.UserID, att.Date)
	if _, ok := r.records[k]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	r.nextID++
	att.ID = fmt.Sprintf("att-%d", r.nextID)
	r.records[k] = &att
	return att, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, att := range r.records {
		if att.ID == id {
			return *att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	if att, ok := r.records[r.key(userID, date)]; ok {
		copied := *att
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	k := r.key(att.UserID, att.Date)
	if _, ok := r.records[k]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	r.records[k] = &att
	return nil
}

func (r *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range r.records {
		if att.UserID == userID && !att.Date.Before(from) && !att.Date.After(to) {
			out = append(out, *att)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListByDivision(ctx context.Context, div division.Division, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) GetMonthlySummary(ctx context.Context, userID string, month, year int) (attendance.Summary, error) {
	return attendance.Summary{UserID: userID}, nil
}

func (r *fakeAttendanceRepo) BulkCreateAbsences(ctx context.Context, records []attendance.Attendance) error {
	for _, att := range records {
		k := r.key(att.UserID, att.Date)
		if _, ok := r.records[k]; ok {
			continue
		}
		r.records[k] = &att
	}
	return nil
}

func (r *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	for k, att := range r.records {
		if att.ID == id {
			delete(r.records, k)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

type fakeUserRepo struct {
	users map[string]user.User
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
	var out []user.User
	for _, u := range r.users {
		if u.IsActive && u.Division == div {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }
func (r *fakeUserRepo) Update(ctx context.Context, u user.User) error              { return nil }
func (r *fakeUserRepo) SetFaceReference(ctx context.Context, id string, path string) error {
	return nil
}

type fakeLocationRepo struct {
	locations []location.Location
}

func (r *fakeLocationRepo) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	return loc, nil
}
func (r *fakeLocationRepo) GetByID(ctx context.Context, id string) (location.Location, error) {
	return location.Location{}, location.ErrLocationNotFound
}
func (r *fakeLocationRepo) List(ctx context.Context) ([]location.Location, error) {
	return r.locations, nil
}
func (r *fakeLocationRepo) ListActiveByDivision(ctx context.Context, div division.Division) ([]location.Location, error) {
	var out []location.Location
	for _, loc := range r.locations {
		if loc.IsActive && loc.Division == div {
			out = append(out, loc)
		}
	}
	return out, nil
}
func (r *fakeLocationRepo) Update(ctx context.Context, loc location.Location) error { return nil }
func (r *fakeLocationRepo) Delete(ctx context.Context, id string) error             { return nil }

type fakePolicyRepo struct {
	policies map[division.Division]division.Policy
}

func (r *fakePolicyRepo) GetByDivision(ctx context.Context, div division.Division) (division.Policy, error) {
	if p, ok := r.policies[div]; ok {
		return p, nil
	}
	return division.Policy{}, division.ErrPolicyNotFound
}

func (r *fakePolicyRepo) List(ctx context.Context) ([]division.Policy, error) { return nil, nil }
func (r *fakePolicyRepo) Upsert(ctx context.Context, policy division.Policy) (division.Policy, error) {
	return policy, nil
}

// fakeFileService records uploads and deletions without touching disk.
type fakeFileService struct {
	uploads   []string
	deleted   []string
	reference []byte
}

func (s *fakeFileService) UploadAttendancePhoto(ctx context.Context, userID string, date time.Time, photo []byte, eventType string) (string, error) {
	path := "attendance/" + date.Format("2006-01-02") + "/" + userID + "-" + eventType + ".jpg"
	s.uploads = append(s.uploads, path)
	return path, nil
}

func (s *fakeFileService) UploadFaceReference(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return "faces/" + userID + "/" + filename, nil
}

func (s *fakeFileService) Download(ctx context.Context, path string) ([]byte, error) {
	return s.reference, nil
}

func (s *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost/" + path, nil
}

type fakeNotifier struct {
	sent []notification.Notify
}

func (n *fakeNotifier) Dispatch(ctx context.Context, notify notification.Notify) {
	n.sent = append(n.sent, notify)
}

func (n *fakeNotifier) GetNotifications(ctx context.Context, userID string, unreadOnly bool) (notification.ListNotificationResponse, error) {
	return notification.ListNotificationResponse{}, nil
}
func (n *fakeNotifier) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}
func (n *fakeNotifier) MarkAsRead(ctx context.Context, userID string, notificationID string) error {
	return nil
}
func (n *fakeNotifier) MarkAllAsRead(ctx context.Context, userID string) error { return nil }

// photoFile adapts a bytes.Reader to multipart.File.
type photoFile struct {
	*bytes.Reader
}

func (photoFile) Close() error { return nil }

// ==================== FIXTURES ====================

// Office at Monas, Jakarta.
const (
	officeLat = -6.175392
	officeLon = 106.827153
)

type env struct {
	service        *AttendanceServiceImpl
	attendanceRepo *fakeAttendanceRepo
	userRepo       *fakeUserRepo
	locationRepo   *fakeLocationRepo
	policyRepo     *fakePolicyRepo
	fileService    *fakeFileService
	verifier       *face.StaticVerifier
	notifier       *fakeNotifier
}

func newEnv(t *testing.T, at time.Time) *env {
	t.Helper()

	faceRef := "faces/u1/ref.jpg"
	userRepo := &fakeUserRepo{users: map[string]user.User{
		"u1": {
			ID:               "u1",
			Name:             "Budi Santoso",
			Email:            "budi@presensia.id",
			Division:         division.DivisionFinance,
			Role:             user.RoleUser,
			FaceReferenceURL: &faceRef,
			IsActive:         true,
		},
		"u2": {
			ID:       "u2",
			Name:     "Siti Rahma",
			Email:    "siti@presensia.id",
			Division: division.DivisionFinance,
			Role:     user.RoleUser,
			IsActive: true, // no face reference registered
		},
	}}

	locationRepo := &fakeLocationRepo{locations: []location.Location{
		{
			ID:           "loc1",
			Name:         "Kantor Pusat",
			Latitude:     officeLat,
			Longitude:    officeLon,
			RadiusMeters: 100,
			Division:     division.DivisionFinance,
			IsActive:     true,
		},
	}}

	policyRepo := &fakePolicyRepo{policies: map[division.Division]division.Policy{
		division.DivisionFinance: {
			Division:             division.DivisionFinance,
			WorkStartTime:        "08:00",
			WorkEndTime:          "17:00",
			LateThresholdMinutes: 15,
		},
	}}

	attendanceRepo := newFakeAttendanceRepo()
	fileService := &fakeFileService{reference: []byte("reference-image")}
	verifier := &face.StaticVerifier{Result: face.Result{IsMatch: true, Confidence: 0.93}}
	notifier := &fakeNotifier{}

	svc := NewAttendanceService(
		attendanceRepo, userRepo, locationRepo, policyRepo,
		fileService, verifier, notifier,
		config.AttendanceConfig{DefaultWorkStart: "08:00", DefaultWorkEnd: "17:00"},
	).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return at }

	return &env{
		service:        svc,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		locationRepo:   locationRepo,
		policyRepo:     policyRepo,
		fileService:    fileService,
		verifier:       verifier,
		notifier:       notifier,
	}
}

func checkInRequest(userID string, lat, lon float64) attendance.CheckInRequest {
	return attendance.CheckInRequest{
		UserID:     userID,
		Latitude:   lat,
		Longitude:  lon,
		File:       photoFile{bytes.NewReader([]byte("captured-selfie"))},
		FileHeader: &multipart.FileHeader{Filename: "selfie.jpg", Size: 4096},
	}
}

func checkOutRequest(userID string, lat, lon float64) attendance.CheckOutRequest {
	return attendance.CheckOutRequest{
		UserID:     userID,
		Latitude:   lat,
		Longitude:  lon,
		File:       photoFile{bytes.NewReader([]byte("captured-selfie"))},
		FileHeader: &multipart.FileHeader{Filename: "selfie.jpg", Size: 4096},
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

// ==================== CHECK-IN ====================

func TestCheckIn_OnTime(t *testing.T) {
	e := newEnv(t, at(7, 55))

	resp, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, 0, resp.LateMinutes)
	require.NotNil(t, resp.CheckInTime)
	require.NotNil(t, resp.FaceConfidence)
	assert.InDelta(t, 0.93, *resp.FaceConfidence, 1e-9)
	require.NotNil(t, resp.DistanceMeters)
	assert.Less(t, *resp.DistanceMeters, 100.0)

	// The stored photo path comes back as a servable URL.
	require.NotNil(t, resp.CheckInPhotoURL)
	assert.True(t, strings.HasPrefix(*resp.CheckInPhotoURL, "http://localhost/attendance/"))

	// Success notification dispatched
	require.Len(t, e.notifier.sent, 1)
	assert.Equal(t, notification.TypeAttendanceSuccess, e.notifier.sent[0].Type)
}

func TestCheckIn_WithinGraceIsNotLate(t *testing.T) {
	// 08:10 with a 15-minute threshold: inside the grace window.
	e := newEnv(t, at(8, 10))

	resp, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, 0, resp.LateMinutes)
}

func TestCheckIn_GraceBoundaryIsNotLate(t *testing.T) {
	// Exactly work start + threshold is still on time.
	e := newEnv(t, at(8, 15))

	resp, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, 0, resp.LateMinutes)
}

func TestCheckIn_Late(t *testing.T) {
	// 08:20 with a 15-minute threshold: late, measured from work start.
	e := newEnv(t, at(8, 20))

	resp, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusLate), resp.Status)
	assert.Equal(t, 20, resp.LateMinutes)
}

func TestCheckIn_OutsideGeofence(t *testing.T) {
	e := newEnv(t, at(8, 0))

	// ~5.5km away from the office.
	_, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat+0.05, officeLon))
	require.ErrorIs(t, err, attendance.ErrLocationInvalid)

	// The rejection reports how far away the nearest site was.
	var locationErr *attendance.LocationError
	require.ErrorAs(t, err, &locationErr)
	assert.InDelta(t, 5560, locationErr.DistanceMeters, 20)
	assert.Contains(t, err.Error(), "meters away")

	// Nothing stored, nothing uploaded; failure notification sent.
	record, _ := e.attendanceRepo.GetByUserAndDate(context.Background(), "u1", at(0, 0))
	assert.Nil(t, record)
	assert.Empty(t, e.fileService.uploads)
	require.Len(t, e.notifier.sent, 1)
	assert.Equal(t, notification.TypeAttendanceFailed, e.notifier.sent[0].Type)
	assert.Contains(t, e.notifier.sent[0].Message,
		fmt.Sprintf("%.0f meter", locationErr.DistanceMeters))
}

func TestCheckIn_FaceMismatchRemovesPhoto(t *testing.T) {
	e := newEnv(t, at(8, 0))
	e.verifier.Result = face.Result{IsMatch: false, Confidence: 0.41}

	_, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.ErrorIs(t, err, attendance.ErrFaceMismatch)

	// The photo was uploaded before the face gate and removed after it
	// failed.
	require.Len(t, e.fileService.uploads, 1)
	require.Len(t, e.fileService.deleted, 1)
	assert.Equal(t, e.fileService.uploads[0], e.fileService.deleted[0])

	record, _ := e.attendanceRepo.GetByUserAndDate(context.Background(), "u1", at(0, 0))
	assert.Nil(t, record)

	// The rejection carries the confidence the verifier returned.
	var faceErr *attendance.FaceMatchError
	require.ErrorAs(t, err, &faceErr)
	assert.InDelta(t, 0.41, faceErr.Confidence, 1e-9)

	require.Len(t, e.notifier.sent, 1)
	assert.Equal(t, notification.TypeAttendanceFailed, e.notifier.sent[0].Type)
	assert.Contains(t, e.notifier.sent[0].Message, "41%")
}

func TestCheckIn_NoFaceReferenceSkipsGate(t *testing.T) {
	e := newEnv(t, at(8, 0))
	// Even a failing verifier must not matter for u2.
	e.verifier.Result = face.Result{IsMatch: false, Confidence: 0}

	resp, err := e.service.CheckIn(context.Background(), checkInRequest("u2", officeLat, officeLon))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Nil(t, resp.FaceConfidence)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	e := newEnv(t, at(8, 0))

	_, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	_, err = e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_PolicyFallback(t *testing.T) {
	e := newEnv(t, at(8, 30))
	// No policy for the division: default 08:00-17:00 with no grace.
	delete(e.policyRepo.policies, division.DivisionFinance)

	resp, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusLate), resp.Status)
	assert.Equal(t, 30, resp.LateMinutes)
}

func TestCheckIn_InactiveUser(t *testing.T) {
	e := newEnv(t, at(8, 0))
	u := e.userRepo.users["u1"]
	u.IsActive = false
	e.userRepo.users["u1"] = u

	_, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.ErrorIs(t, err, user.ErrUserInactive)
}

func TestCheckIn_MissingPhotoRejected(t *testing.T) {
	e := newEnv(t, at(8, 0))

	req := checkInRequest("u1", officeLat, officeLon)
	req.FileHeader = nil

	_, err := e.service.CheckIn(context.Background(), req)
	require.Error(t, err)
}

// ==================== CHECK-OUT ====================

func TestCheckOut_WithOvertime(t *testing.T) {
	e := newEnv(t, at(8, 0))

	_, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	// Check out at 19:30 against a 17:00 work end: 150 overtime minutes.
	e.service.now = func() time.Time { return at(19, 30) }

	resp, err := e.service.CheckOut(context.Background(), checkOutRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	assert.Equal(t, 150, resp.OvertimeMinutes)
	require.NotNil(t, resp.CheckOutTime)
	require.NotNil(t, resp.CheckInTime) // check-in data preserved
	require.NotNil(t, resp.CheckOutPhotoURL)
	assert.True(t, strings.HasPrefix(*resp.CheckOutPhotoURL, "http://localhost/attendance/"))
}

func TestCheckOut_BeforeWorkEndNoOvertime(t *testing.T) {
	e := newEnv(t, at(8, 0))

	_, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	e.service.now = func() time.Time { return at(16, 45) }

	resp, err := e.service.CheckOut(context.Background(), checkOutRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	assert.Equal(t, 0, resp.OvertimeMinutes)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	e := newEnv(t, at(17, 0))

	_, err := e.service.CheckOut(context.Background(), checkOutRequest("u1", officeLat, officeLon))
	require.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_AlreadyCheckedOut(t *testing.T) {
	e := newEnv(t, at(8, 0))

	_, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	e.service.now = func() time.Time { return at(17, 10) }
	_, err = e.service.CheckOut(context.Background(), checkOutRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	_, err = e.service.CheckOut(context.Background(), checkOutRequest("u1", officeLat, officeLon))
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_OutsideGeofence(t *testing.T) {
	e := newEnv(t, at(8, 0))

	_, err := e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	e.service.now = func() time.Time { return at(17, 10) }
	_, err = e.service.CheckOut(context.Background(), checkOutRequest("u1", officeLat+0.05, officeLon))
	require.ErrorIs(t, err, attendance.ErrLocationInvalid)

	// The open record is untouched.
	record, _ := e.attendanceRepo.GetByUserAndDate(context.Background(), "u1", at(0, 0))
	require.NotNil(t, record)
	assert.Nil(t, record.CheckOutTime)
}

// ==================== QUERIES ====================

func TestGetToday(t *testing.T) {
	e := newEnv(t, at(8, 0))

	_, err := e.service.GetToday(context.Background(), "u1")
	require.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	_, err = e.service.CheckIn(context.Background(), checkInRequest("u1", officeLat, officeLon))
	require.NoError(t, err)

	resp, err := e.service.GetToday(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, "2026-03-02", resp.Date)
}

func TestCreateManualEntry_DuplicateDate(t *testing.T) {
	e := newEnv(t, at(8, 0))

	req := attendance.ManualEntryRequest{
		UserID: "u1",
		Date:   "2026-03-02",
		Status: string(attendance.StatusSick),
	}

	_, err := e.service.CreateManualEntry(context.Background(), req)
	require.NoError(t, err)

	_, err = e.service.CreateManualEntry(context.Background(), req)
	require.ErrorIs(t, err, attendance.ErrRecordExists)
}

func TestCreateManualEntry_KeepsCheckOutTime(t *testing.T) {
	e := newEnv(t, at(8, 0))

	checkIn := "2026-03-02T08:00:00Z"
	checkOut := "2026-03-02T17:30:00Z"
	resp, err := e.service.CreateManualEntry(context.Background(), attendance.ManualEntryRequest{
		UserID:       "u1",
		Date:         "2026-03-02",
		Status:       string(attendance.StatusPresent),
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.CheckOutTime)

	// The stored record carries the check-out, not just the response.
	record, _ := e.attendanceRepo.GetByUserAndDate(context.Background(), "u1", at(0, 0))
	require.NotNil(t, record)
	require.NotNil(t, record.CheckOutTime)
	assert.Equal(t, "2026-03-02T17:30:00Z", record.CheckOutTime.UTC().Format(time.RFC3339))
}

func TestCheckOut_RecordWithoutCheckInTime(t *testing.T) {
	// A SICK record for today has no check-in time; checking out of it
	// must fail the same way as having no record at all.
	e := newEnv(t, at(17, 0))

	_, err := e.service.CreateManualEntry(context.Background(), attendance.ManualEntryRequest{
		UserID: "u1",
		Date:   "2026-03-02",
		Status: string(attendance.StatusSick),
	})
	require.NoError(t, err)

	_, err = e.service.CheckOut(context.Background(), checkOutRequest("u1", officeLat, officeLon))
	require.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}
