package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/leave"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leaveRepo      leave.LeaveRepository
	attendanceRepo attendance.AttendanceRepository
	notifier       notification.Service
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	created, err := s.leaveRepo.Create(ctx, leave.Leave{
		UserID:    req.UserID,
		Type:      leave.Type(req.Type),
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return mapLeaveToResponse(created), nil
}

// GetMyLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyLeave(ctx context.Context, userID string) (leave.ListLeaveResponse, error) {
	requests, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	return mapLeaveListToResponse(requests), nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context) (leave.ListLeaveResponse, error) {
	requests, err := s.leaveRepo.ListPending(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	return mapLeaveListToResponse(requests), nil
}

// Decide implements leave.LeaveService. Approval writes a LEAVE or SICK
// attendance record for every day in the range; days that already have a
// record are left untouched.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	lv, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if lv.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrAlreadyDecided
	}

	now := time.Now()
	lv.Status = leave.Status(req.Status)
	lv.ApprovedBy = &req.ApproverID
	lv.ApprovedAt = &now
	lv.Notes = req.Notes

	if err := s.leaveRepo.UpdateStatus(ctx, lv); err != nil {
		return leave.LeaveResponse{}, err
	}

	if lv.Status == leave.StatusApproved {
		if err := s.markLeaveDays(ctx, lv); err != nil {
			return leave.LeaveResponse{}, fmt.Errorf("failed to mark leave days: %w", err)
		}
	}

	notifyType := notification.TypeLeaveApproved
	title := "Cuti disetujui"
	message := fmt.Sprintf("Pengajuan %s Anda dari %s sampai %s telah disetujui.",
		leaveTypeLabel(lv.Type), lv.StartDate.Format("2006-01-02"), lv.EndDate.Format("2006-01-02"))
	if lv.Status == leave.StatusRejected {
		notifyType = notification.TypeLeaveRejected
		title = "Cuti ditolak"
		message = fmt.Sprintf("Pengajuan %s Anda dari %s sampai %s ditolak.",
			leaveTypeLabel(lv.Type), lv.StartDate.Format("2006-01-02"), lv.EndDate.Format("2006-01-02"))
	}
	s.notifier.Dispatch(ctx, notification.Notify{
		UserID:  lv.UserID,
		Type:    notifyType,
		Title:   title,
		Message: message,
		Data:    map[string]interface{}{"leave_id": lv.ID},
	})

	return mapLeaveToResponse(lv), nil
}

// markLeaveDays writes one attendance record per weekday in the approved
// range. Weekends are skipped; they are not working days to begin with.
func (s *LeaveServiceImpl) markLeaveDays(ctx context.Context, lv leave.Leave) error {
	status := attendance.StatusLeave
	if lv.Type == leave.TypeSick {
		status = attendance.StatusSick
	}

	var records []attendance.Attendance
	for day := lv.StartDate; !day.After(lv.EndDate); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		records = append(records, attendance.Attendance{
			UserID: lv.UserID,
			Date:   day,
			Status: status,
			Notes:  &lv.Reason,
		})
	}

	if len(records) == 0 {
		return nil
	}
	return s.attendanceRepo.BulkCreateAbsences(ctx, records)
}

func leaveTypeLabel(t leave.Type) string {
	if t == leave.TypeSick {
		return "izin sakit"
	}
	return "cuti"
}

func mapLeaveToResponse(lv leave.Leave) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:           lv.ID,
		UserID:       lv.UserID,
		UserName:     lv.UserName,
		UserDivision: lv.UserDivision,
		Type:         string(lv.Type),
		StartDate:    lv.StartDate.Format("2006-01-02"),
		EndDate:      lv.EndDate.Format("2006-01-02"),
		Reason:       lv.Reason,
		Status:       string(lv.Status),
		ApprovedBy:   lv.ApprovedBy,
		Notes:        lv.Notes,
	}
	if lv.ApprovedAt != nil {
		approvedAt := lv.ApprovedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ApprovedAt = &approvedAt
	}
	return resp
}

func mapLeaveListToResponse(requests []leave.Leave) leave.ListLeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, lv := range requests {
		responses = append(responses, mapLeaveToResponse(lv))
	}
	return leave.ListLeaveResponse{Data: responses}
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	notifier notification.Service,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		notifier:       notifier,
	}
}
