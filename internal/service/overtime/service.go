package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/overtime"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type OvertimeServiceImpl struct {
	overtimeRepo overtime.OvertimeRepository
	notifier     notification.Service
}

// Submit implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Submit(ctx context.Context, req overtime.SubmitOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)

	created, err := s.overtimeRepo.Create(ctx, overtime.Overtime{
		UserID: req.UserID,
		Date:   date,
		Hours:  req.Hours,
		Reason: req.Reason,
		Status: overtime.StatusPending,
	})
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	return mapOvertimeToResponse(created), nil
}

// GetMyOvertime implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) GetMyOvertime(ctx context.Context, userID string) (overtime.ListOvertimeResponse, error) {
	requests, err := s.overtimeRepo.ListByUser(ctx, userID)
	if err != nil {
		return overtime.ListOvertimeResponse{}, err
	}

	return mapOvertimeListToResponse(requests), nil
}

// ListPending implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ListPending(ctx context.Context) (overtime.ListOvertimeResponse, error) {
	requests, err := s.overtimeRepo.ListPending(ctx)
	if err != nil {
		return overtime.ListOvertimeResponse{}, err
	}

	return mapOvertimeListToResponse(requests), nil
}

// Decide implements overtime.OvertimeService. A request is decided at
// most once; the requester is notified of the outcome.
func (s *OvertimeServiceImpl) Decide(ctx context.Context, req overtime.DecideOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	ot, err := s.overtimeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if ot.Status != overtime.StatusPending {
		return overtime.OvertimeResponse{}, overtime.ErrAlreadyDecided
	}

	now := time.Now()
	ot.Status = overtime.Status(req.Status)
	ot.ApprovedBy = &req.ApproverID
	ot.ApprovedAt = &now
	ot.Notes = req.Notes

	if err := s.overtimeRepo.UpdateStatus(ctx, ot); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	notifyType := notification.TypeOvertimeApproved
	title := "Lembur disetujui"
	message := fmt.Sprintf("Pengajuan lembur Anda pada %s (%.1f jam) telah disetujui.",
		ot.Date.Format("2006-01-02"), ot.Hours)
	if ot.Status == overtime.StatusRejected {
		notifyType = notification.TypeOvertimeRejected
		title = "Lembur ditolak"
		message = fmt.Sprintf("Pengajuan lembur Anda pada %s (%.1f jam) ditolak.",
			ot.Date.Format("2006-01-02"), ot.Hours)
	}
	s.notifier.Dispatch(ctx, notification.Notify{
		UserID:  ot.UserID,
		Type:    notifyType,
		Title:   title,
		Message: message,
		Data:    map[string]interface{}{"overtime_id": ot.ID},
	})

	return mapOvertimeToResponse(ot), nil
}

func mapOvertimeToResponse(ot overtime.Overtime) overtime.OvertimeResponse {
	resp := overtime.OvertimeResponse{
		ID:           ot.ID,
		UserID:       ot.UserID,
		UserName:     ot.UserName,
		UserDivision: ot.UserDivision,
		Date:         ot.Date.Format("2006-01-02"),
		Hours:        ot.Hours,
		Reason:       ot.Reason,
		Status:       string(ot.Status),
		ApprovedBy:   ot.ApprovedBy,
		Notes:        ot.Notes,
	}
	if ot.ApprovedAt != nil {
		approvedAt := ot.ApprovedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ApprovedAt = &approvedAt
	}
	return resp
}

func mapOvertimeListToResponse(requests []overtime.Overtime) overtime.ListOvertimeResponse {
	responses := make([]overtime.OvertimeResponse, 0, len(requests))
	for _, ot := range requests {
		responses = append(responses, mapOvertimeToResponse(ot))
	}
	return overtime.ListOvertimeResponse{Data: responses}
}

func NewOvertimeService(
	overtimeRepo overtime.OvertimeRepository,
	notifier notification.Service,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		overtimeRepo: overtimeRepo,
		notifier:     notifier,
	}
}
