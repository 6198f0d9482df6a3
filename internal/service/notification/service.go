package notification

import (
	"context"
	"log/slog"

	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/email"
)

type NotificationServiceImpl struct {
	notificationRepo notification.Repository
	userRepo         user.UserRepository
	emailService     email.EmailService
}

// Dispatch stores the notification and sends a best-effort email to the
// recipient. Failures are logged and swallowed: a broken mail relay or a
// full notifications table must never fail the business operation that
// triggered the notification.
func (s *NotificationServiceImpl) Dispatch(ctx context.Context, n notification.Notify) {
	record := &notification.Notification{
		UserID:  n.UserID,
		Type:    n.Type,
		Title:   n.Title,
		Message: n.Message,
		Data:    n.Data,
	}

	if err := s.notificationRepo.Create(ctx, record); err != nil {
		slog.Error("failed to store notification",
			"user_id", n.UserID,
			"type", n.Type,
			"error", err)
		return
	}

	u, err := s.userRepo.GetByID(ctx, n.UserID)
	if err != nil {
		slog.Warn("failed to resolve notification recipient",
			"user_id", n.UserID,
			"error", err)
		return
	}

	if err := s.emailService.SendNotification(u.Email, n.Title, n.Message); err != nil {
		slog.Warn("failed to send notification email",
			"user_id", n.UserID,
			"type", n.Type,
			"error", err)
	}
}

func (s *NotificationServiceImpl) GetNotifications(ctx context.Context, userID string, unreadOnly bool) (notification.ListNotificationResponse, error) {
	records, err := s.notificationRepo.GetByUserID(ctx, userID, unreadOnly)
	if err != nil {
		return notification.ListNotificationResponse{}, err
	}

	unreadCount, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return notification.ListNotificationResponse{}, err
	}

	responses := make([]notification.NotificationResponse, 0, len(records))
	for _, n := range records {
		responses = append(responses, mapNotificationToResponse(n))
	}

	return notification.ListNotificationResponse{
		Data:        responses,
		UnreadCount: unreadCount,
	}, nil
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.GetUnreadCount(ctx, userID)
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID string, notificationID string) error {
	return s.notificationRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

func mapNotificationToResponse(n *notification.Notification) notification.NotificationResponse {
	resp := notification.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if n.ReadAt != nil {
		readAt := n.ReadAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ReadAt = &readAt
	}
	return resp
}

func NewNotificationService(
	notificationRepo notification.Repository,
	userRepo user.UserRepository,
	emailService email.EmailService,
) notification.Service {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailService:     emailService,
	}
}
