package notification

import (
	"context"
)

// Service defines the notification service interface. Dispatch is fire
// and forget: failures are logged, never propagated to the caller.
type Service interface {
	// Dispatch stores the notification and sends a best-effort email.
	Dispatch(ctx context.Context, n Notify)

	GetNotifications(ctx context.Context, userID string, unreadOnly bool) (ListNotificationResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
}
