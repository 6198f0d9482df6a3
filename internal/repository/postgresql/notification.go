package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository.
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	var data []byte
	if n.Data != nil {
		var err error
		data, err = json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
	}

	query := `
		INSERT INTO notifications (user_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, n.UserID, n.Type, n.Title, n.Message, data).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// GetByID implements notification.Repository.
func (r *notificationRepository) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications
		WHERE id = $1
	`

	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification by ID: %w", err)
	}

	return n, nil
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	var data []byte
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &n.IsRead, &n.ReadAt, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
		}
	}
	return &n, nil
}

// GetByUserID implements notification.Repository.
func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, unreadOnly bool) ([]*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT 100`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// GetUnreadCount implements notification.Repository.
func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead implements notification.Repository.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	tag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead implements notification.Repository.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}
