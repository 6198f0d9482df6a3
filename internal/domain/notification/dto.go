package notification

// Notify describes a notification to be dispatched: a stored row plus a
// best-effort email.
type Notify struct {
	UserID  string
	Type    NotificationType
	Title   string
	Message string
	Data    map[string]interface{}
}

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *string                `json:"read_at,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

type ListNotificationResponse struct {
	Data        []NotificationResponse `json:"data"`
	UnreadCount int                    `json:"unread_count"`
}
