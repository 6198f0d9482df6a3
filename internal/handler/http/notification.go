package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/presensia/attendance-backend-go/internal/domain/notification"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notificationService: notificationService,
	}
}

// List implements NotificationHandler.
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	result, err := h.notificationService.GetNotifications(r.Context(), userID, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UnreadCount implements NotificationHandler.
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	count, err := h.notificationService.GetUnreadCount(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unread_count": count})
}

// MarkAsRead implements NotificationHandler.
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.notificationService.MarkAsRead(r.Context(), userID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// MarkAllAsRead implements NotificationHandler.
func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.notificationService.MarkAllAsRead(r.Context(), userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}
