package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAttendanceFailed  NotificationType = "attendance_failed"
	TypeAttendanceSuccess NotificationType = "attendance_success"
	TypeSalaryReleased    NotificationType = "salary_released"
	TypeOvertimeApproved  NotificationType = "overtime_approved"
	TypeOvertimeRejected  NotificationType = "overtime_rejected"
	TypeLeaveApproved     NotificationType = "leave_approved"
	TypeLeaveRejected     NotificationType = "leave_rejected"
	TypeGeneral           NotificationType = "general"
)

// Notification represents a notification entity
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	Data      map[string]interface{}
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}
