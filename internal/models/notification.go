package model

import "time"

type NotificationType string

const (
	NotificationTaskDue     NotificationType = "task_due"
	NotificationTaskShared  NotificationType = "task_shared"
	NotificationTaskUpdated NotificationType = "task_updated"
)

// Notification is append-only except for the Read flag. TaskID is a
// back-reference only; deleting the task does not remove the notification.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	TaskID    string           `json:"task_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
