package domain

import "time"

// NotificationState tracks a notification through its display lifecycle.
type NotificationState string

const (
	NotificationEntering NotificationState = "entering"
	NotificationVisible  NotificationState = "visible"
	NotificationExiting  NotificationState = "exiting"
	NotificationRemoved  NotificationState = "removed"
)

// Notification is a transient, auto-dismissing message.
type Notification struct {
	ID        string
	Message   string
	CreatedAt time.Time
	State     NotificationState
}
