package models

import "time"

// NotificationType groups activity feed entries by the area they came from.
type NotificationType string

const (
	NotificationBill     NotificationType = "bill"
	NotificationRoommate NotificationType = "roommate"
)

// Notification is one entry in the household activity feed.
type Notification struct {
	ID        string
	Message   string
	Type      NotificationType
	Read      bool
	CreatedAt time.Time
}
