package model

import (
	"time"
)

// Notification represents a notification delivered to a member
type Notification struct {
	ID          int64     `json:"notificationId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	RedirectURL string    `json:"redirectUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	IsRead      bool      `json:"isRead"`
}

// NotificationPage represents one cursor-paginated page of notifications.
// The backend returns hasNext for cursor continuation and the member's
// current unread total alongside the page.
type NotificationPage struct {
	Notifications []Notification `json:"notificationList"`
	HasNext       bool           `json:"hasNext"`
	UnreadCount   int            `json:"unReadCount"`
}

// NextCursor returns the id to pass as cursor for the following page.
// A page without entries has no cursor.
func (p NotificationPage) NextCursor() (int64, bool) {
	if len(p.Notifications) == 0 {
		return 0, false
	}
	return p.Notifications[len(p.Notifications)-1].ID, true
}
