package models

import "time"

type NotificationClass string

const (
	NotificationSuccess NotificationClass = "success"
	NotificationPending NotificationClass = "pending"
	NotificationError   NotificationClass = "error"
)

// Notification is a derived view over tracked transactions. It is never persisted;
// the feed lives in the projector and is rebuilt from scratch on restart.
type Notification struct {
	Signature   string            `json:"signature"`
	Class       NotificationClass `json:"class"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	ExplorerURL string            `json:"explorer_url"`
	CreatedAt   time.Time         `json:"created_at"`
	AutoHide    bool              `json:"auto_hide"`
}
