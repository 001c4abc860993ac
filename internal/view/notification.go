package view

import "time"

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultNotificationLifetime matches the [client] notification_seconds default.
const DefaultNotificationLifetime = 6 * time.Second

// Notification is a transient message shown to the operator.
type Notification struct {
	Message   string
	Severity  Severity
	ExpiresAt time.Time
}

func (n *Notification) expired(now time.Time) bool {
	return n == nil || !now.Before(n.ExpiresAt)
}
