package model

import "time"

// Notification types published to the notification topic.
const (
	NotifyMonitorDown  = "monitor_down"
	NotifySSLExpiry    = "ssl_expiry"
	NotifyDomainExpiry = "domain_expiry"
)

// Notification is the event published when a monitor goes down or an
// expiry threshold is crossed. It matches the message model consumed by
// the notification service.
type Notification struct {
	MonitorID string    `json:"monitor_id"`
	OrgID     string    `json:"org_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
