package model

import "time"

// Monitor statuses. Status is a pure function of the most recent probe
// outcome and is overwritten in full on every check.
const (
	StatusActive  = "active"
	StatusWarning = "warning"
	StatusDown    = "down"
	StatusUnknown = "unknown"
	StatusError   = "error"
)

type contextKey string

// ContextOrgIDKey carries the authenticated organization ID through a
// request context. Set by the auth middleware, read by the service layer.
const ContextOrgIDKey contextKey = "org_id"

// Monitor represents one watched endpoint belonging to an organization.
type Monitor struct {
	ID    string `json:"id"`
	OrgID string `json:"org_id"`
	Name  string `json:"name"`
	URL   string `json:"url"`

	// Configuration, edited by users.
	CheckIntervalMinutes int  `json:"check_interval_minutes"`
	Enabled              bool `json:"enabled"`
	SSLWarningDays       int  `json:"ssl_warning_days"`
	DomainWarningDays    int  `json:"domain_warning_days"`
	NotifyOnDown         bool `json:"notify_on_down"`
	NotifyOnSSLExpiry    bool `json:"notify_on_ssl_expiry"`
	NotifyOnDomainExpiry bool `json:"notify_on_domain_expiry"`

	// Observed state, overwritten atomically as a group on every check.
	LastCheckedAt      *time.Time `json:"last_checked_at,omitempty"`
	LastStatusCode     int        `json:"last_status_code"`
	LastResponseTimeMS int64      `json:"last_response_time_ms"`
	Status             string     `json:"status"`
	LastError          string     `json:"last_error"`

	// SSL facts, populated only when the target is HTTPS and the
	// handshake succeeds.
	SSLEnabled   bool       `json:"ssl_enabled"`
	SSLExpiresAt *time.Time `json:"ssl_expires_at,omitempty"`
	SSLIssuedAt  *time.Time `json:"ssl_issued_at,omitempty"`
	SSLIssuer    string     `json:"ssl_issuer,omitempty"`
	SSLSubject   string     `json:"ssl_subject,omitempty"`
	SSLSerial    string     `json:"ssl_serial,omitempty"`
	SSLVersion   string     `json:"ssl_version,omitempty"`

	// Domain facts, populated by an out-of-band WHOIS process.
	DomainExpiresAt *time.Time `json:"domain_expires_at,omitempty"`
	DomainRegistrar string     `json:"domain_registrar,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SSLExpiringSoon reports whether the monitor's certificate expires
// within SSLWarningDays of now. False when no expiry has been observed.
func (m *Monitor) SSLExpiringSoon(now time.Time) bool {
	return expiringSoon(m.SSLExpiresAt, m.SSLWarningDays, now)
}

// DomainExpiringSoon reports whether the monitor's domain registration
// expires within DomainWarningDays of now.
func (m *Monitor) DomainExpiringSoon(now time.Time) bool {
	return expiringSoon(m.DomainExpiresAt, m.DomainWarningDays, now)
}

// Due reports whether the monitor should be checked again: either it has
// never been checked, or its interval has elapsed since the last check.
func (m *Monitor) Due(now time.Time) bool {
	if !m.Enabled {
		return false
	}
	if m.LastCheckedAt == nil {
		return true
	}
	interval := time.Duration(m.CheckIntervalMinutes) * time.Minute
	return !now.Before(m.LastCheckedAt.Add(interval))
}

func expiringSoon(expiresAt *time.Time, warningDays int, now time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return !expiresAt.After(now.AddDate(0, 0, warningDays))
}
