package model

import (
	"math"
	"time"
)

// Expiration kinds.
const (
	ExpirationLicense  = "license"
	ExpirationContract = "contract"
	ExpirationWarranty = "warranty"
	ExpirationDomain   = "domain"
	ExpirationSSL      = "ssl"
)

// Expiration is a standalone dated record (license, contract, warranty,
// domain, certificate) tracked with the same day arithmetic as the
// monitor's SSL/domain signals.
type Expiration struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	ExpiresAt   time.Time `json:"expires_at"`
	WarningDays int       `json:"warning_days"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DaysUntil returns the signed number of whole days between now and the
// expiry timestamp, rounded down. Negative means the record already
// expired; a record that expired earlier today reads -1, not 0.
func (e *Expiration) DaysUntil(now time.Time) int {
	return int(math.Floor(e.ExpiresAt.Sub(now).Hours() / 24))
}

// Expired reports whether the expiry timestamp is in the past.
func (e *Expiration) Expired(now time.Time) bool {
	return e.ExpiresAt.Before(now)
}

// ExpiringSoon reports whether the record expires within WarningDays.
func (e *Expiration) ExpiringSoon(now time.Time) bool {
	expires := e.ExpiresAt
	return expiringSoon(&expires, e.WarningDays, now)
}
