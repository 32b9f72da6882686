package model

import (
	"testing"
	"time"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestExpiration_DaysUntil(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      int
	}{
		{"ten days out", now.AddDate(0, 0, 10), 10},
		{"tomorrow", now.AddDate(0, 0, 1), 1},
		{"later today", now.Add(6 * time.Hour), 0},
		{"expired earlier today", now.Add(-12 * time.Hour), -1},
		{"expired yesterday", now.AddDate(0, 0, -1), -1},
		{"expired a month ago", now.AddDate(0, -1, 0), -28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Expiration{ExpiresAt: tt.expiresAt}
			if got := e.DaysUntil(now); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpiration_Expired(t *testing.T) {
	past := &Expiration{ExpiresAt: now.Add(-time.Minute)}
	future := &Expiration{ExpiresAt: now.Add(time.Minute)}

	if !past.Expired(now) {
		t.Error("past record not reported as expired")
	}
	if future.Expired(now) {
		t.Error("future record reported as expired")
	}
}

func TestExpiration_ExpiringSoon(t *testing.T) {
	tests := []struct {
		name        string
		expiresAt   time.Time
		warningDays int
		want        bool
	}{
		{"inside window", now.AddDate(0, 0, 10), 30, true},
		{"outside window", now.AddDate(0, 0, 10), 5, false},
		{"exactly at window edge", now.AddDate(0, 0, 30), 30, true},
		{"already expired", now.AddDate(0, 0, -2), 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Expiration{ExpiresAt: tt.expiresAt, WarningDays: tt.warningDays}
			if got := e.ExpiringSoon(now); got != tt.want {
				t.Errorf("ExpiringSoon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonitor_SSLExpiringSoon(t *testing.T) {
	in10 := now.AddDate(0, 0, 10)

	tests := []struct {
		name        string
		expiresAt   *time.Time
		warningDays int
		want        bool
	}{
		{"certificate expiring in 10 days, 30 day window", &in10, 30, true},
		{"certificate expiring in 10 days, 5 day window", &in10, 5, false},
		{"no certificate observed", nil, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Monitor{SSLExpiresAt: tt.expiresAt, SSLWarningDays: tt.warningDays}
			if got := m.SSLExpiringSoon(now); got != tt.want {
				t.Errorf("SSLExpiringSoon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonitor_Due(t *testing.T) {
	checked := now.Add(-10 * time.Minute)

	tests := []struct {
		name    string
		monitor Monitor
		want    bool
	}{
		{
			name:    "never checked",
			monitor: Monitor{Enabled: true, CheckIntervalMinutes: 5},
			want:    true,
		},
		{
			name:    "interval elapsed",
			monitor: Monitor{Enabled: true, CheckIntervalMinutes: 5, LastCheckedAt: &checked},
			want:    true,
		},
		{
			name:    "interval not elapsed",
			monitor: Monitor{Enabled: true, CheckIntervalMinutes: 30, LastCheckedAt: &checked},
			want:    false,
		},
		{
			name:    "disabled",
			monitor: Monitor{Enabled: false, CheckIntervalMinutes: 5},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.monitor.Due(now); got != tt.want {
				t.Errorf("Due() = %v, want %v", got, tt.want)
			}
		})
	}
}
