// Package checker drives monitor checks: it probes due monitors on a
// tick, classifies the probe outcome into a status, persists the result,
// publishes notification events, and records metrics.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/huduglue/watchtower/internal/kafka"
	"github.com/huduglue/watchtower/internal/metrics"
	"github.com/huduglue/watchtower/internal/model"
	"github.com/huduglue/watchtower/internal/probe"
	"github.com/huduglue/watchtower/internal/service"
)

const maxConcurrentChecks = 10

type Prober interface {
	Probe(ctx context.Context, target string) probe.Result
}

type Checker struct {
	svc      service.MonitorService
	prober   Prober
	producer kafka.NotificationProducer
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
}

func NewChecker(svc service.MonitorService, prober Prober, producer kafka.NotificationProducer, logger *slog.Logger, interval time.Duration) *Checker {
	return &Checker{
		svc:      svc,
		prober:   prober,
		producer: producer,
		logger:   logger.With("component", "checker"),
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the tick loop until the context is cancelled.
func (c *Checker) Start(ctx context.Context) {
	c.logger.Info("Checker started")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Checker stopped")
			return
		case <-ticker.C:
			c.CheckDue(ctx)
		}
	}
}

// CheckDue probes every monitor whose interval has elapsed, with a
// bounded number of concurrent checks. Each check operates on its own
// record; there is no ordering across records and a concurrent check of
// the same record is resolved last-writer-wins.
func (c *Checker) CheckDue(ctx context.Context) {
	monitors, err := c.svc.ListDue(ctx, c.now())
	if err != nil {
		c.logger.Error("Failed to fetch due monitors", slog.Any("error", err))
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentChecks)

	for _, m := range monitors {
		wg.Add(1)
		go func(m model.Monitor) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := c.Check(ctx, &m); err != nil {
				c.logger.Error("Check failed to persist",
					slog.String("monitor_id", m.ID),
					slog.Any("error", err),
				)
			}
		}(m)
	}

	wg.Wait()
}

// Check probes one monitor and persists the outcome. Probe failures are
// absorbed into the monitor's status fields; the returned error covers
// persistence only.
func (c *Checker) Check(ctx context.Context, m *model.Monitor) error {
	start := c.now()
	prev := snapshotSignals(m, start)
	res := c.prober.Probe(ctx, m.URL)
	applyResult(m, res, c.now())

	metrics.MonitorCheckStatus.WithLabelValues(m.Status).Inc()
	metrics.MonitorCheckDuration.WithLabelValues(m.Status).Observe(c.now().Sub(start).Seconds())

	c.logger.Info("Monitor checked",
		slog.String("monitor_id", m.ID),
		slog.String("url", m.URL),
		slog.String("status", m.Status),
		slog.Int("status_code", m.LastStatusCode),
	)

	if err := c.svc.RecordCheck(ctx, m); err != nil {
		return err
	}

	c.notify(ctx, m, prev)
	return nil
}

// signalState captures the alertable conditions before a check so that
// notify fires on transitions only.
type signalState struct {
	down       bool
	sslSoon    bool
	domainSoon bool
}

func snapshotSignals(m *model.Monitor, now time.Time) signalState {
	return signalState{
		down:       m.Status == model.StatusDown,
		sslSoon:    m.SSLExpiringSoon(now),
		domainSoon: m.DomainExpiringSoon(now),
	}
}

// applyResult overwrites the monitor's observed state from a probe
// outcome. Always stamps the check time; the whole field group is
// rewritten together so the record never carries a partial update.
func applyResult(m *model.Monitor, res probe.Result, now time.Time) {
	checked := now
	m.LastCheckedAt = &checked

	switch r := res.(type) {
	case probe.SecurityRejected:
		m.Status = model.StatusError
		m.LastError = "Security: " + r.Reason
		m.LastStatusCode = 0
		m.LastResponseTimeMS = 0

	case probe.TransportError:
		m.Status = model.StatusDown
		m.LastError = r.Message
		m.LastStatusCode = 0
		m.LastResponseTimeMS = 0

	case probe.Success:
		m.LastStatusCode = r.StatusCode
		m.LastResponseTimeMS = r.Elapsed.Milliseconds()

		switch {
		case r.StatusCode >= 200 && r.StatusCode < 300:
			m.Status = model.StatusActive
			m.LastError = ""
		case r.StatusCode >= 300 && r.StatusCode < 400:
			m.Status = model.StatusWarning
			m.LastError = fmt.Sprintf("Redirect: %d", r.StatusCode)
		default:
			m.Status = model.StatusDown
			m.LastError = fmt.Sprintf("HTTP %d", r.StatusCode)
		}

		if r.TLS != nil {
			m.SSLEnabled = true
			expires, issued := r.TLS.ExpiresAt, r.TLS.IssuedAt
			m.SSLExpiresAt = &expires
			m.SSLIssuedAt = &issued
			m.SSLIssuer = r.TLS.Issuer
			m.SSLSubject = r.TLS.Subject
			m.SSLSerial = r.TLS.Serial
			m.SSLVersion = r.TLS.Version
		} else if r.TLSErr == "" {
			// Plain HTTP target: drop certificate facts left over from an
			// earlier https configuration. A failed inspection keeps the
			// last observed certificate instead.
			m.SSLEnabled = false
			m.SSLExpiresAt = nil
			m.SSLIssuedAt = nil
			m.SSLIssuer = ""
			m.SSLSubject = ""
			m.SSLSerial = ""
			m.SSLVersion = ""
		}
		// A failed certificate inspection is a secondary signal: it is
		// appended to the error message without downgrading the
		// HTTP-derived status.
		if r.TLSErr != "" {
			m.LastError += " SSL error: " + r.TLSErr
		}
	}
}

// notify publishes events when a monitor transitions to down or an
// expiry newly enters its warning window, honoring the monitor's
// notification toggles. A condition that already held before the check
// stays silent, so a monitor that remains down does not re-alert on
// every tick.
func (c *Checker) notify(ctx context.Context, m *model.Monitor, prev signalState) {
	if c.producer == nil {
		return
	}
	now := c.now()

	if m.NotifyOnDown && m.Status == model.StatusDown && !prev.down {
		c.publish(ctx, m, model.NotifyMonitorDown,
			fmt.Sprintf("%s is down: %s", m.Name, m.LastError))
	}
	if m.NotifyOnSSLExpiry && m.SSLExpiringSoon(now) && !prev.sslSoon {
		c.publish(ctx, m, model.NotifySSLExpiry,
			fmt.Sprintf("%s: SSL certificate expires %s", m.Name, m.SSLExpiresAt.Format(time.RFC3339)))
	}
	if m.NotifyOnDomainExpiry && m.DomainExpiringSoon(now) && !prev.domainSoon {
		c.publish(ctx, m, model.NotifyDomainExpiry,
			fmt.Sprintf("%s: domain registration expires %s", m.Name, m.DomainExpiresAt.Format(time.RFC3339)))
	}
}

func (c *Checker) publish(ctx context.Context, m *model.Monitor, typ, message string) {
	notif := model.Notification{
		MonitorID: m.ID,
		OrgID:     m.OrgID,
		Type:      typ,
		Message:   message,
		Status:    m.Status,
		CreatedAt: c.now(),
	}
	if err := c.producer.Publish(ctx, notif); err != nil {
		c.logger.Error("Failed to publish notification",
			slog.String("monitor_id", m.ID),
			slog.String("type", typ),
			slog.Any("error", err),
		)
		return
	}
	metrics.NotificationsPublished.WithLabelValues(typ).Inc()
}
