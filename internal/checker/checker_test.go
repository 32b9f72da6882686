package checker

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/huduglue/watchtower/internal/kafka"
	"github.com/huduglue/watchtower/internal/model"
	"github.com/huduglue/watchtower/internal/probe"
	"github.com/huduglue/watchtower/internal/service"
)

var checkTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestApplyResult_Classification(t *testing.T) {
	tests := []struct {
		name       string
		res        probe.Result
		wantStatus string
		wantError  string
		wantCode   int
	}{
		{
			name:       "2xx is active with error cleared",
			res:        probe.Success{StatusCode: 200, Elapsed: 120 * time.Millisecond},
			wantStatus: model.StatusActive,
			wantError:  "",
			wantCode:   200,
		},
		{
			name:       "204 is active",
			res:        probe.Success{StatusCode: 204},
			wantStatus: model.StatusActive,
			wantError:  "",
			wantCode:   204,
		},
		{
			name:       "redirect is warning",
			res:        probe.Success{StatusCode: 301},
			wantStatus: model.StatusWarning,
			wantError:  "Redirect: 301",
			wantCode:   301,
		},
		{
			name:       "client error is down",
			res:        probe.Success{StatusCode: 404},
			wantStatus: model.StatusDown,
			wantError:  "HTTP 404",
			wantCode:   404,
		},
		{
			name:       "server error is down",
			res:        probe.Success{StatusCode: 503},
			wantStatus: model.StatusDown,
			wantError:  "HTTP 503",
			wantCode:   503,
		},
		{
			name:       "timeout is down",
			res:        probe.TransportError{Kind: probe.KindTimeout, Message: "Connection timeout"},
			wantStatus: model.StatusDown,
			wantError:  "Connection timeout",
		},
		{
			name:       "connection failure is down",
			res:        probe.TransportError{Kind: probe.KindConnection, Message: "Connection error: connection refused"},
			wantStatus: model.StatusDown,
			wantError:  "Connection error: connection refused",
		},
		{
			name:       "rejected target is error",
			res:        probe.SecurityRejected{Reason: "internal.corp resolves to disallowed address 10.0.0.5"},
			wantStatus: model.StatusError,
			wantError:  "Security: internal.corp resolves to disallowed address 10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &model.Monitor{LastError: "stale error", LastStatusCode: 999}
			applyResult(m, tt.res, checkTime)

			if m.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", m.Status, tt.wantStatus)
			}
			if m.LastError != tt.wantError {
				t.Errorf("LastError = %q, want %q", m.LastError, tt.wantError)
			}
			if m.LastStatusCode != tt.wantCode {
				t.Errorf("LastStatusCode = %d, want %d", m.LastStatusCode, tt.wantCode)
			}
			if m.LastCheckedAt == nil || !m.LastCheckedAt.Equal(checkTime) {
				t.Errorf("LastCheckedAt = %v, want %v", m.LastCheckedAt, checkTime)
			}
		})
	}
}

func TestApplyResult_ResponseTime(t *testing.T) {
	m := &model.Monitor{}
	applyResult(m, probe.Success{StatusCode: 200, Elapsed: 1234 * time.Millisecond}, checkTime)
	if m.LastResponseTimeMS != 1234 {
		t.Errorf("LastResponseTimeMS = %d, want 1234", m.LastResponseTimeMS)
	}
}

func TestApplyResult_TLSFacts(t *testing.T) {
	expires := checkTime.AddDate(0, 2, 0)
	issued := checkTime.AddDate(0, -1, 0)

	m := &model.Monitor{}
	applyResult(m, probe.Success{
		StatusCode: 200,
		TLS: &probe.CertInfo{
			ExpiresAt: expires,
			IssuedAt:  issued,
			Issuer:    "Let's Encrypt",
			Subject:   "example.com",
			Serial:    "1234567890",
			Version:   "TLS 1.3",
		},
	}, checkTime)

	if !m.SSLEnabled {
		t.Error("SSLEnabled = false, want true")
	}
	if m.SSLExpiresAt == nil || !m.SSLExpiresAt.Equal(expires) {
		t.Errorf("SSLExpiresAt = %v, want %v", m.SSLExpiresAt, expires)
	}
	if m.SSLIssuer != "Let's Encrypt" || m.SSLSubject != "example.com" {
		t.Errorf("issuer/subject = %q/%q", m.SSLIssuer, m.SSLSubject)
	}
	if m.SSLVersion != "TLS 1.3" {
		t.Errorf("SSLVersion = %q", m.SSLVersion)
	}
}

func TestApplyResult_PlainHTTPClearsStaleSSLFacts(t *testing.T) {
	expires := checkTime.AddDate(0, 1, 0)
	m := &model.Monitor{
		SSLEnabled:   true,
		SSLExpiresAt: &expires,
		SSLIssuer:    "Let's Encrypt",
		SSLSubject:   "example.com",
		SSLSerial:    "1234567890",
		SSLVersion:   "TLS 1.3",
	}
	applyResult(m, probe.Success{StatusCode: 200}, checkTime)

	if m.SSLEnabled {
		t.Error("SSLEnabled still true after switching to plain http")
	}
	if m.SSLExpiresAt != nil || m.SSLIssuer != "" || m.SSLSerial != "" || m.SSLVersion != "" {
		t.Errorf("stale certificate facts survived: %+v", m)
	}
}

func TestApplyResult_InspectionFailureKeepsLastCertificate(t *testing.T) {
	expires := checkTime.AddDate(0, 1, 0)
	m := &model.Monitor{SSLEnabled: true, SSLExpiresAt: &expires}
	applyResult(m, probe.Success{StatusCode: 200, TLSErr: "handshake timeout"}, checkTime)

	if !m.SSLEnabled || m.SSLExpiresAt == nil {
		t.Error("last observed certificate dropped on a failed inspection")
	}
}

func TestApplyResult_TLSErrorDoesNotDowngradeStatus(t *testing.T) {
	m := &model.Monitor{}
	applyResult(m, probe.Success{
		StatusCode: 200,
		TLSErr:     "x509: certificate signed by unknown authority",
	}, checkTime)

	if m.Status != model.StatusActive {
		t.Errorf("Status = %q, want active: TLS inspection failure is a secondary signal", m.Status)
	}
	if !strings.Contains(m.LastError, "SSL error: x509") {
		t.Errorf("LastError = %q, want appended SSL error", m.LastError)
	}
	if m.SSLEnabled {
		t.Error("SSLEnabled = true although the handshake failed")
	}
}

// stubProber returns a fixed result without touching the network.
type stubProber struct {
	res probe.Result
}

func (s *stubProber) Probe(ctx context.Context, target string) probe.Result {
	return s.res
}

func newTestChecker(t *testing.T, res probe.Result) (*Checker, *service.MockMonitorService, *kafka.MockNotificationProducer) {
	svc := service.NewMockMonitorService(t)
	producer := kafka.NewMockNotificationProducer(t)
	c := NewChecker(svc, &stubProber{res: res}, producer, slog.Default(), time.Minute)
	c.now = func() time.Time { return checkTime }
	return c, svc, producer
}

func TestCheck_PersistsResult(t *testing.T) {
	c, svc, _ := newTestChecker(t, probe.Success{StatusCode: 200})
	svc.On("RecordCheck", mock.Anything, mock.Anything).Return(nil).Once()

	m := &model.Monitor{ID: "m1", URL: "http://example.com/"}
	if err := c.Check(context.Background(), m); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if m.Status != model.StatusActive {
		t.Errorf("Status = %q, want active", m.Status)
	}
}

func TestCheck_NotifiesOnDown(t *testing.T) {
	c, svc, producer := newTestChecker(t, probe.Success{StatusCode: 500})
	svc.On("RecordCheck", mock.Anything, mock.Anything).Return(nil).Once()
	producer.On("Publish", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
		return n.Type == model.NotifyMonitorDown && n.MonitorID == "m1"
	})).Return(nil).Once()

	m := &model.Monitor{ID: "m1", Name: "site", URL: "http://example.com/", NotifyOnDown: true}
	if err := c.Check(context.Background(), m); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
}

func TestCheck_AlreadyDownMonitorDoesNotRealert(t *testing.T) {
	c, svc, _ := newTestChecker(t, probe.Success{StatusCode: 500})
	svc.On("RecordCheck", mock.Anything, mock.Anything).Return(nil).Times(2)

	m := &model.Monitor{ID: "m1", Name: "site", URL: "http://example.com/", Status: model.StatusDown, NotifyOnDown: true}
	for i := 0; i < 2; i++ {
		if err := c.Check(context.Background(), m); err != nil {
			t.Fatalf("Check() error = %v", err)
		}
	}
	// the producer mock asserts no unexpected Publish calls via Cleanup
}

func TestCheck_RealertsAfterRecovery(t *testing.T) {
	svc := service.NewMockMonitorService(t)
	producer := kafka.NewMockNotificationProducer(t)
	stub := &stubProber{res: probe.Success{StatusCode: 200}}
	c := NewChecker(svc, stub, producer, slog.Default(), time.Minute)
	c.now = func() time.Time { return checkTime }

	svc.On("RecordCheck", mock.Anything, mock.Anything).Return(nil).Times(2)
	producer.On("Publish", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
		return n.Type == model.NotifyMonitorDown
	})).Return(nil).Once()

	m := &model.Monitor{ID: "m1", Name: "site", URL: "http://example.com/", Status: model.StatusDown, NotifyOnDown: true}

	// recovery check stays silent
	if err := c.Check(context.Background(), m); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if m.Status != model.StatusActive {
		t.Fatalf("Status = %q, want active after recovery", m.Status)
	}

	// going down again fires exactly one notification
	stub.res = probe.Success{StatusCode: 500}
	if err := c.Check(context.Background(), m); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
}

func TestCheck_SSLAlreadyInsideWindowDoesNotRealert(t *testing.T) {
	expires := checkTime.AddDate(0, 0, 5)
	res := probe.Success{
		StatusCode: 200,
		TLS:        &probe.CertInfo{ExpiresAt: expires, IssuedAt: checkTime.AddDate(0, -2, 0)},
	}

	c, svc, _ := newTestChecker(t, res)
	svc.On("RecordCheck", mock.Anything, mock.Anything).Return(nil).Once()

	m := &model.Monitor{
		ID:                "m1",
		Name:              "site",
		URL:               "https://example.com/",
		SSLWarningDays:    30,
		SSLExpiresAt:      &expires,
		NotifyOnSSLExpiry: true,
	}
	if err := c.Check(context.Background(), m); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
}

func TestCheck_NoNotificationWhenToggleOff(t *testing.T) {
	c, svc, _ := newTestChecker(t, probe.Success{StatusCode: 500})
	svc.On("RecordCheck", mock.Anything, mock.Anything).Return(nil).Once()

	m := &model.Monitor{ID: "m1", URL: "http://example.com/", NotifyOnDown: false}
	if err := c.Check(context.Background(), m); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	// the producer mock asserts no unexpected Publish calls via Cleanup
}

func TestCheck_NotifiesOnSSLExpiringSoon(t *testing.T) {
	expires := checkTime.AddDate(0, 0, 5)
	res := probe.Success{
		StatusCode: 200,
		TLS:        &probe.CertInfo{ExpiresAt: expires, IssuedAt: checkTime.AddDate(0, -2, 0)},
	}

	c, svc, producer := newTestChecker(t, res)
	svc.On("RecordCheck", mock.Anything, mock.Anything).Return(nil).Once()
	producer.On("Publish", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
		return n.Type == model.NotifySSLExpiry
	})).Return(nil).Once()

	m := &model.Monitor{
		ID:                "m1",
		Name:              "site",
		URL:               "https://example.com/",
		SSLWarningDays:    30,
		NotifyOnSSLExpiry: true,
	}
	if err := c.Check(context.Background(), m); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
}

func TestCheckDue_ChecksEveryDueMonitor(t *testing.T) {
	c, svc, _ := newTestChecker(t, probe.Success{StatusCode: 200})

	due := []model.Monitor{
		{ID: "m1", URL: "http://one.example.com/"},
		{ID: "m2", URL: "http://two.example.com/"},
		{ID: "m3", URL: "http://three.example.com/"},
	}
	svc.On("ListDue", mock.Anything, checkTime).Return(due, nil).Once()
	svc.On("RecordCheck", mock.Anything, mock.Anything).Return(nil).Times(len(due))

	c.CheckDue(context.Background())
}
