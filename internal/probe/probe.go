// Package probe performs one synchronous check of a monitored URL: an
// SSRF-guarded HTTP GET followed, for HTTPS targets, by a TLS
// certificate inspection. It is pure with respect to storage: callers
// receive a Result value and decide how to persist it.
package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"time"
)

const (
	httpTimeout = 10 * time.Second
	tlsTimeout  = 5 * time.Second
)

// Result is the outcome of a single probe. Exactly one of the concrete
// types Success, TransportError, or SecurityRejected is returned.
type Result interface {
	isResult()
}

// Success means the HTTP request completed and produced a status code.
// A 3xx or 5xx response is still a Success at this level; status
// classification happens in the checker. TLS holds certificate facts for
// HTTPS targets whose inspection handshake succeeded; TLSErr carries the
// inspection failure message otherwise.
type Success struct {
	StatusCode int
	Elapsed    time.Duration
	TLS        *CertInfo
	TLSErr     string
}

// ErrorKind buckets transport-level failures.
type ErrorKind int

const (
	KindTimeout ErrorKind = iota
	KindConnection
	KindOther
)

// TransportError means the HTTP request never produced a response.
// Message is already user-facing ("Connection timeout", ...).
type TransportError struct {
	Kind    ErrorKind
	Message string
}

// SecurityRejected means the target failed URL safety validation and no
// network call was made.
type SecurityRejected struct {
	Reason string
}

func (Success) isResult()          {}
func (TransportError) isResult()   {}
func (SecurityRejected) isResult() {}

// LookupFunc resolves a hostname for the SSRF guard. Injected in tests.
type LookupFunc func(ctx context.Context, host string) ([]netip.Addr, error)

type Prober struct {
	client  *http.Client
	lookup  LookupFunc
	tlsConf *tls.Config
	logger  *slog.Logger
}

// NewProber builds a Prober. A nil client gets a default with a 10s
// timeout; an injected client is copied, never mutated, and the copy
// treats redirects as terminal responses. A nil lookup uses the default
// resolver. tlsConf seeds the certificate inspection dial (nil means
// system roots).
func NewProber(client *http.Client, lookup LookupFunc, tlsConf *tls.Config, logger *slog.Logger) *Prober {
	if client == nil {
		client = &http.Client{}
	}
	c := *client
	if c.Timeout == 0 {
		c.Timeout = httpTimeout
	}
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	client = &c
	if lookup == nil {
		lookup = func(ctx context.Context, host string) ([]netip.Addr, error) {
			return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
		}
	}
	return &Prober{
		client:  client,
		lookup:  lookup,
		tlsConf: tlsConf,
		logger:  logger.With("component", "prober"),
	}
}

// Probe validates the target, issues a GET, and inspects the certificate
// for HTTPS targets. It never returns an error: every failure mode maps
// to a Result variant.
func (p *Prober) Probe(ctx context.Context, target string) Result {
	u, err := url.Parse(target)
	if err != nil {
		return SecurityRejected{Reason: "invalid URL: " + err.Error()}
	}

	if rejected := p.vetTarget(ctx, u); rejected != nil {
		p.logger.Warn("target rejected by safety validation",
			slog.String("url", target),
			slog.String("reason", rejected.Reason),
		)
		return *rejected
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return TransportError{Kind: KindOther, Message: "Error: " + err.Error()}
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		te := classifyTransport(err)
		p.logger.Warn("probe transport failure",
			slog.String("url", target),
			slog.String("error", te.Message),
		)
		return te
	}
	defer resp.Body.Close()

	res := Success{StatusCode: resp.StatusCode, Elapsed: elapsed}

	if u.Scheme == "https" {
		info, err := p.inspectCert(ctx, u.Hostname(), httpsPort(u))
		if err != nil {
			res.TLSErr = err.Error()
		} else {
			res.TLS = info
		}
	}

	return res
}

func httpsPort(u *url.URL) string {
	if port := u.Port(); port != "" {
		return port
	}
	return "443"
}

// classifyTransport maps a client error to the user-facing taxonomy:
// timeouts, connection-level failures, everything else.
func classifyTransport(err error) TransportError {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return TransportError{Kind: KindTimeout, Message: "Connection timeout"}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return TransportError{Kind: KindConnection, Message: "Connection error: " + dnsErr.Error()}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return TransportError{Kind: KindConnection, Message: "Connection error: " + opErr.Err.Error()}
	}

	// Unwrap the url.Error decoration before reporting anything else.
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return TransportError{Kind: KindOther, Message: "Error: " + uerr.Err.Error()}
	}
	return TransportError{Kind: KindOther, Message: "Error: " + err.Error()}
}
