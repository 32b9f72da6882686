package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"time"
)

// CertInfo holds the facts read from the leaf certificate of a
// successful inspection handshake. Timestamps are UTC.
type CertInfo struct {
	ExpiresAt time.Time
	IssuedAt  time.Time
	Issuer    string
	Subject   string
	Serial    string
	Version   string
}

// inspectCert opens a fresh TLS connection with SNI set to host and
// reads the peer's leaf certificate. It runs only after the HTTP probe
// succeeded, so its failures are reported as a secondary signal.
func (p *Prober) inspectCert(ctx context.Context, host, port string) (*CertInfo, error) {
	cfg := p.tlsConf.Clone()
	if cfg == nil {
		cfg = &tls.Config{}
	}
	cfg.ServerName = host

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: tlsTimeout},
		Config:    cfg,
	}

	dialCtx, cancel := context.WithTimeout(ctx, tlsTimeout)
	defer cancel()

	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, errors.New("no peer certificate presented")
	}
	leaf := state.PeerCertificates[0]

	issuer := leaf.Issuer.CommonName
	if len(leaf.Issuer.Organization) > 0 {
		issuer = leaf.Issuer.Organization[0]
	}
	subject := leaf.Subject.CommonName
	if subject == "" {
		subject = host
	}

	return &CertInfo{
		ExpiresAt: leaf.NotAfter.UTC(),
		IssuedAt:  leaf.NotBefore.UTC(),
		Issuer:    issuer,
		Subject:   subject,
		Serial:    leaf.SerialNumber.String(),
		Version:   tls.VersionName(state.Version),
	}, nil
}
