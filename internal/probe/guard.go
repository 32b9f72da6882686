package probe

import (
	"context"
	"fmt"
	"net/url"
)

// vetTarget fails closed on anything that is not plain http(s) to a
// public address. Monitor targets are user-supplied per tenant; without
// this the server could be pointed at internal infrastructure.
//
// DNS resolution failure is deliberately allowed through: the HTTP
// attempt will fail on its own and surface as a connection error.
func (p *Prober) vetTarget(ctx context.Context, u *url.URL) *SecurityRejected {
	if u.Scheme != "http" && u.Scheme != "https" {
		return &SecurityRejected{Reason: fmt.Sprintf("URL scheme %q is not allowed", u.Scheme)}
	}

	host := u.Hostname()
	if host == "" {
		return &SecurityRejected{Reason: "URL has no hostname"}
	}

	addrs, err := p.lookup(ctx, host)
	if err != nil {
		return nil
	}

	for _, addr := range addrs {
		addr = addr.Unmap()
		if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
			addr.IsLinkLocalMulticast() || addr.IsUnspecified() {
			return &SecurityRejected{
				Reason: fmt.Sprintf("%s resolves to disallowed address %s", host, addr),
			}
		}
	}
	return nil
}
