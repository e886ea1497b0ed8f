package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPResolver derives the client address used as the admission key.
//
// Forwarding headers are only honoured when the transport peer is one of
// the trusted proxies. In that case the right-most X-Forwarded-For hop that
// is not itself a trusted proxy is the client. When every hop is trusted the
// left-most one is used. Without a usable X-Forwarded-For, X-Real-IP is
// tried, and finally the peer address.
type IPResolver struct {
	trusted []netip.Prefix
}

// NewIPResolver parses trustedProxies, each an IP address or a CIDR prefix.
// An empty list yields a resolver that always uses the peer address.
func NewIPResolver(trustedProxies []string) (*IPResolver, error) {
	resolver := &IPResolver{}
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		prefix, err := parseTrustedProxy(raw)
		if err != nil {
			return nil, err
		}
		resolver.trusted = append(resolver.trusted, prefix)
	}

	return resolver, nil
}

func parseTrustedProxy(raw string) (netip.Prefix, error) {
	if strings.Contains(raw, "/") {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("%w %q: %w", ErrInvalidTrustedProxy, raw, err)
		}
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w %q: %w", ErrInvalidTrustedProxy, raw, err)
	}
	addr = addr.Unmap()

	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// ClientIP returns the client address of r.
func (res *IPResolver) ClientIP(r *http.Request) string {
	peer := peerAddress(r.RemoteAddr)

	peerAddr, err := netip.ParseAddr(peer)
	if err != nil || !res.isTrusted(peerAddr.Unmap()) {
		return peer
	}

	if client, ok := res.fromForwardedFor(r.Header.Values("X-Forwarded-For")); ok {
		return client
	}

	if realIP, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return realIP.Unmap().String()
	}

	return peer
}

func (res *IPResolver) fromForwardedFor(values []string) (string, bool) {
	var hops []string
	for _, value := range values {
		hops = append(hops, strings.Split(value, ",")...)
	}

	leftmost := ""
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			// hops left of a garbled entry cannot be attributed to a trusted
			// proxy any more
			break
		}

		addr = addr.Unmap()
		if !res.isTrusted(addr) {
			return addr.String(), true
		}
		leftmost = addr.String()
	}

	return leftmost, leftmost != ""
}

func (res *IPResolver) isTrusted(addr netip.Addr) bool {
	for _, prefix := range res.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

func peerAddress(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}

	return host
}
