package clientip

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ErrInvalidProxy is returned when a trusted proxy entry is neither an IP nor a CIDR.
var ErrInvalidProxy = errors.New("clientip: invalid trusted proxy")

const (
	headerForwardedFor   = "X-Forwarded-For"
	headerForwardedProto = "X-Forwarded-Proto"
	headerForwardedHost  = "X-Forwarded-Host"
	headerRealIP         = "X-Real-IP"
)

// Trust holds the networks whose forwarding headers are honored.
// The zero value trusts nobody.
type Trust struct {
	prefixes []netip.Prefix
}

// ParseTrust builds a Trust from IP addresses and CIDR ranges.
// Empty entries are ignored.
func ParseTrust(proxies []string) (Trust, error) {
	var t Trust
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.Contains(p, "/") {
			prefix, err := netip.ParsePrefix(p)
			if err != nil {
				return Trust{}, fmt.Errorf("%w: %q: %v", ErrInvalidProxy, p, err)
			}
			t.prefixes = append(t.prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(p)
		if err != nil {
			return Trust{}, fmt.Errorf("%w: %q: %v", ErrInvalidProxy, p, err)
		}
		addr = addr.Unmap()
		t.prefixes = append(t.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return t, nil
}

// Empty reports whether no proxy is trusted.
func (t Trust) Empty() bool {
	return len(t.prefixes) == 0
}

// Contains reports whether ip belongs to a trusted network.
func (t Trust) Contains(ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range t.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// fromTrustedPeer reports whether the direct peer of r is a trusted proxy.
func (t Trust) fromTrustedPeer(r *http.Request) bool {
	if t.Empty() {
		return false
	}
	return t.Contains(remoteHost(r))
}

// IP returns the client address for r.
func (t Trust) IP(r *http.Request) string {
	peer := remoteHost(r)
	if !t.fromTrustedPeer(r) {
		return peer
	}

	if xff := r.Header.Get(headerForwardedFor); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			candidate := strings.TrimSpace(hops[i])
			if net.ParseIP(candidate) == nil {
				// a malformed hop ends the chain we can vouch for
				break
			}
			if !t.Contains(candidate) {
				return candidate
			}
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get(headerRealIP)); net.ParseIP(realIP) != nil {
		return realIP
	}

	return peer
}

// Scheme returns "https" or "http" for r.
func (t Trust) Scheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if t.fromTrustedPeer(r) {
		proto := strings.ToLower(strings.TrimSpace(firstValue(r.Header.Get(headerForwardedProto))))
		if proto == "https" || proto == "http" {
			return proto
		}
	}
	return "http"
}

// Host returns the host (with port, when present) the client addressed.
func (t Trust) Host(r *http.Request) string {
	if t.fromTrustedPeer(r) {
		if host := strings.TrimSpace(firstValue(r.Header.Get(headerForwardedHost))); host != "" {
			return strings.ToLower(host)
		}
	}
	return strings.ToLower(r.Host)
}

// GetIP returns the address of the direct peer, ignoring forwarding headers.
func GetIP(r *http.Request) string {
	return Trust{}.IP(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func firstValue(header string) string {
	if i := strings.IndexByte(header, ','); i >= 0 {
		return header[:i]
	}
	return header
}
