package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are checked in order before falling back to RemoteAddr.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// Resolver extracts the originating client address from a request.
type Resolver struct {
	headers []string
	trusted []netip.Prefix
}

type Option func(*Resolver)

// WithHeaders replaces DefaultHeaders. An empty list means RemoteAddr only.
func WithHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = headers
	}
}

// WithTrustedProxies limits header lookups to requests whose peer address
// falls in one of the prefixes. Invalid prefixes are ignored.
func WithTrustedProxies(cidrs ...string) Option {
	return func(r *Resolver) {
		for _, c := range cidrs {
			if p, err := netip.ParsePrefix(strings.TrimSpace(c)); err == nil {
				r.trusted = append(r.trusted, p.Masked())
			}
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// GetIP resolves the client address with the default resolver. It trusts
// forwarding headers from any peer.
func GetIP(r *http.Request) string {
	return defaultResolver.IP(r)
}

// IP returns the normalized client address, or "" when none is valid.
func (res *Resolver) IP(r *http.Request) string {
	peer := remoteAddr(r.RemoteAddr)
	if res.trusts(peer) {
		for _, h := range res.headers {
			v := r.Header.Get(h)
			if v == "" {
				continue
			}
			// X-Forwarded-For carries a list; the client is the first valid entry.
			for candidate := range strings.SplitSeq(v, ",") {
				if addr, ok := parse(candidate); ok {
					return addr.String()
				}
			}
		}
	}
	if !peer.IsValid() {
		return ""
	}
	return peer.String()
}

func (res *Resolver) trusts(peer netip.Addr) bool {
	if len(res.trusted) == 0 {
		return true
	}
	if !peer.IsValid() {
		return false
	}
	for _, p := range res.trusted {
		if p.Contains(peer) {
			return true
		}
	}
	return false
}

func remoteAddr(s string) netip.Addr {
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	addr, _ := parse(s)
	return addr
}

// parse drops IPv6 zones and unmaps IPv4-in-IPv6 addresses.
func parse(s string) (netip.Addr, bool) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.WithZone("").Unmap(), true
}
