// ABOUTME: Resolves the reporter name for incoming suggestions
// ABOUTME: First X-Forwarded-For address, reverse-DNS'd, falling back to the bare IP

package api

import (
	"net"
	"net/http"
	"strings"
)

// lookupAddr is swapped out in tests to avoid real DNS traffic.
var lookupAddr = net.LookupAddr

// reporterName attributes a suggestion to whoever sent it. The service sits
// behind a reverse proxy, so the client address comes from X-Forwarded-For;
// a reverse DNS lookup turns LAN addresses into household machine names.
func (s *Server) reporterName(r *http.Request) string {
	addr := r.Header.Get("X-Forwarded-For")
	if i := strings.IndexByte(addr, ','); i >= 0 {
		addr = addr[:i]
	}
	addr = strings.TrimSpace(addr)

	if addr == "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "unknown"
		}
		addr = host
	}

	names, err := lookupAddr(addr)
	if err != nil || len(names) == 0 {
		return addr
	}
	return strings.TrimSuffix(names[0], ".")
}
