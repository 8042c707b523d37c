package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest resolves the client's network origin: the first entry of
// X-Forwarded-For when present, otherwise the transport-level peer address.
func FromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
