package http

import (
	"net"
	"net/http"
	"strings"
)

// ExtractClientIP returns the best-guess client IP for a request. The
// X-Forwarded-For and X-Real-IP headers are consulted first since the
// service normally sits behind a proxy; RemoteAddr is the fallback.
func ExtractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, ip := range strings.Split(xff, ",") {
			ip = strings.TrimSpace(ip)
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	return remoteAddr(r)
}

// remoteAddr strips the port from RemoteAddr when present.
func remoteAddr(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "unknown"
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
