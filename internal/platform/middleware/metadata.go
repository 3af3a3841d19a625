package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// ClientMetadata carries per-request client attributes for audit events.
type ClientMetadata struct {
	IP       string
	Browser  string
	OS       string
	Mobile   bool
	RawAgent string
}

type clientMetadataKey struct{}

// WithClientMetadata extracts the client IP address and a parsed User-Agent
// from the request and adds them to the context for audit logging.
func WithClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := ClientMetadata{
			IP:       clientIP(r.RemoteAddr),
			RawAgent: r.Header.Get("User-Agent"),
		}
		if meta.RawAgent != "" {
			ua := useragent.New(meta.RawAgent)
			browser, _ := ua.Browser()
			meta.Browser = strings.ToLower(browser)
			meta.OS = ua.OS()
			meta.Mobile = ua.Mobile()
		}

		ctx := context.WithValue(r.Context(), clientMetadataKey{}, meta)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientMetadata retrieves the client metadata captured for this request.
func GetClientMetadata(ctx context.Context) ClientMetadata {
	if m, ok := ctx.Value(clientMetadataKey{}).(ClientMetadata); ok {
		return m
	}
	return ClientMetadata{}
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
