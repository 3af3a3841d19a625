package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"vcgate/internal/platform/metrics"
)

// Principal is the authenticated identity resolved from a verified credential.
// It lives only in the request context and is never persisted.
type Principal struct {
	SubjectID   string
	DisplayName string
}

// CredentialVerifier resolves a bearer credential token into a Principal.
// The concrete implementation lives in the vc package; keeping the interface
// here decouples transport wiring from credential internals.
type CredentialVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

type principalKey struct{}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// WithPrincipal binds a principal into the context. Exported for tests that
// exercise handlers without the full middleware stack.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// RequireCredential authenticates every request from its Authorization header.
// The bearer token is the opaque credential itself; verification is stateless
// and repeated per request, so there is no server-side session to revoke or
// expire. On success the resolved Principal is bound into the request context
// before any downstream handler runs; otherwise the request is rejected with
// 401 and no handler logic executes.
func RequireCredential(verifier CredentialVerifier, m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				if m != nil {
					m.AuthFailures.Inc()
				}
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			principal, err := verifier.Verify(ctx, token)
			if err != nil {
				if m != nil {
					m.AuthFailures.Inc()
				}
				logger.WarnContext(ctx, "unauthorized access - invalid credential",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid credential")
				return
			}

			ctx = WithPrincipal(ctx, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
