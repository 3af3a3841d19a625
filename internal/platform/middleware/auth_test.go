package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	dErrors "vcgate/pkg/domain-errors"
	"vcgate/internal/platform/metrics"
)

type stubVerifier struct {
	principals map[string]Principal
}

func (s *stubVerifier) Verify(_ context.Context, token string) (Principal, error) {
	if p, ok := s.principals[token]; ok {
		return p, nil
	}
	return Principal{}, dErrors.New(dErrors.CodeVerification, "bad signature")
}

type AuthMiddlewareSuite struct {
	suite.Suite
	handler http.Handler
	reached bool
	seen    Principal
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.reached = false
	s.seen = Principal{}

	verifier := &stubVerifier{principals: map[string]Principal{
		"good-token": {SubjectID: "U1", DisplayName: "Alice"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.reached = true
		s.seen, _ = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	s.handler = RequireCredential(verifier, m, logger)(inner)
}

func (s *AuthMiddlewareSuite) do(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/iotlist", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *AuthMiddlewareSuite) TestMissingHeaderRejected() {
	rec := s.do("")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(s.reached, "handler must not run before rejection")
}

func (s *AuthMiddlewareSuite) TestNonBearerSchemeRejected() {
	rec := s.do("Basic Zm9vOmJhcg==")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(s.reached)
}

func (s *AuthMiddlewareSuite) TestInvalidTokenRejected() {
	rec := s.do("Bearer forged-token")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(s.reached)
	s.Contains(rec.Body.String(), "unauthorized")
}

func (s *AuthMiddlewareSuite) TestValidTokenBindsPrincipal() {
	rec := s.do("Bearer good-token")
	s.Equal(http.StatusOK, rec.Code)
	s.True(s.reached)
	s.Equal(Principal{SubjectID: "U1", DisplayName: "Alice"}, s.seen)
}

func (s *AuthMiddlewareSuite) TestGetPrincipalAbsent() {
	_, ok := GetPrincipal(context.Background())
	s.False(ok)
}
