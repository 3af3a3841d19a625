package http

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vcgate/internal/audit"
	"vcgate/internal/idp"
	"vcgate/internal/idp/mocks"
	"vcgate/internal/platform/metrics"
	"vcgate/internal/user"
	"vcgate/internal/vc"
	dErrors "vcgate/pkg/domain-errors"
)

type CredentialHandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	idp      *mocks.MockClient
	users    user.Store
	verifier *vc.Verifier
	router   chi.Router
}

func TestCredentialHandlerSuite(t *testing.T) {
	suite.Run(t, new(CredentialHandlerSuite))
}

func (s *CredentialHandlerSuite) SetupTest() {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	s.Require().NoError(err)

	engine, err := vc.NewEthrEngine(vc.EthrConfig{
		PrivateKey: key,
		Networks:   []vc.NetworkConfig{{Name: "sepolia"}},
		Validity:   time.Hour,
	})
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())

	s.ctrl = gomock.NewController(s.T())
	s.idp = mocks.NewMockClient(s.ctrl)
	s.users = user.NewInMemoryStore()
	s.verifier = vc.NewVerifier(engine)

	s.router = chi.NewRouter()
	NewCredentialHandler(
		s.idp,
		s.users,
		vc.NewIssuer(engine),
		s.verifier,
		audit.NewLogPublisher(logger),
		m,
		logger,
	).Register(s.router)
}

func (s *CredentialHandlerSuite) issue(body map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/issue-vc", &buf)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *CredentialHandlerSuite) TestIssuePersistsUserAndSignsCredential() {
	s.idp.EXPECT().
		ExchangeToken(gomock.Any(), "alice-token").
		Return(&idp.ExternalIdentity{SubjectID: "U1", DisplayName: "Alice"}, nil)

	rec := s.issue(map[string]string{"userDid": subjectDID, "userToken": "alice-token"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp IssueCredentialResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))

	claims, err := s.verifier.Verify(context.Background(), resp.VcJwt)
	s.Require().NoError(err)
	s.Equal("U1", claims.SubjectID)
	s.Equal("Alice", claims.DisplayName)

	stored, err := s.users.FindBySubjectID(context.Background(), "U1")
	s.Require().NoError(err)
	s.Equal("Alice", stored.DisplayName)
}

func (s *CredentialHandlerSuite) TestIssueKeepsFirstSeenDisplayName() {
	s.idp.EXPECT().
		ExchangeToken(gomock.Any(), gomock.Any()).
		Return(&idp.ExternalIdentity{SubjectID: "U1", DisplayName: "Alice"}, nil)
	s.idp.EXPECT().
		ExchangeToken(gomock.Any(), gomock.Any()).
		Return(&idp.ExternalIdentity{SubjectID: "U1", DisplayName: "Renamed"}, nil)

	rec := s.issue(map[string]string{"userDid": subjectDID, "userToken": "t1"})
	s.Require().Equal(http.StatusOK, rec.Code)
	rec = s.issue(map[string]string{"userDid": subjectDID, "userToken": "t2"})
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp IssueCredentialResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := s.verifier.Verify(context.Background(), resp.VcJwt)
	s.Require().NoError(err)
	s.Equal("Alice", claims.DisplayName)
}

func (s *CredentialHandlerSuite) TestIssueSurfacesExchangeFailure() {
	s.idp.EXPECT().
		ExchangeToken(gomock.Any(), "bad-token").
		Return(nil, dErrors.New(dErrors.CodeIdentityProvider, "token exchange failed"))

	rec := s.issue(map[string]string{"userDid": subjectDID, "userToken": "bad-token"})
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "identity_provider_error")
}

func (s *CredentialHandlerSuite) TestIssueValidatesBeforeExchange() {
	// No EXPECT: the provider must not be called for an invalid body.
	rec := s.issue(map[string]string{"userDid": "not-a-did", "userToken": "alice-token"})
	s.Equal(http.StatusBadRequest, rec.Code)
}
