package httputil

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "vcgate/pkg/domain-errors"
)

type blockRequest struct {
	IP string `json:"ip"`
}

func (r *blockRequest) Normalize() {
	r.IP = strings.TrimSpace(r.IP)
}

func (r *blockRequest) Validate() error {
	if r.IP == "" {
		return dErrors.New(dErrors.CodeValidation, "ip is required")
	}
	return nil
}

type DecodeSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestDecodeSuite(t *testing.T) {
	suite.Run(t, new(DecodeSuite))
}

func (s *DecodeSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *DecodeSuite) decode(body string) (*blockRequest, bool, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/block", strings.NewReader(body))
	rec := httptest.NewRecorder()
	out, ok := DecodeAndPrepare[blockRequest](rec, req, s.logger, req.Context(), "req-1")
	return out, ok, rec
}

func (s *DecodeSuite) TestDecodesAndNormalizes() {
	out, ok, _ := s.decode(`{"ip": "  10.0.0.1  "}`)
	s.Require().True(ok)
	s.Equal("10.0.0.1", out.IP)
}

func (s *DecodeSuite) TestMalformedBodyIsBadRequest() {
	out, ok, rec := s.decode(`{"ip":`)
	s.Nil(out)
	s.False(ok)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "bad_request")
}

func (s *DecodeSuite) TestValidationFailurePreservesCode() {
	out, ok, rec := s.decode(`{"ip": "   "}`)
	s.Nil(out)
	s.False(ok)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "validation_failed")
}
