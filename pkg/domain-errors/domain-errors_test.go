package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: these are the error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "device not found"}
		s.Equal("device not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeVerification}
		s.Equal("verification_error", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeStore, "save device")
	s.ErrorIs(err, cause)
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	err := New(CodeNotFound, "no such entry")
	s.ErrorIs(err, &Error{Code: CodeNotFound})
	s.NotErrorIs(err, &Error{Code: CodeStore})
}

func (s *DomainErrorsSuite) TestWrapPreservesOriginalCode() {
	inner := New(CodeIssuance, "signing failed")
	outer := Wrap(fmt.Errorf("issue credential: %w", inner), CodeInternal, "issue credential")

	var e *Error
	s.Require().ErrorAs(outer, &e)
	s.Equal(CodeIssuance, e.Code)
}

func (s *DomainErrorsSuite) TestHasCode() {
	err := fmt.Errorf("handler: %w", New(CodeUnauthorized, "missing token"))
	s.True(HasCode(err, CodeUnauthorized))
	s.False(HasCode(err, CodeNotFound))
	s.False(HasCode(errors.New("plain"), CodeUnauthorized))
}
