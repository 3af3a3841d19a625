package vc

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vcgate/pkg/did"
	dErrors "vcgate/pkg/domain-errors"
)

// Issuer builds credential payloads embedding verified identity claims and
// delegates signing to the engine. It holds no state beyond its collaborators
// and persists nothing.
type Issuer struct {
	engine Engine
	now    func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithClock overrides the issuance clock, for tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

func NewIssuer(engine Engine, opts ...IssuerOption) *Issuer {
	i := &Issuer{engine: engine, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue mints a credential binding the verified identity to the subject DID.
// The identity lands under credentialSubject.degree.userInfo; not-before is
// the current time. Engine failures surface as issuance errors with no
// partial state left behind.
func (i *Issuer) Issue(ctx context.Context, identity Identity, subjectDID string) (string, error) {
	if identity.SubjectID == "" {
		return "", dErrors.New(dErrors.CodeValidation, "identity subject id is required")
	}
	if err := did.Validate(subjectDID); err != nil {
		return "", err
	}

	claims := &CredentialClaims{
		VC: CredentialEnvelope{
			Context: []string{ContextCredentialsV1},
			Type:    []string{TypeVerifiableCredential},
			CredentialSubject: CredentialSubject{
				Degree: Degree{
					Type: DegreeType,
					Name: DegreeName,
					UserInfo: &UserInfo{
						SubjectID:   identity.SubjectID,
						DisplayName: identity.DisplayName,
						Phone:       identity.Phone,
					},
				},
			},
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectDID,
			NotBefore: jwt.NewNumericDate(i.now()),
		},
	}

	token, err := i.engine.SignCredential(ctx, claims)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeIssuance, "issue credential")
	}
	return token, nil
}

// IssuePresentation wraps already-issued credential tokens in a signed
// presentation envelope.
func (i *Issuer) IssuePresentation(ctx context.Context, credentials []string) (string, error) {
	if len(credentials) == 0 {
		return "", dErrors.New(dErrors.CodeValidation, "at least one credential is required")
	}

	claims := &PresentationClaims{
		VP: PresentationEnvelope{
			Context:              []string{ContextCredentialsV1},
			Type:                 []string{TypeVerifiablePresentation},
			VerifiableCredential: credentials,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(i.now()),
		},
	}

	token, err := i.engine.SignPresentation(ctx, claims)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeIssuance, "issue presentation")
	}
	return token, nil
}
