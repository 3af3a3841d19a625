package vc

import (
	"context"
	"errors"
)

// ClaimsVerifier is the seam the authentication middleware adapter and the
// caching decorator share with the concrete Verifier.
type ClaimsVerifier interface {
	Verify(ctx context.Context, token string) (*VerifiedClaims, error)
}

// Verifier validates credential tokens via the engine and extracts the
// embedded identity claims. It is pure with respect to process state.
type Verifier struct {
	engine Engine
}

func NewVerifier(engine Engine) *Verifier {
	return &Verifier{engine: engine}
}

// Verify checks the token's signature and issuer trust, then extracts
// credentialSubject.degree.userInfo. A token that passes the cryptographic
// checks but lacks the identity fields is rejected as malformed claims; the
// two failure kinds are distinguishable via KindOf for observability only.
func (v *Verifier) Verify(ctx context.Context, token string) (*VerifiedClaims, error) {
	claims, err := v.engine.VerifyCredential(ctx, token)
	if err != nil {
		return nil, err
	}
	return extractIdentity(claims)
}

// VerifyPresentation validates a presentation envelope and then the first
// credential embedded in it, returning that credential's identity claims.
func (v *Verifier) VerifyPresentation(ctx context.Context, token string) (*VerifiedClaims, error) {
	presentation, err := v.engine.VerifyPresentation(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(presentation.VP.VerifiableCredential) == 0 {
		return nil, newVerificationError(KindMalformedClaims, errors.New("presentation carries no credential"))
	}

	claims, err := v.engine.VerifyCredential(ctx, presentation.VP.VerifiableCredential[0])
	if err != nil {
		return nil, err
	}
	return extractIdentity(claims)
}

func extractIdentity(claims *CredentialClaims) (*VerifiedClaims, error) {
	userInfo := claims.VC.CredentialSubject.Degree.UserInfo
	if userInfo == nil {
		return nil, newVerificationError(KindMalformedClaims, errors.New("credential subject has no user info"))
	}
	if userInfo.SubjectID == "" || userInfo.DisplayName == "" {
		return nil, newVerificationError(KindMalformedClaims, errors.New("credential user info is incomplete"))
	}
	out := &VerifiedClaims{
		SubjectID:   userInfo.SubjectID,
		DisplayName: userInfo.DisplayName,
		SubjectDID:  claims.Subject,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
