package vc

import (
	"context"

	"vcgate/internal/platform/middleware"
)

// PrincipalVerifier adapts a ClaimsVerifier to the authentication
// middleware's contract, mapping verified claims onto a request Principal.
type PrincipalVerifier struct {
	verifier ClaimsVerifier
}

func NewPrincipalVerifier(verifier ClaimsVerifier) *PrincipalVerifier {
	return &PrincipalVerifier{verifier: verifier}
}

func (a *PrincipalVerifier) Verify(ctx context.Context, token string) (middleware.Principal, error) {
	claims, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return middleware.Principal{}, err
	}
	return middleware.Principal{
		SubjectID:   claims.SubjectID,
		DisplayName: claims.DisplayName,
	}, nil
}
