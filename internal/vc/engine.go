package vc

//go:generate mockgen -source=engine.go -destination=mocks/engine_mock.go -package=mocks Engine

import "context"

// Engine is the DID/VC collaborator boundary: it signs and verifies
// JWT-encoded credentials and presentations under a single process-wide
// issuer identity. Signature schemes, key handling, and DID resolution are
// its concern alone; issuer and verifier treat it as correct.
type Engine interface {
	// IssuerDID returns the DID the engine signs under.
	IssuerDID() string

	// SignCredential encodes and signs the claim set, returning the opaque
	// credential token.
	SignCredential(ctx context.Context, claims *CredentialClaims) (string, error)

	// VerifyCredential checks signature and issuer trust, returning the
	// decoded claim set. Failures are VerificationErrors of kind
	// KindCryptographic.
	VerifyCredential(ctx context.Context, token string) (*CredentialClaims, error)

	// SignPresentation and VerifyPresentation are the presentation-envelope
	// counterparts of the credential operations.
	SignPresentation(ctx context.Context, claims *PresentationClaims) (string, error)
	VerifyPresentation(ctx context.Context, token string) (*PresentationClaims, error)
}
