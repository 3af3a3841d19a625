package vc

import (
	"errors"
	"fmt"
)

// VerificationKind distinguishes why a credential was rejected. Both kinds
// surface identically to callers (the credential is invalid either way) but
// the kind is kept for logs and metrics.
type VerificationKind string

const (
	// KindCryptographic covers signature, issuer-trust, and parse failures.
	KindCryptographic VerificationKind = "cryptographic"
	// KindMalformedClaims covers structurally valid tokens whose claim
	// schema is missing the required identity fields.
	KindMalformedClaims VerificationKind = "malformed_claims"
)

// VerificationError reports an invalid or unparsable credential.
type VerificationError struct {
	Kind VerificationKind
	Err  error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credential verification failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("credential verification failed (%s)", e.Kind)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

func newVerificationError(kind VerificationKind, err error) error {
	return &VerificationError{Kind: kind, Err: err}
}

// KindOf extracts the verification kind from an error chain.
// Returns KindCryptographic for errors that are not verification errors,
// since an unclassified failure must never be treated as a schema problem.
func KindOf(err error) VerificationKind {
	var ve *VerificationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return KindCryptographic
}
