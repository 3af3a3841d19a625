// Package vc implements verifiable credential issuance and verification on
// top of a JWT-encoding DID/VC engine. The engine owns all cryptographic
// concerns; issuer and verifier own the claim schema.
package vc

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextCredentialsV1 = "https://www.w3.org/2018/credentials/v1"

	TypeVerifiableCredential   = "VerifiableCredential"
	TypeVerifiablePresentation = "VerifiablePresentation"

	// Fixed claim schema carried by every credential this service issues.
	// Identity claims live under credentialSubject.degree.userInfo.
	DegreeType = "BachelorDegree"
	DegreeName = "Bachelor of Science in Computer Science"
)

// Identity is the verified external identity embedded into a credential.
type Identity struct {
	SubjectID   string
	DisplayName string
	Phone       string
}

// UserInfo is the wire form of Identity inside the credential subject.
type UserInfo struct {
	SubjectID   string `json:"subjectId"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone,omitempty"`
}

type Degree struct {
	Type     string    `json:"type"`
	Name     string    `json:"name"`
	UserInfo *UserInfo `json:"userInfo,omitempty"`
}

type CredentialSubject struct {
	Degree Degree `json:"degree"`
}

// CredentialEnvelope is the "vc" claim of a JWT-encoded verifiable credential.
type CredentialEnvelope struct {
	Context           []string          `json:"@context"`
	Type              []string          `json:"type"`
	CredentialSubject CredentialSubject `json:"credentialSubject"`
}

// CredentialClaims is the full JWT claim set of a credential token.
type CredentialClaims struct {
	VC CredentialEnvelope `json:"vc"`
	jwt.RegisteredClaims
}

// PresentationEnvelope is the "vp" claim of a JWT-encoded verifiable
// presentation wrapping one or more credential tokens.
type PresentationEnvelope struct {
	Context              []string `json:"@context"`
	Type                 []string `json:"type"`
	VerifiableCredential []string `json:"verifiableCredential"`
}

// PresentationClaims is the full JWT claim set of a presentation token.
type PresentationClaims struct {
	VP PresentationEnvelope `json:"vp"`
	jwt.RegisteredClaims
}

// VerifiedClaims is what the verifier hands back to callers: the identity
// recovered from a valid credential plus the subject DID it was bound to.
type VerifiedClaims struct {
	SubjectID   string
	DisplayName string
	SubjectDID  string

	// ExpiresAt is the credential's exp claim; zero when the credential
	// carries none. Cache layers use it to bound entry lifetimes.
	ExpiresAt time.Time
}
