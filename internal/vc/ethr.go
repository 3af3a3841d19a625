package vc

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vcgate/pkg/did"
	dErrors "vcgate/pkg/domain-errors"
)

// NetworkConfig describes one Ethereum network the resolver knows about.
type NetworkConfig struct {
	Name     string
	RPCURL   string
	Registry string
}

// EthrConfig is the explicit issuer identity and resolver configuration for
// the engine. It is injected at construction so tests can run with
// disposable keys instead of reading ambient process state.
type EthrConfig struct {
	// IssuerDID is the did:ethr identity credentials are signed under.
	// When empty it is derived from the private key's Ethereum address on
	// the first configured network.
	IssuerDID string

	// PrivateKeyHex is the hex-encoded ECDSA private scalar.
	PrivateKeyHex string

	// PrivateKey may be supplied directly instead of PrivateKeyHex.
	PrivateKey *ecdsa.PrivateKey

	// Networks and Registry configure subject-DID resolution.
	Networks []NetworkConfig

	// Validity bounds credential lifetime; zero means no exp claim.
	Validity time.Duration
}

// EthrEngine signs and verifies JWT-encoded credentials under a single
// did:ethr issuer identity. Trust is anchored on the configured issuer key:
// tokens claiming any other issuer are rejected.
type EthrEngine struct {
	issuerDID string
	key       *ecdsa.PrivateKey
	networks  []NetworkConfig
	validity  time.Duration
	now       func() time.Time
}

// NewEthrEngine builds an engine from explicit configuration.
func NewEthrEngine(cfg EthrConfig) (*EthrEngine, error) {
	key := cfg.PrivateKey
	if key == nil {
		var err error
		key, err = ParsePrivateKeyHex(cfg.PrivateKeyHex)
		if err != nil {
			return nil, err
		}
	}

	issuerDID := cfg.IssuerDID
	if issuerDID == "" {
		network := ""
		if len(cfg.Networks) > 0 {
			network = cfg.Networks[0].Name
		}
		var err error
		issuerDID, err = did.FromEthrAddress(network, did.EthrAddress(&key.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("derive issuer did: %w", err)
		}
	}
	if err := did.Validate(issuerDID); err != nil {
		return nil, err
	}

	return &EthrEngine{
		issuerDID: issuerDID,
		key:       key,
		networks:  cfg.Networks,
		validity:  cfg.Validity,
		now:       time.Now,
	}, nil
}

// ParsePrivateKeyHex decodes a raw hex-encoded ECDSA private scalar on P-256.
func ParsePrivateKeyHex(s string) (*ecdsa.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "issuer private key is not valid hex")
	}

	curve := elliptic.P256()
	d := new(big.Int).SetBytes(raw)
	if d.Sign() == 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "issuer private key out of range")
	}

	key := &ecdsa.PrivateKey{D: d}
	key.Curve = curve
	key.X, key.Y = curve.ScalarBaseMult(d.Bytes())
	return key, nil
}

func (e *EthrEngine) IssuerDID() string {
	return e.issuerDID
}

func (e *EthrEngine) SignCredential(ctx context.Context, claims *CredentialClaims) (string, error) {
	_ = ctx
	if claims == nil {
		return "", dErrors.New(dErrors.CodeIssuance, "credential claims are required")
	}
	claims.Issuer = e.issuerDID
	e.applyValidity(&claims.RegisteredClaims)

	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(e.key)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeIssuance, "sign credential")
	}
	return token, nil
}

func (e *EthrEngine) VerifyCredential(ctx context.Context, token string) (*CredentialClaims, error) {
	_ = ctx
	claims := &CredentialClaims{}
	if err := e.verify(token, claims); err != nil {
		return nil, err
	}
	if claims.Issuer != e.issuerDID {
		return nil, newVerificationError(KindCryptographic, errors.New("untrusted issuer"))
	}
	return claims, nil
}

func (e *EthrEngine) SignPresentation(ctx context.Context, claims *PresentationClaims) (string, error) {
	_ = ctx
	if claims == nil {
		return "", dErrors.New(dErrors.CodeIssuance, "presentation claims are required")
	}
	claims.Issuer = e.issuerDID
	e.applyValidity(&claims.RegisteredClaims)

	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(e.key)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeIssuance, "sign presentation")
	}
	return token, nil
}

func (e *EthrEngine) VerifyPresentation(ctx context.Context, token string) (*PresentationClaims, error) {
	_ = ctx
	claims := &PresentationClaims{}
	if err := e.verify(token, claims); err != nil {
		return nil, err
	}
	if claims.Issuer != e.issuerDID {
		return nil, newVerificationError(KindCryptographic, errors.New("untrusted issuer"))
	}
	return claims, nil
}

func (e *EthrEngine) applyValidity(rc *jwt.RegisteredClaims) {
	now := e.now()
	if rc.NotBefore == nil {
		rc.NotBefore = jwt.NewNumericDate(now)
	}
	if e.validity > 0 && rc.ExpiresAt == nil {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(e.validity))
	}
}

func (e *EthrEngine) verify(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return &e.key.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}))
	if err != nil {
		return newVerificationError(KindCryptographic, err)
	}
	if !parsed.Valid {
		return newVerificationError(KindCryptographic, errors.New("invalid token"))
	}
	return nil
}
