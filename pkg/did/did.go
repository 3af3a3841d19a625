// Package did provides syntactic handling of decentralized identifiers.
// It validates DID strings and derives did:ethr identifiers from ECDSA keys.
// Resolution of DIDs to key material is the DID/VC engine's concern, not ours.
package did

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	dErrors "vcgate/pkg/domain-errors"

	"golang.org/x/crypto/sha3"
)

// MethodEthr is the only DID method this service issues credentials under.
const MethodEthr = "ethr"

// did = "did:" method ":" [network ":"] method-specific-id
var didPattern = regexp.MustCompile(`^did:[a-z0-9]+:(?:[a-zA-Z0-9._-]+:)?[a-zA-Z0-9._%-]+$`)

var ethrAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Validate checks that s is a syntactically well-formed DID string.
func Validate(s string) error {
	if !didPattern.MatchString(s) {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid did: %q", s))
	}
	return nil
}

// Method extracts the method name from a DID string, e.g. "ethr" from
// "did:ethr:sepolia:0xabc...". Returns an empty string for malformed input.
func Method(s string) string {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 3 || parts[0] != "did" {
		return ""
	}
	return parts[1]
}

// FromEthrAddress builds a did:ethr DID for an Ethereum address, optionally
// qualified with a network name ("" means the default network).
func FromEthrAddress(network, address string) (string, error) {
	if !ethrAddressPattern.MatchString(address) {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid ethereum address: %q", address))
	}
	if network == "" {
		return fmt.Sprintf("did:%s:%s", MethodEthr, address), nil
	}
	return fmt.Sprintf("did:%s:%s:%s", MethodEthr, network, address), nil
}

// EthrAddress derives the Ethereum address for an ECDSA public key:
// the last 20 bytes of keccak256 over the uncompressed point (without the
// 0x04 prefix), hex-encoded with a 0x prefix.
func EthrAddress(pub *ecdsa.PublicKey) string {
	if pub == nil {
		return ""
	}
	byteLen := (pub.Curve.Params().BitSize + 7) / 8
	raw := make([]byte, 2*byteLen)
	pub.X.FillBytes(raw[:byteLen])
	pub.Y.FillBytes(raw[byteLen:])

	h := sha3.NewLegacyKeccak256()
	h.Write(raw)
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[len(sum)-20:])
}
