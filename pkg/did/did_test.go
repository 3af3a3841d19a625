package did

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := []string{
		"did:ethr:0x42A905527d56146fF7b1895a6780980eC8B2D383",
		"did:ethr:sepolia:0x42A905527d56146fF7b1895a6780980eC8B2D383",
		"did:web:example.com",
		"did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK",
	}
	for _, s := range valid {
		require.NoError(t, Validate(s), s)
	}

	invalid := []string{
		"",
		"did:",
		"did:ethr",
		"0x42A905527d56146fF7b1895a6780980eC8B2D383",
		"did::0xabc",
		"ethr:did:0xabc",
	}
	for _, s := range invalid {
		require.Error(t, Validate(s), s)
	}
}

func TestMethod(t *testing.T) {
	require.Equal(t, "ethr", Method("did:ethr:sepolia:0xabc"))
	require.Equal(t, "web", Method("did:web:example.com"))
	require.Equal(t, "", Method("not-a-did"))
}

func TestFromEthrAddress(t *testing.T) {
	d, err := FromEthrAddress("", "0x42A905527d56146fF7b1895a6780980eC8B2D383")
	require.NoError(t, err)
	require.Equal(t, "did:ethr:0x42A905527d56146fF7b1895a6780980eC8B2D383", d)

	d, err = FromEthrAddress("sepolia", "0x42A905527d56146fF7b1895a6780980eC8B2D383")
	require.NoError(t, err)
	require.Equal(t, "did:ethr:sepolia:0x42A905527d56146fF7b1895a6780980eC8B2D383", d)

	_, err = FromEthrAddress("", "42A905527d56146fF7b1895a6780980eC8B2D383")
	require.Error(t, err)
}

func TestEthrAddressIsStable(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	addr := EthrAddress(&key.PublicKey)
	require.Regexp(t, `^0x[0-9a-f]{40}$`, addr)
	require.Equal(t, addr, EthrAddress(&key.PublicKey))

	// The derived address must round-trip into a valid DID.
	d, err := FromEthrAddress("sepolia", addr)
	require.NoError(t, err)
	require.NoError(t, Validate(d))
}
