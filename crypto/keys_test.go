package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pk, sk := GenerateKeyPair()
	data := []byte("transaction body")
	sig := Sign(sk, data)
	require.True(t, Verify(pk, data, sig))
	require.NoError(t, VerifyErr(pk, data, sig))
}

func TestVerifyRejectsTamperedData(t *testing.T) {
	pk, sk := GenerateKeyPair()
	sig := Sign(sk, []byte("original"))
	require.False(t, Verify(pk, []byte("tampered"), sig))
	require.ErrorIs(t, VerifyErr(pk, []byte("tampered"), sig), ErrInvalidSignature)
}

func TestPublicKeyStringRoundTrip(t *testing.T) {
	pk, _ := GenerateKeyPair()
	var got PublicKey
	require.NoError(t, got.LoadString(pk.String()))
	require.Equal(t, pk, got)
}
