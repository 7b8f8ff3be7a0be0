package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigestRoundTrip(t *testing.T) {
	d := HashBytes([]byte("fae"))
	var got Digest
	require.NoError(t, got.LoadString(d.String()))
	require.Equal(t, d, got)
}

func TestHashAllDeterministic(t *testing.T) {
	a := HashAll([]byte("a"), []byte("b"))
	b := HashAll([]byte("a"), []byte("b"))
	require.Equal(t, a, b)

	c := HashAll([]byte("ab"))
	require.NotEqual(t, a, c, "HashAll must not be equivalent to concatenation without framing")
}

func TestRandomDigestNotZero(t *testing.T) {
	d := RandomDigest()
	require.False(t, d.IsZero())
}

func TestDigestJSONRoundTrip(t *testing.T) {
	d := HashBytes([]byte("round trip"))
	b, err := d.MarshalJSON()
	require.NoError(t, err)

	var got Digest
	require.NoError(t, got.UnmarshalJSON(b))
	require.Equal(t, d, got)
}

func TestLoadStringRejectsWrongLength(t *testing.T) {
	var d Digest
	err := d.LoadString("deadbeef")
	require.ErrorIs(t, err, ErrDigestWrongLen)
}
