package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePathCanonicalForm(t *testing.T) {
	p := ParsePath("a.b.c")
	require.Equal(t, Path{"a", "b", "c"}, p)
	require.Equal(t, "a.b.c", p.String())
}

func TestParsePathTrimsWhitespaceAroundDots(t *testing.T) {
	p := ParsePath(" a . b .c")
	require.Equal(t, Path{"a", "b", "c"}, p)
}

func TestPathAppendDoesNotAliasPrefix(t *testing.T) {
	base := Path{"a"}
	left := base.Append("b")
	right := base.Append("c")
	require.Equal(t, Path{"a", "b"}, left)
	require.Equal(t, Path{"a", "c"}, right)
}
