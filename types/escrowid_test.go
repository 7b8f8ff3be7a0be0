package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscrowIDDirectResolved(t *testing.T) {
	entry := NewEntryID()
	e := Direct[int, string](entry)
	got, ok := e.Resolved()
	require.True(t, ok)
	require.Equal(t, entry, got)
}

func TestEscrowIDLocatorUnresolved(t *testing.T) {
	e := LocatorID[int, string](ParsePath("a.b"))
	_, ok := e.Resolved()
	require.False(t, ok)
}

func TestEscrowIDLocatorPrintsLocatorForm(t *testing.T) {
	e := LocatorID[int, string](ParsePath("a.b"))
	require.Contains(t, e.String(), "EscrowLocator a.b ::")
}

func TestEscrowIDWithEntryResolvesLocator(t *testing.T) {
	entry := NewEntryID()
	e := LocatorID[int, string](ParsePath("a.b"))
	resolved := e.WithEntry(entry)
	got, ok := resolved.Resolved()
	require.True(t, ok)
	require.Equal(t, entry, got)
	require.Equal(t, KindDirect, resolved.Kind)
}

func TestAsEscrowIDValueRecognizesAnyInstantiation(t *testing.T) {
	e := TXIn[bool, int](NewEntryID(), true)
	r, ok := AsEscrowIDValue(e)
	require.True(t, ok)
	require.Equal(t, KindTXIn, r.EscrowKind())
}
