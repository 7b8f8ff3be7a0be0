package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/types"
)

func TestNewEscrowAbsorbsBackingThenUseEscrowReleasesIt(t *testing.T) {
	f := testFrame(t)
	backingEntry := types.NewEntryID()
	f.Escrows.Put(backingEntry, "gold")
	backingRef := types.Direct[int, string](backingEntry)

	code := func(inner *Frame, arg interface{}) (Func, interface{}, bool) {
		v, ok := inner.Escrows.Take(backingEntry)
		require.True(t, ok)
		return Spend(v)
	}

	escrowEntry, err := f.NewEscrow([]interface{}{backingRef}, code)
	require.NoError(t, err)

	_, stillThere := f.Escrows[backingEntry]
	require.False(t, stillThere, "backing entry must move into the escrow's private frame")

	out, err := f.UseEscrow(escrowEntry, "go")
	require.NoError(t, err)
	require.Equal(t, "gold", out)

	_, exists := f.Escrows[escrowEntry]
	require.False(t, exists, "spent escrow must be removed from the caller frame")
}

func TestUseEscrowMissingEntryIsBadEscrowID(t *testing.T) {
	f := testFrame(t)
	_, err := f.UseEscrow(types.NewEntryID(), nil)
	require.ErrorIs(t, err, types.KindError(types.ErrBadEscrowID))
}

func TestUseEscrowKeepsAwaitingEscrowInMap(t *testing.T) {
	f := testFrame(t)
	entry, err := f.NewEscrow(nil, echoOnceThenSpend())
	require.NoError(t, err)

	out, err := f.UseEscrow(entry, "x")
	require.NoError(t, err)
	require.Equal(t, "x", out)

	_, stillThere := f.Escrows[entry]
	require.True(t, stillThere)
}

func TestNewEscrowMissingBackingFails(t *testing.T) {
	f := testFrame(t)
	ref := types.Direct[int, string](types.NewEntryID())
	_, err := f.NewEscrow([]interface{}{ref}, echoOnceThenSpend())
	require.ErrorIs(t, err, types.KindError(types.ErrMissingEscrow))
}

func TestNewPublishedContractRecordsOutput(t *testing.T) {
	f := testFrame(t)
	trusts := map[types.ShortContractID]bool{}
	err := f.NewPublishedContract(nil, trusts, "unit", "unit", func(inner *Frame, arg interface{}) (Func, interface{}, bool) {
		return Spend(arg)
	})
	require.NoError(t, err)
	require.Len(t, f.Outputs, 1)
	require.Equal(t, StateFresh, f.Outputs[0].State())
}

func TestFrameSenderIsStableAcrossSubFrames(t *testing.T) {
	pub, _ := crypto.GenerateKeyPair()
	require.NotEqual(t, crypto.PublicKey{}, pub)
	f := NewFrame(pub)
	require.Equal(t, pub, f.Sender())
	require.Equal(t, pub, f.Sub().Sender())
}

func TestFrameClosedReportsEmptyEscrowMap(t *testing.T) {
	f := testFrame(t)
	require.True(t, f.Closed())
	f.Escrows.Put(types.NewEntryID(), "x")
	require.False(t, f.Closed())
}
