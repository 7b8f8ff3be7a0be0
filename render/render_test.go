package render

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/storage"
	"github.com/therewillbecode/Fae-1/types"
)

func TestShowTransactionRendersCommittedEntry(t *testing.T) {
	pub, _ := crypto.GenerateKeyPair()
	txID := types.TransactionID(crypto.RandomDigest())
	short := types.TransactionOutput(txID, 0).Shorten()

	entry := storage.NewTransactionEntry(
		map[types.ShortContractID]*storage.InputOutputVersions{
			short: {
				RealID:   types.TransactionOutput(txID, 0),
				Outputs:  nil,
				Versions: map[types.VersionID]types.TypeID{},
			},
		},
		[]types.ShortContractID{short},
		nil,
		map[string]crypto.PublicKey{"alice": pub},
		8,
	)

	out := ShowTransaction(txID, entry)
	require.Contains(t, out, "Transaction")
	require.Contains(t, out, "result: 8")
	require.Contains(t, out, "alice:")
	require.Contains(t, out, "input "+short.String())
}

func TestShowTransactionCatchesPoisonedFieldsPerField(t *testing.T) {
	txID := types.TransactionID(crypto.RandomDigest())
	entry := storage.Poisoned(types.NewOpenEscrows())

	out := ShowTransaction(txID, entry)
	require.Contains(t, out, "<exception>")
}
