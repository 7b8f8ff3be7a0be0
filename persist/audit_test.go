package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/types"
)

func testMetadata() Metadata {
	return Metadata{Header: "Fae Audit Log", Version: "1.0"}
}

func TestRecordAndLookupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	log, err := OpenAuditLog(testMetadata(), path)
	require.NoError(t, err)
	defer log.Close()

	txID := types.TransactionID(crypto.RandomDigest())
	require.NoError(t, log.Record(txID, "Transaction ...\n  result: 8\n"))

	rendered, ok, err := log.Lookup(txID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, rendered, "result: 8")
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	log, err := OpenAuditLog(testMetadata(), path)
	require.NoError(t, err)
	defer log.Close()

	_, ok, err := log.Lookup(types.TransactionID(crypto.RandomDigest()))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReopenWithMismatchedHeaderFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	log, err := OpenAuditLog(testMetadata(), path)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	_, err = OpenAuditLog(Metadata{Header: "Other", Version: "1.0"}, path)
	require.ErrorIs(t, err, ErrBadHeader)
}
