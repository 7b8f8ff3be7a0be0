package types

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/therewillbecode/Fae-1/crypto"
)

type (
	// TransactionID names a transaction. It is supplied by the caller of
	// runTransaction (spec §4.1), not derived from the transaction's
	// contents — two distinct transactions are free to fail or succeed
	// independently of each other's IDs.
	TransactionID crypto.Digest

	// EntryID names a live escrow (spec §3). Minted fresh by newEscrow; never
	// derived from the escrow's backing content, since two structurally
	// identical escrows must still be distinguishable (scarcity by
	// construction, spec §1).
	EntryID crypto.Digest

	// ShortContractID is the digest of a ContractID (spec §3), used to key
	// input records and to name trust sets.
	ShortContractID crypto.Digest

	// VersionID names one input's declared argument/result type shape, for
	// the "versions" block of the persisted entry layout (spec §6).
	VersionID crypto.Digest
)

func (id TransactionID) String() string      { return crypto.Digest(id).String() }
func (id ShortContractID) String() string    { return crypto.Digest(id).String() }
func (id EntryID) String() string            { return crypto.Digest(id).String() }
func (id VersionID) String() string          { return crypto.Digest(id).String() }
func (id *TransactionID) LoadString(s string) error {
	return (*crypto.Digest)(id).LoadString(s)
}
func (id *ShortContractID) LoadString(s string) error {
	return (*crypto.Digest)(id).LoadString(s)
}
func (id *EntryID) LoadString(s string) error {
	return (*crypto.Digest)(id).LoadString(s)
}

// NewEntryID mints a fresh, content-independent escrow entry identifier.
func NewEntryID() EntryID {
	seed := crypto.RandomDigest()
	return EntryID(crypto.HashAll(SpecifierEntry[:], seed[:]))
}

// ContractIDKind discriminates the three ContractID variants of spec §3.
type ContractIDKind uint8

const (
	// KindJustTransaction names the transaction itself; never dispatchable.
	KindJustTransaction ContractIDKind = iota
	// KindTransactionOutput names the i-th top-level output of a transaction.
	KindTransactionOutput
	// KindInputOutput names the i-th output of an input contract dispatched
	// during a transaction.
	KindInputOutput
)

// ContractID identifies a contract: the transaction itself, one of its
// top-level outputs, or one of an input's outputs (spec §3). An optional
// nonce assertion pins a specific call-count version.
type ContractID struct {
	Kind       ContractIDKind
	Tx         TransactionID
	ShortInput ShortContractID // only set for KindInputOutput
	Index      uint64          // only set for KindTransactionOutput, KindInputOutput
	Nonce      *uint64         // non-nil asserts the current call-count
}

// JustTransaction builds the ContractID naming a transaction itself.
func JustTransaction(tx TransactionID) ContractID {
	return ContractID{Kind: KindJustTransaction, Tx: tx}
}

// TransactionOutput builds the ContractID naming a transaction's i-th
// top-level output.
func TransactionOutput(tx TransactionID, i uint64) ContractID {
	return ContractID{Kind: KindTransactionOutput, Tx: tx, Index: i}
}

// InputOutput builds the ContractID naming the i-th output of the input
// dispatched as shortInput during transaction tx.
func InputOutput(tx TransactionID, shortInput ShortContractID, i uint64) ContractID {
	return ContractID{Kind: KindInputOutput, Tx: tx, ShortInput: shortInput, Index: i}
}

// WithNonce returns a copy of cID asserting the given call-count.
func (cID ContractID) WithNonce(n uint64) ContractID {
	cID.Nonce = &n
	return cID
}

// canonicalBytes renders cID's identity (excluding any nonce assertion,
// which is a read-time check, not part of identity) for hashing into a
// ShortContractID.
func (cID ContractID) canonicalBytes() []byte {
	var buf []byte
	idx := make([]byte, 8)
	switch cID.Kind {
	case KindJustTransaction:
		buf = append(buf, SpecifierJustTransaction[:]...)
		buf = append(buf, cID.Tx[:]...)
	case KindTransactionOutput:
		buf = append(buf, SpecifierTransactionOutput[:]...)
		buf = append(buf, cID.Tx[:]...)
		binary.LittleEndian.PutUint64(idx, cID.Index)
		buf = append(buf, idx...)
	case KindInputOutput:
		buf = append(buf, SpecifierInputOutput[:]...)
		buf = append(buf, cID.Tx[:]...)
		buf = append(buf, cID.ShortInput[:]...)
		binary.LittleEndian.PutUint64(idx, cID.Index)
		buf = append(buf, idx...)
	}
	return buf
}

// Shorten returns the ShortContractID keying cID's input record and trust
// sets (spec §3).
func (cID ContractID) Shorten() ShortContractID {
	return ShortContractID(crypto.HashBytes(cID.canonicalBytes()))
}

// String renders cID in the form used by the persisted entry layout and
// diagnostics, with an optional " :# n" nonce suffix.
func (cID ContractID) String() string {
	var s string
	switch cID.Kind {
	case KindJustTransaction:
		s = fmt.Sprintf("tx:%s", cID.Tx)
	case KindTransactionOutput:
		s = fmt.Sprintf("tx:%s:out:%d", cID.Tx, cID.Index)
	case KindInputOutput:
		s = fmt.Sprintf("tx:%s:in:%s:out:%d", cID.Tx, cID.ShortInput, cID.Index)
	}
	if cID.Nonce != nil {
		s = fmt.Sprintf("%s :# %d", s, *cID.Nonce)
	}
	return s
}

// ParseContractID parses the String form back into a ContractID.
func ParseContractID(s string) (ContractID, error) {
	var nonce *uint64
	if i := strings.Index(s, ":#"); i >= 0 {
		n, err := strconv.ParseUint(strings.TrimSpace(s[i+2:]), 10, 64)
		if err != nil {
			return ContractID{}, fmt.Errorf("types: bad nonce suffix in %q: %w", s, err)
		}
		nonce = &n
		s = strings.TrimSpace(s[:i])
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || parts[0] != "tx" {
		return ContractID{}, fmt.Errorf("types: malformed contract id %q", s)
	}
	var tx TransactionID
	if err := tx.LoadString(parts[1]); err != nil {
		return ContractID{}, fmt.Errorf("types: malformed contract id %q: %w", s, err)
	}
	var cID ContractID
	switch {
	case len(parts) == 2:
		cID = JustTransaction(tx)
	case len(parts) == 4 && parts[2] == "out":
		i, err := strconv.ParseUint(parts[3], 10, 64)
		if err != nil {
			return ContractID{}, fmt.Errorf("types: malformed contract id %q: %w", s, err)
		}
		cID = TransactionOutput(tx, i)
	case len(parts) == 6 && parts[2] == "in" && parts[4] == "out":
		var short ShortContractID
		if err := short.LoadString(parts[3]); err != nil {
			return ContractID{}, fmt.Errorf("types: malformed contract id %q: %w", s, err)
		}
		i, err := strconv.ParseUint(parts[5], 10, 64)
		if err != nil {
			return ContractID{}, fmt.Errorf("types: malformed contract id %q: %w", s, err)
		}
		cID = InputOutput(tx, short, i)
	default:
		return ContractID{}, fmt.Errorf("types: malformed contract id %q", s)
	}
	cID.Nonce = nonce
	return cID, nil
}
