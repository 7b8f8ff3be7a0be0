// Package storage implements the transaction entry and nonce-checked lensed
// access of spec §3/§4.5: a mapping from TransactionID to TransactionEntry,
// with per-slot contract storage that survives spend by retaining its index
// and nonce while clearing its occupant.
package storage

import (
	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/runtime"
	"github.com/therewillbecode/Fae-1/types"
)

// OutputSlot is one entry of an indexed output scope (spec §3's "outputs:
// indexed mapping position -> (Contract, nonce)"). Contract is nil once the
// occupying contract has spent; Nonce is retained regardless, per invariant
// 1: "a deleted slot becomes empty but retains its nonce".
type OutputSlot struct {
	Contract *runtime.Contract
	Nonce    uint64
}

// InputOutputVersions records one dispatched input's own output scope and
// declared type shapes (spec §3).
type InputOutputVersions struct {
	RealID   types.ContractID
	Outputs  []*OutputSlot
	Versions map[types.VersionID]types.TypeID
}

// TransactionEntry is the per-transaction audit record spec §3 and §6
// describe. Once poisoned (via Poisoned), every accessor below re-raises
// the captured failure instead of returning a value (spec §4.1's
// "Exception safety").
type TransactionEntry struct {
	inputOutputs map[types.ShortContractID]*InputOutputVersions
	inputOrder   []types.ShortContractID
	outputs      []*OutputSlot
	signers      map[string]crypto.PublicKey
	result       interface{}
	err          error
}

// NewTransactionEntry builds a successfully committed entry (spec §4.1 step
// 5, "Commit").
func NewTransactionEntry(
	inputOutputs map[types.ShortContractID]*InputOutputVersions,
	inputOrder []types.ShortContractID,
	outputs []*OutputSlot,
	signers map[string]crypto.PublicKey,
	result interface{},
) *TransactionEntry {
	return &TransactionEntry{
		inputOutputs: inputOutputs,
		inputOrder:   inputOrder,
		outputs:      outputs,
		signers:      signers,
		result:       result,
	}
}

// Poisoned builds the failure-carrying entry installed in place of a failed
// run (spec §4.1's "Exception safety"): its semantic fields re-raise err
// rather than returning data.
func Poisoned(err error) *TransactionEntry {
	return &TransactionEntry{err: err}
}

// Poisoned reports whether e is a failed-run record.
func (e *TransactionEntry) Poisoned() bool { return e.err != nil }

// InputOutputs returns the per-input output scopes, or the poisoning error.
func (e *TransactionEntry) InputOutputs() (map[types.ShortContractID]*InputOutputVersions, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.inputOutputs, nil
}

// InputOrder returns the dispatched order of short input IDs, or the
// poisoning error.
func (e *TransactionEntry) InputOrder() ([]types.ShortContractID, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.inputOrder, nil
}

// Outputs returns the transaction's top-level output slots, or the
// poisoning error.
func (e *TransactionEntry) Outputs() ([]*OutputSlot, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.outputs, nil
}

// Signers returns the name-to-public-key map, or the poisoning error.
func (e *TransactionEntry) Signers() (map[string]crypto.PublicKey, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.signers, nil
}

// Result returns the transaction's typed return value, or the poisoning
// error.
func (e *TransactionEntry) Result() (interface{}, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

// Err returns the captured failure, or nil for a committed entry.
func (e *TransactionEntry) Err() error { return e.err }
