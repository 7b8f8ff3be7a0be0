package storage

import (
	"github.com/therewillbecode/Fae-1/runtime"
	"github.com/therewillbecode/Fae-1/types"
)

// Storage is the mapping from TransactionID to TransactionEntry (spec §3).
type Storage map[types.TransactionID]*TransactionEntry

// New returns an empty storage map.
func New() Storage { return Storage{} }

// Entry fetches the committed or poisoned entry at tx, or BadTransactionID.
func (s Storage) Entry(tx types.TransactionID) (*TransactionEntry, error) {
	e, ok := s[tx]
	if !ok {
		return nil, types.NewBadTransactionID(tx)
	}
	return e, nil
}

// Install commits entry under tx (spec §4.1 step 5, and the poisoned-entry
// install of "Exception safety"). It is the only way a TransactionEntry's
// own bookkeeping (inputOrder, signers, result) is ever written; slots
// inside it remain mutable afterward via Update.
func (s Storage) Install(tx types.TransactionID, entry *TransactionEntry) {
	s[tx] = entry
}

// slot resolves cID to its backing OutputSlot (spec §4.5's descent rules).
// JustTransaction is never dispatchable; a missing level at any depth
// raises the targeted error named for that level.
func (s Storage) slot(cID types.ContractID) (*OutputSlot, error) {
	switch cID.Kind {
	case types.KindJustTransaction:
		return nil, types.NewBadContractID(cID)

	case types.KindTransactionOutput:
		entry, ok := s[cID.Tx]
		if !ok {
			return nil, types.NewBadTransactionID(cID.Tx)
		}
		outputs, err := entry.Outputs()
		if err != nil {
			return nil, err
		}
		if cID.Index >= uint64(len(outputs)) {
			return nil, types.NewBadContractID(cID)
		}
		return outputs[cID.Index], nil

	case types.KindInputOutput:
		entry, ok := s[cID.Tx]
		if !ok {
			return nil, types.NewBadTransactionID(cID.Tx)
		}
		inputOutputs, err := entry.InputOutputs()
		if err != nil {
			return nil, err
		}
		iov, ok := inputOutputs[cID.ShortInput]
		if !ok {
			return nil, types.NewBadInputID(cID.ShortInput)
		}
		if cID.Index >= uint64(len(iov.Outputs)) {
			return nil, types.NewBadContractID(cID)
		}
		return iov.Outputs[cID.Index], nil

	default:
		return nil, types.NewBadContractID(cID)
	}
}

// Get resolves cID to its backing slot (spec §4.5). A nonce assertion
// (`cID :# n`) that does not match the slot's current nonce is BadNonce. A
// structurally valid but currently empty slot (spent, or never filled) is
// returned with a nil Contract rather than as an error — it is the
// caller's place to decide what an absent contract means (input dispatch
// raises BadInput; render prints an empty output).
func (s Storage) Get(cID types.ContractID) (*OutputSlot, error) {
	slot, err := s.slot(cID)
	if err != nil {
		return nil, err
	}
	if cID.Nonce != nil && *cID.Nonce != slot.Nonce {
		return nil, types.NewBadNonce(cID, slot.Nonce, *cID.Nonce)
	}
	return slot, nil
}

// Update replaces the contract occupying cID's slot (next is nil for a
// spend's clear) and increments the slot's nonce, preserving the slot's
// index (spec §4.5: "writing a new continuation at an existing slot
// increments the nonce ... clearing leaves the slot empty but the slot
// index remains assigned").
func (s Storage) Update(cID types.ContractID, next *runtime.Contract) error {
	slot, err := s.slot(cID)
	if err != nil {
		return err
	}
	slot.Contract = next
	slot.Nonce++
	return nil
}

// SetSlot forcibly sets cID's slot to contract with nonce, with no
// increment of its own (spec §9's staged commit: the caller tracks its own
// working nonce across a run and applies the final state in one step, once
// the whole run has succeeded).
func (s Storage) SetSlot(cID types.ContractID, contract *runtime.Contract, nonce uint64) error {
	slot, err := s.slot(cID)
	if err != nil {
		return err
	}
	slot.Contract = contract
	slot.Nonce = nonce
	return nil
}

// NewOutputSlots wraps freshly published contracts as a zero-indexed,
// zero-nonce output scope (spec §4.5: "installing into an empty slot
// starts the nonce at 0"), for a transaction's top-level outputs or one
// input's own output scope at commit time.
func NewOutputSlots(contracts []*runtime.Contract) []*OutputSlot {
	slots := make([]*OutputSlot, len(contracts))
	for i, c := range contracts {
		slots[i] = &OutputSlot{Contract: c, Nonce: 0}
	}
	return slots
}
