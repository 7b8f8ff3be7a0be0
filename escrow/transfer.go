package escrow

import "github.com/therewillbecode/Fae-1/types"

// EscrowMap is the ambient store each contract/transaction frame owns (spec
// §4.2, §5): a private map from EntryID to the live escrow object backing
// it. The concrete escrow representation is owned by package runtime; this
// package only moves entries between maps by ID, never inspecting them.
type EscrowMap map[types.EntryID]interface{}

// Take removes and returns the entry for id, if present.
func (m EscrowMap) Take(id types.EntryID) (interface{}, bool) {
	v, ok := m[id]
	if ok {
		delete(m, id)
	}
	return v, ok
}

// Put installs v under id, overwriting any existing entry (callers are
// expected to have already confirmed id is fresh or that overwriting is
// intended, e.g. a useEscrow continuation replacing the same slot).
func (m EscrowMap) Put(id types.EntryID, v interface{}) {
	m[id] = v
}

// Transfer moves the backing entries of every escrow referenced by v out of
// src and into dst (spec §4.2's "Escrow transfer discipline"). Duplicate
// references to the same entry within v are DuplicateEscrow; a reference
// whose backing entry is absent from src is MissingEscrow.
func Transfer(src, dst EscrowMap, v interface{}) error {
	refs, err := Traverse(v)
	if err != nil {
		return err
	}
	seen := make(map[types.EntryID]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.Entry] {
			return types.NewDuplicateEscrow(ref.Entry)
		}
		seen[ref.Entry] = true
		backing, ok := src.Take(ref.Entry)
		if !ok {
			return types.NewMissingEscrow(ref.Entry)
		}
		dst.Put(ref.Entry, backing)
	}
	return nil
}
