package runtime

import (
	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/types"
)

// NewEscrow allocates a fresh EntryID and installs a new escrow — a
// Contract running code, privately backed by backing — into f's escrow map
// (spec §4.2: "newEscrow(backing, code)"). The returned EntryID is the
// escrow's handle; callers typically wrap it as an EscrowID via
// types.Direct before handing it onward.
func (f *Frame) NewEscrow(backing []interface{}, code Func) (types.EntryID, error) {
	c := NewContract(f, code)
	if err := c.Absorb(f, backing); err != nil {
		return types.EntryID{}, err
	}
	entry := types.NewEntryID()
	f.Escrows.Put(entry, c)
	return entry, nil
}

// UseEscrow invokes the escrow at entry with arg (spec §4.2:
// "useEscrow(eID, arg)"), crossing escrows referenced by arg and by the
// result through the escrow's own private frame, and removes entry from f
// once the escrow spends. Calling an entry with no live escrow is
// BadEscrowID.
func (f *Frame) UseEscrow(entry types.EntryID, arg interface{}) (interface{}, error) {
	v, ok := f.Escrows[entry]
	if !ok {
		return nil, types.NewBadEscrowID(entry)
	}
	c := v.(*Contract)
	out, err := c.Call(f, arg)
	if err != nil {
		return nil, err
	}
	if c.State() == StateSpent {
		delete(f.Escrows, entry)
	}
	return out, nil
}

// NewPublishedContract creates a fresh top-level Contract backed by backing,
// declared with argType/returnType for the dispatch-time BadArgType check
// (invariant 5), and records it into f's Outputs for the engine to turn
// into a storage slot once the current call returns (spec §4.2:
// "newContract(backing, trusts, code)"). Unlike NewEscrow, the new contract
// is not addressed by EntryID within f; it surfaces only as one of f's
// Outputs.
func (f *Frame) NewPublishedContract(backing []interface{}, trusts map[types.ShortContractID]bool, argType, returnType types.TypeID, code Func) error {
	c := NewTypedContract(f, argType, returnType, trusts, code)
	if err := c.Absorb(f, backing); err != nil {
		return err
	}
	f.Outputs = append(f.Outputs, c)
	return nil
}

// Sender returns the public key of the transaction's signer (spec §4.2:
// "sender (returns the signer public key)"). Available uniformly to
// contract and transaction bodies alike; it does not change across nested
// calls within one transaction's execution.
func (f *Frame) Sender() crypto.PublicKey { return f.signer }
