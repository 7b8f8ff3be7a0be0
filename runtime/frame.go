// Package runtime implements the resumable contract coroutine abstraction
// of spec §2/§4.2: a contract is a two-message {Fresh, Awaiting, Spent}
// state machine over a dynamic argument, closing over its own private
// escrow map, with escrows crossing every call boundary in both
// directions.
package runtime

import (
	"github.com/NebulousLabs/demotemutex"

	"github.com/therewillbecode/Fae-1/crypto"
	"github.com/therewillbecode/Fae-1/escrow"
)

// Frame is the ambient context a contract or transaction body runs under
// (spec §4.2, §5): a private escrow map pushed on call and popped on
// return, an append-only collector for this call's own new contract
// publications (spec §4.1's "Scoping rule": outputs produced during input
// dispatch are attributed to that input, not the transaction, because each
// input dispatch runs under a fresh Outputs scope), and the signer
// identity `sender` reports. mu guards Escrows the same way the teacher
// guards its own shared maps: a frame is meant to be touched by exactly one
// goroutine at a time (spec §5), and mu.Lock turns a violation of that into
// a deadlock/race-detector hit rather than silent corruption.
type Frame struct {
	Escrows escrow.EscrowMap
	Outputs []*Contract
	signer  crypto.PublicKey
	mu      demotemutex.DemoteMutex
}

// NewFrame returns an empty frame for the given signer.
func NewFrame(sender crypto.PublicKey) *Frame {
	return &Frame{Escrows: escrow.EscrowMap{}, signer: sender}
}

// Sub returns a fresh empty frame inheriting f's signer identity, for a
// contract's own private ambient context (spec §4.2: "Contracts close over
// an escrow map").
func (f *Frame) Sub() *Frame {
	return NewFrame(f.signer)
}

// CrossInbound transfers every escrow referenced by arg from caller into
// callee before callee is invoked with arg (spec §4.2: "Escrows flow in and
// out with each call"). The value's shape is validated before anything
// crosses, so a call boundary never has to unwind a partial transfer.
func CrossInbound(caller, callee *Frame, arg interface{}) error {
	if err := escrow.ValidateShape(arg); err != nil {
		return err
	}
	caller.mu.Lock()
	defer caller.mu.Unlock()
	callee.mu.Lock()
	defer callee.mu.Unlock()
	return escrow.Transfer(caller.Escrows, callee.Escrows, arg)
}

// CrossOutbound transfers every escrow referenced by out from callee back
// into caller after a call completes.
func CrossOutbound(caller, callee *Frame, out interface{}) error {
	if err := escrow.ValidateShape(out); err != nil {
		return err
	}
	callee.mu.Lock()
	defer callee.mu.Unlock()
	caller.mu.Lock()
	defer caller.mu.Unlock()
	return escrow.Transfer(callee.Escrows, caller.Escrows, out)
}

// Clone returns a frame with its own independent copy of f's escrow map and
// outputs, for a contract whose coroutine state is being speculatively
// advanced (see Contract.Clone) without yet touching the original.
func (f *Frame) Clone() *Frame {
	f.mu.RLock()
	defer f.mu.RUnlock()
	clone := &Frame{
		Escrows: make(escrow.EscrowMap, len(f.Escrows)),
		Outputs: append([]*Contract(nil), f.Outputs...),
		signer:  f.signer,
	}
	for id, v := range f.Escrows {
		if c, ok := v.(*Contract); ok {
			v = c.Clone()
		}
		clone.Escrows[id] = v
	}
	return clone
}

// Closed reports whether f's escrow map is empty, the precondition spec
// invariant 3 and §4.1 step 4 (Closure check) require of a transaction
// body's frame at the end of a run.
func (f *Frame) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.Escrows) == 0
}
