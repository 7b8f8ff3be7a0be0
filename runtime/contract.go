package runtime

import (
	"github.com/therewillbecode/Fae-1/escrow"
	"github.com/therewillbecode/Fae-1/types"
)

// State is a contract's position in the two-message protocol of spec §2:
// "Fresh (never called), Awaiting (released, ready for its next call), or
// Spent (closed, cannot be called again)".
type State int

const (
	StateFresh State = iota
	StateAwaiting
	StateSpent
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateAwaiting:
		return "awaiting"
	case StateSpent:
		return "spent"
	default:
		return "???"
	}
}

// Func is a contract's resumable body. It runs under its own private frame
// and the argument it was called with, and must return the result of
// either Release or Spend — there is no third way to return, which is what
// makes release/spend exhaustive rather than independently callable
// operations (spec §4.2).
type Func func(f *Frame, arg interface{}) (next Func, out interface{}, spent bool)

// Release suspends a contract: out is yielded now, and next runs the next
// time the contract is called (spec §4.2: "release(v) -> next_arg").
func Release(out interface{}, next Func) (Func, interface{}, bool) {
	return next, out, false
}

// Spend closes a contract: out is yielded and the contract can never be
// called again (spec §4.2: "spend(v) -> Closed(v)").
func Spend(out interface{}) (Func, interface{}, bool) {
	return nil, out, true
}

// Contract is the resumable coroutine of spec §2/§4.2: an opaque callable
// taking a dynamic argument and producing either an updated continuation or
// a final value, closing over a private escrow map of its own across every
// call. An escrow (spec §3) is exactly this: a Contract installed under an
// EntryID rather than published as a transaction input.
type Contract struct {
	state State
	fn    Func
	nonce uint64
	frame *Frame

	argType    types.TypeID
	returnType types.TypeID
	trusts     map[types.ShortContractID]bool
}

// NewContract wraps code as a fresh contract private to caller's signer
// identity, with no declared argument/return type and an empty trust set.
// Used for escrows and other contracts never dispatched by ContractID,
// which therefore never face the dispatch-time checks of invariant 5 or
// the trust discipline of §4.1.
func NewContract(caller *Frame, code Func) *Contract {
	return &Contract{state: StateFresh, fn: code, frame: caller.Sub()}
}

// NewTypedContract is NewContract plus the declared static argument and
// return TypeIDs a published, dispatchable contract carries (spec
// invariant 5: "A contract's return value has a declared static type; the
// dynamic argument it receives must match that type, else BadArgType") and
// the trust set it was published with (spec §4.1: "the trust set declared
// at cID's publication").
func NewTypedContract(caller *Frame, argType, returnType types.TypeID, trusts map[types.ShortContractID]bool, code Func) *Contract {
	c := NewContract(caller, code)
	c.argType = argType
	c.returnType = returnType
	c.trusts = trusts
	return c
}

// ArgType returns c's declared argument TypeID, or "" if c was constructed
// without one (never dispatched by ContractID).
func (c *Contract) ArgType() types.TypeID { return c.argType }

// ReturnType returns c's declared return TypeID, or "" if c was constructed
// without one.
func (c *Contract) ReturnType() types.TypeID { return c.returnType }

// Trusts reports whether source is in c's declared trust set (spec §4.1:
// "If shorten(sourceCID) ∉ trusts, fail UntrustedInput").
func (c *Contract) Trusts(source types.ShortContractID) bool {
	return c.trusts[source]
}

// State reports c's current protocol state.
func (c *Contract) State() State { return c.state }

// Nonce reports the number of completed calls to c since creation (spec
// invariant 2: "A contract's nonce increases by exactly one on every
// successful call and never otherwise").
func (c *Contract) Nonce() uint64 { return c.nonce }

// Clone returns a contract with its own independent coroutine state and
// private frame, so calling it never advances or mutates c (spec §9
// "avoid partial in-place mutation"). Used by the engine's staging layer to
// speculatively run a dispatched contract without that advance becoming
// visible in real storage unless the whole transaction later commits.
func (c *Contract) Clone() *Contract {
	clone := *c
	clone.frame = c.frame.Clone()
	if c.trusts != nil {
		clone.trusts = make(map[types.ShortContractID]bool, len(c.trusts))
		for k, v := range c.trusts {
			clone.trusts[k] = v
		}
	}
	return &clone
}

// Absorb transfers the escrows referenced by each value in backing from
// caller into c's own private frame, for use at creation time before c has
// ever been called (spec §4.2: "newEscrow(backing, code)" /
// "newContract(backing, trusts, code)").
func (c *Contract) Absorb(caller *Frame, backing []interface{}) error {
	for _, b := range backing {
		if err := CrossInbound(caller, c.frame, b); err != nil {
			return err
		}
	}
	return nil
}

// Call invokes c with arg under caller, crossing escrows referenced by arg
// into c's private frame first and escrows referenced by the result back
// out to caller afterward, then advances c's protocol state.
func (c *Contract) Call(caller *Frame, arg interface{}) (interface{}, error) {
	if c.state == StateSpent {
		return nil, types.NewBadEscrowID(types.EntryID{})
	}
	if err := CrossInbound(caller, c.frame, arg); err != nil {
		return nil, err
	}
	next, out, spent := c.fn(c.frame, arg)
	if err := CrossOutbound(caller, c.frame, out); err != nil {
		return nil, err
	}
	c.nonce++
	// Contracts c published during this call belong to the caller's output
	// scope, not to c's private frame.
	caller.Outputs = append(caller.Outputs, c.frame.Outputs...)
	c.frame.Outputs = nil
	if spent {
		c.state = StateSpent
		c.fn = nil
	} else {
		c.state = StateAwaiting
		c.fn = next
	}
	// out escapes c's own frame into the caller's history/storage; clone it
	// so nothing c.fn's closure still holds (e.g. a captured slice reused by
	// next) can alias what the caller ends up recording.
	result, err := escrow.DeepCopy(out)
	if err != nil {
		return nil, err
	}
	return result, nil
}
