package types

import "fmt"

// ErrorKind enumerates the engine's error taxonomy (spec §7). Unlike a bare
// sentinel error, every EngineError also carries the identifying fields
// spec §7 requires ("enough identity to diagnose without inspecting engine
// internals"), modeled on the teacher's ClientError{Err, Kind} shape.
type ErrorKind int

const (
	// Input errors.
	ErrBadInput ErrorKind = iota
	ErrBadChainedInput
	ErrUntrustedInput
	ErrBadArgType
	ErrTooManyInputs
	ErrNotEnoughInputs

	// Escrow errors.
	ErrBadEscrowID
	ErrOpenEscrows
	ErrMissingEscrow
	ErrDuplicateEscrow
	ErrUnresolvedEscrowLocator
	ErrNotEscrowOut

	// Storage errors.
	ErrBadTransactionID
	ErrBadContractID
	ErrBadInputID
	ErrBadNonce
	ErrInvalidNonceAt
	ErrInvalidContractID

	// Engine errors.
	ErrInvalidTransactionOp
)

var errorKindNames = map[ErrorKind]string{
	ErrBadInput:                "bad input",
	ErrBadChainedInput:         "bad chained input",
	ErrUntrustedInput:          "untrusted input",
	ErrBadArgType:              "bad argument type",
	ErrTooManyInputs:           "too many inputs",
	ErrNotEnoughInputs:         "not enough inputs",
	ErrBadEscrowID:             "bad escrow id",
	ErrOpenEscrows:             "open escrows",
	ErrMissingEscrow:           "missing escrow",
	ErrDuplicateEscrow:         "duplicate escrow",
	ErrUnresolvedEscrowLocator: "unresolved escrow locator",
	ErrNotEscrowOut:            "not an escrow output",
	ErrBadTransactionID:        "bad transaction id",
	ErrBadContractID:           "bad contract id",
	ErrBadInputID:              "bad input id",
	ErrBadNonce:                "bad nonce",
	ErrInvalidNonceAt:          "invalid nonce at slot",
	ErrInvalidContractID:       "invalid contract id",
	ErrInvalidTransactionOp:    "invalid transaction operation",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return "???"
}

// EngineError is the concrete error type for every kind in spec §7. Use the
// constructor functions below rather than building one directly; they fill
// in exactly the identifying fields each kind calls for.
type EngineError struct {
	Kind ErrorKind

	ContractID    *ContractID
	SourceID      *ContractID
	Short         *ShortContractID
	Tx            *TransactionID
	EntryID       *EntryID
	Path          Path
	Index         int
	ExpectedType  TypeID
	ActualType    TypeID
	ExpectedNonce uint64
	ActualNonce   uint64
	Wrapped       error
}

func (e *EngineError) Error() string {
	switch e.Kind {
	case ErrBadInput:
		return fmt.Sprintf("bad input: no published contract at %s", e.ContractID)
	case ErrBadChainedInput:
		return fmt.Sprintf("bad chained input: %s references input index %d, which does not precede it", e.ContractID, e.Index)
	case ErrUntrustedInput:
		return fmt.Sprintf("untrusted input: %s does not trust %s", e.ContractID, e.SourceID)
	case ErrBadArgType:
		return fmt.Sprintf("bad argument type: expected %s, got %s", e.ExpectedType, e.ActualType)
	case ErrTooManyInputs:
		return "too many inputs: more dynamics supplied than the body declares fields"
	case ErrNotEnoughInputs:
		return "not enough inputs: fewer dynamics supplied than the body declares fields"
	case ErrBadEscrowID:
		return fmt.Sprintf("bad escrow id: no live escrow at entry %s", e.EntryID)
	case ErrOpenEscrows:
		return "open escrows: escrow map is non-empty at transaction end"
	case ErrMissingEscrow:
		return fmt.Sprintf("missing escrow: referenced entry %s has no backing in the source frame", e.EntryID)
	case ErrDuplicateEscrow:
		return fmt.Sprintf("duplicate escrow: entry %s referenced more than once in one value", e.EntryID)
	case ErrUnresolvedEscrowLocator:
		return fmt.Sprintf("unresolved escrow locator: %s", e.Path)
	case ErrNotEscrowOut:
		return "not an escrow output: value is not an EscrowID"
	case ErrBadTransactionID:
		return fmt.Sprintf("bad transaction id: no entry for %s", e.Tx)
	case ErrBadContractID:
		return fmt.Sprintf("bad contract id: %s", e.ContractID)
	case ErrBadInputID:
		return fmt.Sprintf("bad input id: no input recorded for %s", e.Short)
	case ErrBadNonce:
		return fmt.Sprintf("bad nonce: %s asserted %d, current is %d", e.ContractID, e.ExpectedNonce, e.ActualNonce)
	case ErrInvalidNonceAt:
		return fmt.Sprintf("invalid nonce at %s", e.ContractID)
	case ErrInvalidContractID:
		return fmt.Sprintf("invalid contract id: %s is not dispatchable", e.ContractID)
	case ErrInvalidTransactionOp:
		return "invalid transaction operation: release/spend are not available to a transaction body"
	default:
		return e.Kind.String()
	}
}

// Unwrap exposes any wrapped collaborator error (e.g. a Decoder failure
// behind BadArgType) for errors.As/errors.Is.
func (e *EngineError) Unwrap() error { return e.Wrapped }

// Is reports equivalence by Kind only, so callers can write
// errors.Is(err, types.KindError(types.ErrOpenEscrows)) without needing to
// reconstruct the identifying fields.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	return ok && e.Kind == t.Kind
}

// KindError returns a bare sentinel of the given kind, for errors.Is
// comparisons against a *EngineError with populated identity fields.
func KindError(k ErrorKind) *EngineError { return &EngineError{Kind: k} }

func NewBadInput(cID ContractID) error {
	return &EngineError{Kind: ErrBadInput, ContractID: &cID}
}

func NewBadChainedInput(cID ContractID, i int) error {
	return &EngineError{Kind: ErrBadChainedInput, ContractID: &cID, Index: i}
}

func NewUntrustedInput(cID, source ContractID) error {
	return &EngineError{Kind: ErrUntrustedInput, ContractID: &cID, SourceID: &source}
}

func NewBadArgType(expected, actual TypeID) error {
	return &EngineError{Kind: ErrBadArgType, ExpectedType: expected, ActualType: actual}
}

func NewTooManyInputs() error { return &EngineError{Kind: ErrTooManyInputs} }

func NewNotEnoughInputs() error { return &EngineError{Kind: ErrNotEnoughInputs} }

func NewBadEscrowID(e EntryID) error {
	return &EngineError{Kind: ErrBadEscrowID, EntryID: &e}
}

func NewOpenEscrows() error { return &EngineError{Kind: ErrOpenEscrows} }

func NewMissingEscrow(e EntryID) error {
	return &EngineError{Kind: ErrMissingEscrow, EntryID: &e}
}

func NewDuplicateEscrow(e EntryID) error {
	return &EngineError{Kind: ErrDuplicateEscrow, EntryID: &e}
}

func NewUnresolvedEscrowLocator(p Path) error {
	return &EngineError{Kind: ErrUnresolvedEscrowLocator, Path: p}
}

func NewNotEscrowOut() error { return &EngineError{Kind: ErrNotEscrowOut} }

func NewBadTransactionID(tx TransactionID) error {
	return &EngineError{Kind: ErrBadTransactionID, Tx: &tx}
}

func NewBadContractID(cID ContractID) error {
	return &EngineError{Kind: ErrBadContractID, ContractID: &cID}
}

func NewBadInputID(short ShortContractID) error {
	return &EngineError{Kind: ErrBadInputID, Short: &short}
}

func NewBadNonce(cID ContractID, actual, expected uint64) error {
	return &EngineError{Kind: ErrBadNonce, ContractID: &cID, ActualNonce: actual, ExpectedNonce: expected}
}

func NewInvalidNonceAt(cID ContractID) error {
	return &EngineError{Kind: ErrInvalidNonceAt, ContractID: &cID}
}

func NewInvalidContractID(cID ContractID) error {
	return &EngineError{Kind: ErrInvalidContractID, ContractID: &cID}
}

func NewInvalidTransactionOp() error { return &EngineError{Kind: ErrInvalidTransactionOp} }
