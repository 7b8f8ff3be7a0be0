package types

import "fmt"

// EscrowKind discriminates the four EscrowID variants of spec §3.
type EscrowKind uint8

const (
	// KindDirect is a resolved reference to a live escrow.
	KindDirect EscrowKind = iota
	// KindTXIn is a deferred call with its argument captured in caller
	// context, not yet invoked.
	KindTXIn
	// KindTXOut is the result of a deferred call that has completed.
	KindTXOut
	// KindLocator is a symbolic path resolved against some containing
	// value. Using a Locator in any operational context is
	// UnresolvedEscrowLocator (spec §3).
	KindLocator
)

func (k EscrowKind) String() string {
	switch k {
	case KindDirect:
		return "Direct"
	case KindTXIn:
		return "TXIn"
	case KindTXOut:
		return "TXOut"
	case KindLocator:
		return "Locator"
	default:
		return "???"
	}
}

// EscrowID[A, V] is a typed handle to an escrow accepting argument type A
// and returning value type V (spec §3). Exactly one of its variant fields
// is meaningful, selected by Kind; callers use the Direct/TXIn/TXOut/Locator
// constructors rather than building one by hand.
type EscrowID[A, V any] struct {
	Kind  EscrowKind
	Entry EntryID // meaningful for Direct, TXIn, TXOut
	Arg   A       // meaningful for TXIn
	Val   V       // meaningful for TXOut
	Path  Path    // meaningful for Locator
}

// Direct builds a resolved EscrowID referencing entry.
func Direct[A, V any](entry EntryID) EscrowID[A, V] {
	return EscrowID[A, V]{Kind: KindDirect, Entry: entry}
}

// TXIn builds a deferred-call EscrowID: entry will be invoked with arg once
// the call is made.
func TXIn[A, V any](entry EntryID, arg A) EscrowID[A, V] {
	return EscrowID[A, V]{Kind: KindTXIn, Entry: entry, Arg: arg}
}

// TXOut builds an EscrowID carrying the result val of a deferred call on
// entry that has already completed.
func TXOut[A, V any](entry EntryID, val V) EscrowID[A, V] {
	return EscrowID[A, V]{Kind: KindTXOut, Entry: entry, Val: val}
}

// LocatorID builds a symbolic EscrowID that must be resolved against a
// containing value before any operational use.
func LocatorID[A, V any](path Path) EscrowID[A, V] {
	return EscrowID[A, V]{Kind: KindLocator, Path: path}
}

// Resolved reports whether e carries a usable EntryID directly (Direct,
// TXIn, TXOut all do; Locator never does until resolved into one of the
// other three).
func (e EscrowID[A, V]) Resolved() (EntryID, bool) {
	if e.Kind == KindLocator {
		return EntryID{}, false
	}
	return e.Entry, true
}

// WithEntry returns a copy of e turned into a Direct reference to entry,
// with its Path cleared. It does not check that e was a Locator; the entry
// to pass is the one escrow.ResolveLocator returns for e's Path.
func (e EscrowID[A, V]) WithEntry(entry EntryID) EscrowID[A, V] {
	e.Kind = KindDirect
	e.Entry = entry
	e.Path = nil
	return e
}

// isEscrowID lets the reflection-driven traversal in package escrow
// recognize any EscrowID[A, V] instantiation uniformly, without needing to
// parameterize over A and V itself.
func (e EscrowID[A, V]) isEscrowID() {}

// escrowIDValue is the non-generic marker interface every EscrowID[A, V]
// instantiation satisfies.
type escrowIDValue interface {
	isEscrowID()
}

// EscrowKindReader is the read-only surface package escrow needs from any
// EscrowID[A, V] instantiation: its variant, its entry (if any) and its
// path (if any), all without knowing A or V.
type EscrowKindReader interface {
	escrowIDValue
	EscrowKind() EscrowKind
	EscrowEntry() (EntryID, bool)
	EscrowPath() (Path, bool)
}

// AsEscrowIDValue type-asserts an arbitrary value as carrying escrow-ID
// structure, for use by package escrow's reflection walker.
func AsEscrowIDValue(v interface{}) (EscrowKindReader, bool) {
	r, ok := v.(EscrowKindReader)
	return r, ok
}

// EscrowKind returns e's variant.
func (e EscrowID[A, V]) EscrowKind() EscrowKind { return e.Kind }

// EscrowEntry returns e's EntryID for the Direct/TXIn/TXOut variants.
func (e EscrowID[A, V]) EscrowEntry() (EntryID, bool) { return e.Resolved() }

// EscrowPath returns e's Path for the Locator variant.
func (e EscrowID[A, V]) EscrowPath() (Path, bool) {
	if e.Kind != KindLocator {
		return nil, false
	}
	return e.Path, true
}

// String renders e per spec §6: "<entryID> :: <type>" unless it is a
// locator, which prints as "EscrowLocator a.b.c :: <type>".
func (e EscrowID[A, V]) String() string {
	var zero V
	typeName := fmt.Sprintf("%T", zero)
	if e.Kind == KindLocator {
		return fmt.Sprintf("EscrowLocator %s :: %s", e.Path, typeName)
	}
	return fmt.Sprintf("%s :: %s", e.Entry, typeName)
}
