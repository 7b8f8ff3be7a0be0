// Package escrow implements the structural escrow-reference traversal of
// spec §4.3: a generic walk over any value of statically-known shape that
// visits every EscrowID it transitively contains, carrying an accumulating
// path of record/constructor names. It backs linearity tracking (transfer
// at call boundaries) and Locator resolution.
package escrow

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/copystructure"
	"github.com/mitchellh/reflectwalk"
	"github.com/therewillbecode/Fae-1/types"
)

// Ref is one escrow reference discovered by Traverse, paired with the
// structural path it was found at.
type Ref struct {
	Path  types.Path
	Entry types.EntryID
}

// Traverse walks v and returns every EscrowID it transitively contains, in
// the order spec §4.3 requires: when traversing a TXIn, its captured
// argument is visited first, and the TXIn itself is "presented" (recorded)
// afterward, so transfer moves any escrows nested in the argument before
// the deferred call's own entry. Unexported fields are not descended into:
// a value's escrow structure is part of its public shape, per the
// "statically-known shape" precondition in spec §4.3.
func Traverse(v interface{}) ([]Ref, error) {
	var refs []Ref
	if err := walk(reflect.ValueOf(v), nil, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func walk(v reflect.Value, path types.Path, refs *[]Ref) error {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return walk(v.Elem(), path, refs)
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return walk(v.Elem(), path, refs)
	}

	if v.CanInterface() {
		if r, ok := types.AsEscrowIDValue(v.Interface()); ok {
			return walkEscrowID(v, r, path, refs)
		}
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" { // unexported
				continue
			}
			if err := walk(v.Field(i), path.Append(f.Name), refs); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		// Elements are not named record fields, so they do not extend the
		// symbolic path (spec GLOSSARY: "a symbolic path (record/constructor
		// names)"). Two elements independently containing an escrow at the
		// same relative shape therefore share a path, and a Locator that
		// names it is genuinely ambiguous.
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), path, refs); err != nil {
				return err
			}
		}
	case reflect.Map:
		for _, k := range v.MapKeys() {
			if err := walk(v.MapIndex(k), path, refs); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkEscrowID(v reflect.Value, r types.EscrowKindReader, path types.Path, refs *[]Ref) error {
	switch r.EscrowKind() {
	case types.KindTXIn:
		if err := walk(v.FieldByName("Arg"), path.Append("arg"), refs); err != nil {
			return err
		}
	case types.KindTXOut:
		if err := walk(v.FieldByName("Val"), path.Append("val"), refs); err != nil {
			return err
		}
	}
	if entry, ok := r.EscrowEntry(); ok {
		*refs = append(*refs, Ref{Path: path, Entry: entry})
	}
	// A Locator contributes no entry here; ResolveLocator turns it into one,
	// or UnresolvedEscrowLocator is raised at the point of operational use.
	return nil
}

// ResolveLocator finds the unique entry at path within root (spec §4.3:
// "Locator resolution"). Zero matches or more than one match is
// UnresolvedEscrowLocator(path).
func ResolveLocator(root interface{}, path types.Path) (types.EntryID, error) {
	refs, err := Traverse(root)
	if err != nil {
		return types.EntryID{}, err
	}
	var found *types.EntryID
	for i := range refs {
		if !refs[i].Path.Equal(path) {
			continue
		}
		if found != nil {
			return types.EntryID{}, types.NewUnresolvedEscrowLocator(path)
		}
		e := refs[i].Entry
		found = &e
	}
	if found == nil {
		return types.EntryID{}, types.NewUnresolvedEscrowLocator(path)
	}
	return *found, nil
}

// DeepCopy clones v so a resolved Locator substitution (or any other
// call-boundary rewrite) never aliases the source frame's own copy.
// Grounded on the teacher's dependency graph: github.com/mitchellh/copystructure.
func DeepCopy(v interface{}) (interface{}, error) {
	return copystructure.Copy(v)
}

// shapeValidator rejects value kinds that cannot cross a call boundary
// (channels, funcs, unsafe pointers) before the engine accepts an argument
// or return value. This is the runtime-check alternative spec §9 allows
// ("require user types to provide a declarative traversal description ...
// the engine only needs the capability, not a particular encoding"),
// realized with the teacher's vendored github.com/mitchellh/reflectwalk
// rather than a hand-rolled leaf-kind switch, since reflectwalk already
// knows how to reach every leaf of an arbitrary nested shape.
type shapeValidator struct{}

func (shapeValidator) Primitive(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Errorf("escrow: value shape contains unsupported kind %s", v.Kind())
	}
	return nil
}

// ValidateShape reports an error if v contains any value of a kind that
// cannot be carried across a contract call boundary.
func ValidateShape(v interface{}) error {
	return reflectwalk.Walk(v, shapeValidator{})
}
