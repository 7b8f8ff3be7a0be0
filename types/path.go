package types

import "strings"

// Path is the accumulating sequence of record/constructor names an escrow
// traversal builds up while descending into a value (spec §4.3). A Locator
// escrow ID carries a Path to be resolved against some containing value.
type Path []string

// String renders p in canonical "a.b.c" form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// ParsePath parses a dot-separated path string, permitting whitespace
// around the dots (spec §6: "Locators are parsed from dot-separated path
// strings with whitespace around dots permitted").
func ParsePath(s string) Path {
	fields := strings.Split(s, ".")
	path := make(Path, len(fields))
	for i, f := range fields {
		path[i] = strings.TrimSpace(f)
	}
	return path
}

// Equal reports whether p and o name the same path.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Append returns a new Path with name appended, never mutating p's backing
// array (traversal recursion shares path prefixes across sibling fields).
func (p Path) Append(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}
