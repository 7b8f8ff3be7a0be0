package build

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Parse attempts to create a version based on a given string.
func Parse(raw string) (ver ProtocolVersion, err error) {
	parts := versionReg.FindStringSubmatch(raw)
	if parts == nil {
		err = InvalidVersionError(raw)
		return
	}

	major := parseComponent(parts[1])
	minor := parseComponent(parts[2])
	patch := parseComponent(parts[3])
	buildComponent := parseComponent(parts[4])

	ver = NewPrereleaseVersion(major, minor, patch, buildComponent, parts[5])
	return
}

func parseComponent(raw string) uint8 {
	if raw == "" {
		return 0
	}
	// the regexp already restricts this to the 0-255 range
	n, _ := strconv.ParseUint(raw, 10, 8)
	return uint8(n)
}

// MustParse creates a version based on a given string, panicking in case
// the given string is invalid.
func MustParse(raw string) ProtocolVersion {
	version, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return version
}

// NewVersion creates a new protocol version with no prerelease tag.
func NewVersion(major, minor, patch, build uint8) ProtocolVersion {
	return NewPrereleaseVersion(major, minor, patch, build, "")
}

// NewPrereleaseVersion creates a new protocol prerelease version.
func NewPrereleaseVersion(major, minor, patch, build uint8, prerelease string) ProtocolVersion {
	return ProtocolVersion{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Build:      build,
		Prerelease: prerelease,
	}
}

// ProtocolVersion defines the protocol version the engine speaks, used to
// tag an audit log's header and to report the running build's version
// (spec's ambient build-identity stack, carried regardless of which
// functional Non-goals apply).
type ProtocolVersion struct {
	Major, Minor, Patch, Build uint8
	Prerelease                 string
}

// InvalidVersionError indicates a protocol version string is invalid.
type InvalidVersionError string

// Error implements the error interface for InvalidVersionError.
func (e InvalidVersionError) Error() string {
	if len(e) == 0 {
		return "invalid version: <nil>"
	}
	return "invalid version: " + string(e)
}

// Compare returns an integer comparing this version with another version:
// -1 if pv < other, 0 if pv == other, 1 if pv > other. Two versions with
// equal numeric components but different (both non-empty) prerelease tags
// compare as equal; a prerelease always compares lower than the
// corresponding release.
func (pv *ProtocolVersion) Compare(other ProtocolVersion) int {
	if c := compareU8(pv.Major, other.Major); c != 0 {
		return c
	}
	if c := compareU8(pv.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareU8(pv.Patch, other.Patch); c != 0 {
		return c
	}
	if c := compareU8(pv.Build, other.Build); c != 0 {
		return c
	}

	isAPrerelease := pv.Prerelease != ""
	isBPrerelease := other.Prerelease != ""
	if !isAPrerelease && isBPrerelease {
		return 1
	} else if isAPrerelease && !isBPrerelease {
		return -1
	}
	return 0
}

func compareU8(a, b uint8) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of this ProtocolVersion: three
// or four dot-separated components (the fourth, Build, only when nonzero)
// plus an optional "-prerelease" suffix.
func (pv *ProtocolVersion) String() string {
	str := fmt.Sprintf("%d.%d.%d", pv.Major, pv.Minor, pv.Patch)
	if pv.Build != 0 {
		str += fmt.Sprintf(".%d", pv.Build)
	}
	if pv.Prerelease != "" {
		str += "-" + pv.Prerelease
	}
	return str
}

// MarshalJSON implements json.Marshaler.
func (pv ProtocolVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal(pv.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (pv *ProtocolVersion) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return InvalidVersionError(string(b))
	}

	result, err := Parse(raw)
	if err != nil {
		return err
	}
	*pv = result
	return nil
}

var (
	// rawVersion is used to generate Fae's own protocol version.
	rawVersion = "v1.0.0"
	// Version is the current version of the engine.
	Version ProtocolVersion
)

const numRe = `(0{0,2}[0-9]|[0-1]?[0-9]{1,2}|2[0-4][0-9]|25[0-5])`

const versionRe = `^v?` + numRe + `(?:\.` + numRe + `)?(?:\.` + numRe + `)?(?:\.` + numRe + `)?(?:-(.+?))?$`

// versionReg holds the compiled regexp for all valid versions.
var versionReg = regexp.MustCompile(versionRe)

func init() {
	Version = MustParse(rawVersion)
}
