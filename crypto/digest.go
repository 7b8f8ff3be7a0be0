// Package crypto provides the fixed-size digests, key types and signing
// primitives the rest of the engine builds identifiers and trust checks on
// top of. Every type here is pure and total: no I/O, no ambient state.
package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/NebulousLabs/fastrand"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the length in bytes of a Digest, per spec: 32-byte SHA3-256.
const DigestSize = 32

// ErrDigestWrongLen is returned when decoding a hex string of the wrong
// length into a Digest.
var ErrDigestWrongLen = errors.New("crypto: encoded digest has the wrong length")

// Digest is a 32-byte SHA3-256 content hash. It is comparable, serializable
// and usable as a map key.
type Digest [DigestSize]byte

// HashBytes hashes a single byte slice.
func HashBytes(b []byte) Digest {
	return sha3.Sum256(b)
}

// HashAll hashes the concatenation of all the given byte slices, each
// preceded by nothing extra (callers that need domain separation should
// prepend a Specifier themselves, as types.ContractID does).
func HashAll(objs ...[]byte) Digest {
	h := sha3.New256()
	for _, o := range objs {
		h.Write(o)
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// RandomDigest returns a digest seeded from a cryptographically secure
// random source. Used to mint fresh EntryIDs, which by construction cannot
// be derived from content (an escrow's identity, unlike a contract output's,
// is not a function of its backing value).
func RandomDigest() Digest {
	var d Digest
	fastrand.Read(d[:])
	return d
}

// String returns the hex encoding of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// LoadString parses a hex-encoded digest produced by String.
func (d *Digest) LoadString(s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != DigestSize {
		return ErrDigestWrongLen
	}
	copy(d[:], b)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Digest) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.LoadString(s)
}

// IsZero reports whether d is the all-zero digest.
func (d Digest) IsZero() bool {
	return bytes.Equal(d[:], make([]byte, DigestSize))
}
