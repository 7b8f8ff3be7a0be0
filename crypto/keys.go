package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"

	"github.com/NebulousLabs/fastrand"
)

const (
	// PublicKeySize is the size in bytes of a PublicKey.
	PublicKeySize = ed25519.PublicKeySize
	// SecretKeySize is the size in bytes of a SecretKey.
	SecretKeySize = ed25519.PrivateKeySize
	// SignatureSize is the size in bytes of a Signature.
	SignatureSize = ed25519.SignatureSize
)

var (
	// ErrInvalidSignature is returned when a signature does not verify
	// against the given public key and data.
	ErrInvalidSignature = errors.New("crypto: invalid signature")
)

type (
	// PublicKey verifies signatures produced by the corresponding SecretKey.
	// It is what a transaction's signers map (spec §3) stores per name, and
	// what `sender` (spec §6) returns to contract code.
	PublicKey [PublicKeySize]byte

	// SecretKey signs data on behalf of the corresponding PublicKey. It
	// never appears inside a TransactionEntry; it belongs to the signer, not
	// the engine.
	SecretKey [SecretKeySize]byte

	// Signature is the result of signing data with a SecretKey.
	Signature [SignatureSize]byte
)

// GenerateKeyPair creates a new public/secret key pair using a
// cryptographically secure entropy source.
func GenerateKeyPair() (PublicKey, SecretKey) {
	seed := make([]byte, ed25519.SeedSize)
	fastrand.Read(seed)
	priv := ed25519.NewKeyFromSeed(seed)
	var pk PublicKey
	var sk SecretKey
	copy(pk[:], priv.Public().(ed25519.PublicKey))
	copy(sk[:], priv)
	return pk, sk
}

// Sign signs data with sk.
func Sign(sk SecretKey, data []byte) Signature {
	var sig Signature
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(sk[:]), data))
	return sig
}

// Verify reports whether sig is a valid signature of data under pk.
func Verify(pk PublicKey, data []byte, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pk[:]), data, sig[:])
}

// VerifyErr is Verify phrased as an error, for call sites that want to
// propagate ErrInvalidSignature rather than branch on a bool.
func VerifyErr(pk PublicKey, data []byte, sig Signature) error {
	if !Verify(pk, data, sig) {
		return ErrInvalidSignature
	}
	return nil
}

// String returns the hex encoding of pk.
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}

// LoadString parses the hex encoding produced by String.
func (pk *PublicKey) LoadString(s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != PublicKeySize {
		return errors.New("crypto: encoded public key has the wrong length")
	}
	copy(pk[:], b)
	return nil
}
