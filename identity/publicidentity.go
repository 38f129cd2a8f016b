package identity

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/anyproto/any-share/util/crypto"
)

// PublicKeysSize is the length of the canonical public encoding.
const PublicKeysSize = crypto.SignPublicKeySize + crypto.BoxKeySize

// PublicIdentity is a signing and a box public key. It is a comparable
// value and may be used as a map key.
type PublicIdentity struct {
	signPub [crypto.SignPublicKeySize]byte
	boxPub  [crypto.BoxKeySize]byte
}

// NewPublicIdentity builds an identity from its two public keys.
func NewPublicIdentity(signPub, boxPub []byte) (PublicIdentity, error) {
	var p PublicIdentity
	if len(signPub) != crypto.SignPublicKeySize || len(boxPub) != crypto.BoxKeySize {
		return p, fmt.Errorf("%w: public keys %d/%d", ErrInvalidKeys, len(signPub), len(boxPub))
	}
	if err := crypto.ValidateSignPublicKey(signPub); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidKeys, err)
	}
	copy(p.signPub[:], signPub)
	copy(p.boxPub[:], boxPub)
	return p, nil
}

// FromPublicKeys decodes signPublicKey ‖ boxPublicKey.
func FromPublicKeys(both []byte) (PublicIdentity, error) {
	if len(both) != PublicKeysSize {
		return PublicIdentity{}, fmt.Errorf("%w: public encoding %d", ErrInvalidKeys, len(both))
	}
	return NewPublicIdentity(both[:crypto.SignPublicKeySize], both[crypto.SignPublicKeySize:])
}

// boxOnly is the form used for ephemeral senders whose signing key is never
// transmitted.
func boxOnly(boxPub []byte) (PublicIdentity, error) {
	var p PublicIdentity
	if len(boxPub) != crypto.BoxKeySize {
		return p, fmt.Errorf("%w: box key %d", ErrInvalidKeys, len(boxPub))
	}
	copy(p.boxPub[:], boxPub)
	return p, nil
}

// PublicKeys returns the canonical 64-byte encoding signPublicKey ‖ boxPublicKey.
func (p PublicIdentity) PublicKeys() []byte {
	out := make([]byte, 0, PublicKeysSize)
	out = append(out, p.signPub[:]...)
	return append(out, p.boxPub[:]...)
}

func (p PublicIdentity) SignPublicKey() []byte {
	return bytes.Clone(p.signPub[:])
}

func (p PublicIdentity) BoxPublicKey() []byte {
	return bytes.Clone(p.boxPub[:])
}

func (p PublicIdentity) Raw() []byte {
	return p.PublicKeys()
}

func (p PublicIdentity) Equals(o PublicIdentity) bool {
	return p == o
}

func (p PublicIdentity) IsZero() bool {
	return p == PublicIdentity{}
}

// String returns base58 of the canonical encoding.
func (p PublicIdentity) String() string {
	return base58.Encode(p.PublicKeys())
}

// Unsign verifies an attached signature made by this identity and returns
// the signed message.
func (p PublicIdentity) Unsign(signed []byte) ([]byte, error) {
	msg, ok := crypto.OpenAttached(p.signPub[:], signed)
	if !ok {
		return nil, ErrSignatureInvalid
	}
	return msg, nil
}

// IsValidSignature reports whether signedHash is this identity's signature
// over Hash(raw).
func (p PublicIdentity) IsValidSignature(signedHash, raw []byte) bool {
	msg, err := p.Unsign(signedHash)
	if err != nil {
		return false
	}
	h := crypto.Hash(raw)
	return bytes.Equal(msg, h[:])
}

// EncryptMessageFor seals plaintext for p using the sender's box secret.
// The result is ciphertext ‖ nonce.
func (p PublicIdentity) EncryptMessageFor(plaintext []byte, sender *Identity) ([]byte, error) {
	return crypto.SealX25519(plaintext, &p.boxPub, &sender.boxSecret)
}
