package crypto

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

const (
	SignPublicKeySize = ed25519.PublicKeySize
	SignSecretKeySize = ed25519.PrivateKeySize
	SignSeedSize      = ed25519.SeedSize
	SignatureSize     = ed25519.SignatureSize
)

var ErrInvalidSignPublicKey = errors.New("invalid ed25519 public key")

// NewSignKeyFromSeed expands a 32-byte seed into a 64-byte secret key
// (seed ‖ public key), the layout used on the wire.
func NewSignKeyFromSeed(seed []byte) (ed25519.PrivateKey, error) {
	if len(seed) != SignSeedSize {
		return nil, fmt.Errorf("%w: seed %d", ErrIncorrectKeySize, len(seed))
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// SignAttached returns signature ‖ message.
func SignAttached(priv ed25519.PrivateKey, msg []byte) []byte {
	sig := ed25519.Sign(priv, msg)
	out := make([]byte, 0, len(sig)+len(msg))
	out = append(out, sig...)
	return append(out, msg...)
}

// OpenAttached verifies signature ‖ message and returns a copy of the message.
func OpenAttached(pub ed25519.PublicKey, signed []byte) ([]byte, bool) {
	if len(signed) < SignatureSize || len(pub) != SignPublicKeySize {
		return nil, false
	}
	msg := signed[SignatureSize:]
	if !ed25519.Verify(pub, msg, signed[:SignatureSize]) {
		return nil, false
	}
	out := make([]byte, len(msg))
	copy(out, msg)
	return out, true
}

// ValidateSignPublicKey checks that raw is a canonical encoding of a point
// on the ed25519 curve.
func ValidateSignPublicKey(raw []byte) error {
	if len(raw) != SignPublicKeySize {
		return fmt.Errorf("%w: size %d", ErrInvalidSignPublicKey, len(raw))
	}
	if _, err := new(edwards25519.Point).SetBytes(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignPublicKey, err)
	}
	return nil
}
