// Package followrequest seals capabilities for a target identity so that the
// envelope reveals nothing about the sender.
package followrequest

import (
	"errors"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/anyproto/any-share/capability"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/util/crypto"
)

const (
	EphemeralKeySize = crypto.BoxKeySize
	// MinEnvelopeSize is the size of an envelope with an empty payload.
	MinEnvelopeSize = EphemeralKeySize + crypto.BoxOverhead + crypto.NonceSize
)

var (
	ErrMalformedEnvelope    = errors.New("malformed follow request envelope")
	ErrRequestUndecryptable = errors.New("follow request cannot be decrypted")
)

// Seal encrypts payload for target with a one-time identity. The layout is
// ephemeralBoxPublicKey(32) ‖ ciphertext ‖ nonce(24). The ephemeral secret
// is discarded, so not even the sender can open the envelope afterwards.
func Seal(payload []byte, target identity.PublicIdentity) ([]byte, error) {
	tmp, err := identity.Random()
	if err != nil {
		return nil, err
	}
	sealed, err := target.EncryptMessageFor(payload, tmp)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, EphemeralKeySize+len(sealed))
	out = append(out, tmp.BoxPublicKey()...)
	return append(out, sealed...), nil
}

// Open decrypts an envelope addressed to recipient.
func Open(envelope []byte, recipient *identity.Identity) ([]byte, error) {
	if len(envelope) < MinEnvelopeSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedEnvelope, len(envelope))
	}
	payload, err := recipient.DecryptMessageFromBox(envelope[EphemeralKeySize:], envelope[:EphemeralKeySize])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestUndecryptable, err)
	}
	return payload, nil
}

// Decode opens an envelope and parses the capability inside.
func Decode(envelope []byte, recipient *identity.Identity) (*capability.Capability, error) {
	c, _, err := decode(envelope, recipient)
	return c, err
}

func decode(envelope []byte, recipient *identity.Identity) (*capability.Capability, [32]byte, error) {
	payload, err := Open(envelope, recipient)
	if err != nil {
		return nil, [32]byte{}, err
	}
	c, err := capability.Deserialize(payload)
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	return c, blake3.Sum256(payload), nil
}

// Decoded is the per-envelope outcome of DecodeAll.
type Decoded struct {
	Envelope   []byte
	Capability *capability.Capability
	// Key identifies the decrypted capability; envelopes carrying the same
	// capability share it.
	Key [32]byte
	Err error
}

// DecodeAll decodes every envelope independently. A failing envelope never
// affects the others. Envelopes repeating an already decoded capability are
// dropped.
func DecodeAll(envelopes [][]byte, recipient *identity.Identity) []Decoded {
	res := make([]Decoded, 0, len(envelopes))
	seen := make(map[[32]byte]struct{}, len(envelopes))
	for _, env := range envelopes {
		c, key, err := decode(env, recipient)
		if err == nil {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		res = append(res, Decoded{Envelope: env, Capability: c, Key: key, Err: err})
	}
	return res
}
