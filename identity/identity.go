// Package identity implements user key pairs: an ed25519 signing pair and
// an x25519 box pair, derived from a username/password or sampled at random.
package identity

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/anyproto/any-share/util/crypto"
)

// SecretKeysSize is the length of the canonical secret encoding.
const SecretKeysSize = crypto.SignSecretKeySize + crypto.BoxKeySize

var (
	ErrKeyDerivation    = errors.New("key derivation failed")
	ErrSignatureInvalid = errors.New("signature invalid")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidKeys      = errors.New("invalid keys")
)

// Identity holds both key pairs. It must never leave the process except
// to storage under the holder's control.
type Identity struct {
	PublicIdentity
	signSecret ed25519.PrivateKey
	boxSecret  [crypto.BoxKeySize]byte
}

// Derive reconstructs the identity of username from its password. The same
// inputs always produce the same keys.
func Derive(username, password string) (*Identity, error) {
	key, err := crypto.DerivePasswordKey(username, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return fromSeeds(key[:crypto.SignSeedSize], key[crypto.SignSeedSize:])
}

// Random returns a fresh identity from the system CSPRNG. It draws 64 bytes
// (signing seed and box secret), not 96: the secret encoding carries the
// derived ed25519 public half, which random bytes would not match.
func Random() (*Identity, error) {
	seeds, err := crypto.RandomBytes(crypto.SignSeedSize + crypto.BoxKeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return fromSeeds(seeds[:crypto.SignSeedSize], seeds[crypto.SignSeedSize:])
}

// FromSecretKeys rebuilds an identity from signSecretKey ‖ boxSecretKey.
// The public half embedded in the signing secret must match its seed.
func FromSecretKeys(secret []byte) (*Identity, error) {
	if len(secret) != SecretKeysSize {
		return nil, fmt.Errorf("%w: secret encoding %d", ErrInvalidKeys, len(secret))
	}
	id, err := fromSeeds(secret[:crypto.SignSeedSize], secret[crypto.SignSecretKeySize:])
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(id.signSecret, secret[:crypto.SignSecretKeySize]) {
		return nil, fmt.Errorf("%w: signing public key does not match seed", ErrInvalidKeys)
	}
	return id, nil
}

// FromEncodedKeys rebuilds an identity from its public and secret encodings
// and checks that they belong together.
func FromEncodedKeys(public, secret []byte) (*Identity, error) {
	id, err := FromSecretKeys(secret)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(id.PublicKeys(), public) {
		return nil, fmt.Errorf("%w: public keys do not match secret keys", ErrInvalidKeys)
	}
	return id, nil
}

func fromSeeds(signSeed, boxSecret []byte) (*Identity, error) {
	signSecret, err := crypto.NewSignKeyFromSeed(signSeed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeys, err)
	}
	id := &Identity{signSecret: signSecret}
	copy(id.boxSecret[:], boxSecret)
	copy(id.signPub[:], signSecret[crypto.SignSeedSize:])
	if id.boxPub, err = crypto.BoxPublicFromSecret(&id.boxSecret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeys, err)
	}
	return id, nil
}

// Public returns the public half.
func (i *Identity) Public() PublicIdentity {
	return i.PublicIdentity
}

// SecretKeys returns the canonical 96-byte secret encoding
// signSecretKey ‖ boxSecretKey.
// Raw returns the secret encoding, so identities can go through the
// crypto key string helpers.
func (i *Identity) Raw() []byte {
	return i.SecretKeys()
}

func (i *Identity) SecretKeys() []byte {
	out := make([]byte, 0, SecretKeysSize)
	out = append(out, i.signSecret...)
	return append(out, i.boxSecret[:]...)
}

// Sign returns signature ‖ msg.
func (i *Identity) Sign(msg []byte) []byte {
	return crypto.SignAttached(i.signSecret, msg)
}

// HashAndSign signs Hash(msg).
func (i *Identity) HashAndSign(msg []byte) []byte {
	h := crypto.Hash(msg)
	return i.Sign(h[:])
}

// DecryptMessage opens ciphertext ‖ nonce sent by sender.
func (i *Identity) DecryptMessage(cipher []byte, sender PublicIdentity) ([]byte, error) {
	msg, err := crypto.OpenX25519(cipher, &sender.boxPub, &i.boxSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return msg, nil
}

// DecryptMessageFromBox is DecryptMessage for a sender known only by its box
// public key, as with one-time identities.
func (i *Identity) DecryptMessageFromBox(cipher, senderBoxPub []byte) ([]byte, error) {
	sender, err := boxOnly(senderBoxPub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return i.DecryptMessage(cipher, sender)
}
