package crypto

import (
	"errors"
	"fmt"

	mbase "github.com/multiformats/go-multibase"
	"golang.org/x/crypto/nacl/secretbox"
)

// SymmetricKeySize is the length of a secretbox key.
const SymmetricKeySize = 32

var ErrSymmetricDecryptionFailed = errors.New("failed decryption with symmetric key")

// SymmetricKey is an xsalsa20-poly1305 key. Nonces are supplied by the
// caller and must never repeat for two plaintexts under the same key.
type SymmetricKey struct {
	raw [SymmetricKeySize]byte
}

// NewRandomSymmetricKey returns a random key.
func NewRandomSymmetricKey() (SymmetricKey, error) {
	raw, err := RandomBytes(SymmetricKeySize)
	if err != nil {
		return SymmetricKey{}, err
	}
	var k SymmetricKey
	copy(k.raw[:], raw)
	return k, nil
}

// UnmarshallSymmetricKey returns a key by decoding bytes.
func UnmarshallSymmetricKey(raw []byte) (SymmetricKey, error) {
	if len(raw) != SymmetricKeySize {
		return SymmetricKey{}, fmt.Errorf("%w: symmetric %d", ErrIncorrectKeySize, len(raw))
	}
	var k SymmetricKey
	copy(k.raw[:], raw)
	return k, nil
}

func (k SymmetricKey) Raw() []byte {
	out := make([]byte, SymmetricKeySize)
	copy(out, k.raw[:])
	return out
}

func (k SymmetricKey) Equals(o SymmetricKey) bool {
	return KeyEquals(k, o)
}

// String returns the base32 multibase representation of the key.
func (k SymmetricKey) String() string {
	str, err := mbase.Encode(mbase.Base32, k.raw[:])
	if err != nil {
		panic("should not error with hardcoded mbase: " + err.Error())
	}
	return str
}

// Encrypt seals data under nonce.
func (k SymmetricKey) Encrypt(data []byte, nonce *[NonceSize]byte) []byte {
	return secretbox.Seal(nil, data, nonce, &k.raw)
}

// Decrypt opens a ciphertext produced by Encrypt with the same nonce.
func (k SymmetricKey) Decrypt(cipher []byte, nonce *[NonceSize]byte) ([]byte, error) {
	plain, ok := secretbox.Open(nil, cipher, nonce, &k.raw)
	if !ok {
		return nil, ErrSymmetricDecryptionFailed
	}
	return plain, nil
}
