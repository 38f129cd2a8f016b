package fragment

import (
	"errors"

	"github.com/anyproto/any-share/util/crypto"
)

var ErrSealedTooShort = errors.New("sealed fragment is too short")

// Seal encrypts data under the capability data key. The stored value is
// ciphertext ‖ nonce(24).
func Seal(key crypto.SymmetricKey, data []byte) ([]byte, error) {
	nonce, err := crypto.RandomNonce()
	if err != nil {
		return nil, err
	}
	return append(key.Encrypt(data, &nonce), nonce[:]...), nil
}

// Open reverses Seal.
func Open(key crypto.SymmetricKey, sealed []byte) ([]byte, error) {
	if len(sealed) < crypto.NonceSize+crypto.BoxOverhead {
		return nil, ErrSealedTooShort
	}
	var nonce [crypto.NonceSize]byte
	split := len(sealed) - crypto.NonceSize
	copy(nonce[:], sealed[split:])
	return key.Decrypt(sealed[:split], &nonce)
}
