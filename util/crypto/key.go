package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"
)

var ErrIncorrectKeySize = errors.New("incorrect key size")

// Key is implemented by key types that expose raw bytes.
type Key interface {
	// Raw returns raw key
	Raw() []byte
}

// KeyEquals compares raw keys in constant time
func KeyEquals(k1, k2 Key) bool {
	return subtle.ConstantTimeCompare(k1.Raw(), k2.Raw()) == 1
}

// RandomBytes returns n bytes from the system CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
