package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

const (
	BoxKeySize = 32
	// NonceSize is shared by box and secretbox.
	NonceSize   = 24
	BoxOverhead = box.Overhead
)

var ErrX25519DecryptionFailed = errors.New("failed decryption with x25519 key")

// BoxPublicFromSecret returns the base point multiple of secret.
func BoxPublicFromSecret(secret *[BoxKeySize]byte) (pub [BoxKeySize]byte, err error) {
	raw, err := curve25519.X25519(secret[:], curve25519.Basepoint)
	if err != nil {
		return pub, err
	}
	copy(pub[:], raw)
	return pub, nil
}

// RandomNonce returns a fresh random 24-byte nonce.
func RandomNonce() (nonce [NonceSize]byte, err error) {
	_, err = io.ReadFull(rand.Reader, nonce[:])
	return
}

// SealX25519 encrypts msg for peerPub with our secret under a fresh random
// nonce and returns ciphertext ‖ nonce.
func SealX25519(msg []byte, peerPub, secret *[BoxKeySize]byte) ([]byte, error) {
	nonce, err := RandomNonce()
	if err != nil {
		return nil, err
	}
	out := box.Seal(nil, msg, &nonce, peerPub, secret)
	return append(out, nonce[:]...), nil
}

// OpenX25519 decrypts ciphertext ‖ nonce produced by SealX25519.
func OpenX25519(sealed []byte, peerPub, secret *[BoxKeySize]byte) ([]byte, error) {
	if len(sealed) < NonceSize+BoxOverhead {
		return nil, fmt.Errorf("%w: message too short", ErrX25519DecryptionFailed)
	}
	var nonce [NonceSize]byte
	split := len(sealed) - NonceSize
	copy(nonce[:], sealed[split:])
	msg, ok := box.Open(nil, sealed[:split], &nonce, peerPub, secret)
	if !ok {
		return nil, ErrX25519DecryptionFailed
	}
	return msg, nil
}
