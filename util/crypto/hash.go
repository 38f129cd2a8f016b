package crypto

import "golang.org/x/crypto/blake2s"

const (
	// HashVersion identifies the digest below. Changing the algorithm is a
	// protocol break and must come with a new version.
	HashVersion = 1

	HashSize = blake2s.Size
)

// Hash returns the BLAKE2s-256 digest of data.
func Hash(data []byte) [HashSize]byte {
	return blake2s.Sum256(data)
}
