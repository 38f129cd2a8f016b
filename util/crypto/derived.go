package crypto

import (
	"golang.org/x/crypto/scrypt"
)

// scrypt parameters of the password derivation. They are part of the
// identity format: changing them changes every password-derived identity.
const (
	ScryptN      = 1 << 17
	ScryptR      = 8
	ScryptP      = 1
	ScryptKeyLen = 64
)

// DerivePasswordKey stretches password with scrypt, keyed by a BLAKE2s hash
// of the password and salted with the username. The result is 64 bytes.
func DerivePasswordKey(username, password string) ([]byte, error) {
	pwHash := Hash([]byte(password))
	return scrypt.Key(pwHash[:], []byte(username), ScryptN, ScryptR, ScryptP, ScryptKeyLen)
}
