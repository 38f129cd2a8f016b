package identity

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/util/crypto"
)

func TestDerive(t *testing.T) {
	a1, err := Derive("alice", "pw1")
	require.NoError(t, err)
	a2, err := Derive("alice", "pw1")
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, a1.PublicKeys(), a2.PublicKeys())
		assert.Equal(t, a1.SecretKeys(), a2.SecretKeys())
	})
	t.Run("password matters", func(t *testing.T) {
		b, err := Derive("alice", "pw2")
		require.NoError(t, err)
		assert.NotEqual(t, a1.PublicKeys(), b.PublicKeys())
	})
	t.Run("matches scrypt split", func(t *testing.T) {
		key, err := crypto.DerivePasswordKey("alice", "pw1")
		require.NoError(t, err)
		assert.Equal(t, key[:32], a1.SecretKeys()[:32])
		assert.Equal(t, key[32:], a1.SecretKeys()[64:])
	})
}

func TestRandom(t *testing.T) {
	a, err := Random()
	require.NoError(t, err)
	b, err := Random()
	require.NoError(t, err)
	assert.False(t, a.Equals(b.Public()))
	assert.Len(t, a.PublicKeys(), PublicKeysSize)
	assert.Len(t, a.SecretKeys(), SecretKeysSize)

	boxPub := a.BoxPublicKey()
	var sec [crypto.BoxKeySize]byte
	copy(sec[:], a.SecretKeys()[crypto.SignSecretKeySize:])
	expected, err := crypto.BoxPublicFromSecret(&sec)
	require.NoError(t, err)
	assert.Equal(t, expected[:], boxPub)
}

func TestPublicIdentity_PublicKeys(t *testing.T) {
	id, err := Random()
	require.NoError(t, err)
	s := id.SignPublicKey()
	b := id.BoxPublicKey()

	p, err := NewPublicIdentity(s, b)
	require.NoError(t, err)
	enc := p.PublicKeys()
	require.Len(t, enc, 64)
	assert.Equal(t, s, enc[:32])
	assert.Equal(t, b, enc[32:])

	decoded, err := FromPublicKeys(enc)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
	assert.True(t, decoded.Equals(id.Public()))
	assert.NotEmpty(t, p.String())

	_, err = FromPublicKeys(enc[:63])
	assert.ErrorIs(t, err, ErrInvalidKeys)
}

func TestFromSecretKeys(t *testing.T) {
	id, err := Random()
	require.NoError(t, err)

	restored, err := FromSecretKeys(id.SecretKeys())
	require.NoError(t, err)
	assert.Equal(t, id.PublicKeys(), restored.PublicKeys())

	restored, err = FromEncodedKeys(id.PublicKeys(), id.SecretKeys())
	require.NoError(t, err)
	assert.Equal(t, id.SecretKeys(), restored.SecretKeys())

	t.Run("mismatched public half", func(t *testing.T) {
		sec := id.SecretKeys()
		sec[40] ^= 1
		_, err := FromSecretKeys(sec)
		assert.ErrorIs(t, err, ErrInvalidKeys)
	})
	t.Run("foreign public keys", func(t *testing.T) {
		other, err := Random()
		require.NoError(t, err)
		_, err = FromEncodedKeys(other.PublicKeys(), id.SecretKeys())
		assert.ErrorIs(t, err, ErrInvalidKeys)
	})
	t.Run("size", func(t *testing.T) {
		_, err := FromSecretKeys(id.SecretKeys()[:95])
		assert.ErrorIs(t, err, ErrInvalidKeys)
	})
}

func TestIdentity_Sign(t *testing.T) {
	id, err := Random()
	require.NoError(t, err)
	other, err := Random()
	require.NoError(t, err)

	signed := id.Sign([]byte("msg"))
	msg, err := id.Unsign(signed)
	require.NoError(t, err)
	assert.Equal(t, []byte("msg"), msg)

	_, err = other.Unsign(signed)
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	signedHash := id.HashAndSign([]byte("raw"))
	assert.True(t, id.IsValidSignature(signedHash, []byte("raw")))
	assert.False(t, id.IsValidSignature(signedHash, []byte("other")))
	assert.False(t, other.IsValidSignature(signedHash, []byte("raw")))
}

func TestIdentity_Encrypt(t *testing.T) {
	alice, err := Random()
	require.NoError(t, err)
	bob, err := Random()
	require.NoError(t, err)
	eve, err := Random()
	require.NoError(t, err)

	cipher, err := bob.EncryptMessageFor([]byte("secret"), alice)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(cipher, []byte("secret")))

	plain, err := bob.DecryptMessage(cipher, alice.Public())
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), plain)

	plain, err = bob.DecryptMessageFromBox(cipher, alice.BoxPublicKey())
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), plain)

	_, err = eve.DecryptMessage(cipher, alice.Public())
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = bob.DecryptMessageFromBox(cipher, []byte{1, 2})
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
