package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/util/crypto"
)

func TestSealOpen(t *testing.T) {
	key, err := crypto.NewRandomSymmetricKey()
	require.NoError(t, err)
	data := []byte("fragment body")

	sealed, err := Seal(key, data)
	require.NoError(t, err)
	assert.Len(t, sealed, len(data)+crypto.BoxOverhead+crypto.NonceSize)

	opened, err := Open(key, sealed)
	require.NoError(t, err)
	assert.Equal(t, data, opened)

	other, err := crypto.NewRandomSymmetricKey()
	require.NoError(t, err)
	_, err = Open(other, sealed)
	assert.ErrorIs(t, err, crypto.ErrSymmetricDecryptionFailed)

	_, err = Open(key, sealed[:10])
	assert.ErrorIs(t, err, ErrSealedTooShort)
}
