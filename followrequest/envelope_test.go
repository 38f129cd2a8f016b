package followrequest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/capability"
	"github.com/anyproto/any-share/identity"
)

func newCapability(t *testing.T) (*capability.Capability, *identity.Identity) {
	owner, err := identity.Random()
	require.NoError(t, err)
	sharing, err := identity.Random()
	require.NoError(t, err)
	c, err := capability.NewRandom(owner.Public(), sharing)
	require.NoError(t, err)
	return c, owner
}

func TestSealOpen(t *testing.T) {
	bob, err := identity.Random()
	require.NoError(t, err)
	c, alice := newCapability(t)
	payload, err := c.Serialize(true)
	require.NoError(t, err)

	env, err := Seal(payload, bob.Public())
	require.NoError(t, err)
	assert.Len(t, env, MinEnvelopeSize+len(payload))

	t.Run("anonymous", func(t *testing.T) {
		for _, key := range [][]byte{alice.SignPublicKey(), alice.BoxPublicKey(), alice.PublicKeys()} {
			assert.False(t, bytes.Contains(env, key))
		}
	})
	t.Run("fresh ephemeral key", func(t *testing.T) {
		env2, err := Seal(payload, bob.Public())
		require.NoError(t, err)
		assert.NotEqual(t, env[:EphemeralKeySize], env2[:EphemeralKeySize])
		assert.NotEqual(t, env, env2)
	})
	t.Run("decode", func(t *testing.T) {
		decoded, err := Decode(env, bob)
		require.NoError(t, err)
		assert.True(t, decoded.Equals(c))
		assert.Equal(t, c.MapKey(), decoded.MapKey())
		assert.True(t, c.DataKey().Equals(decoded.DataKey()))
	})
	t.Run("wrong recipient", func(t *testing.T) {
		eve, err := identity.Random()
		require.NoError(t, err)
		_, err = Decode(env, eve)
		assert.ErrorIs(t, err, ErrRequestUndecryptable)
		assert.ErrorIs(t, err, identity.ErrDecryptionFailed)
	})
	t.Run("the sender cannot open it either", func(t *testing.T) {
		_, err = Open(env, alice)
		assert.ErrorIs(t, err, ErrRequestUndecryptable)
	})
}

func TestOpen_Malformed(t *testing.T) {
	bob, err := identity.Random()
	require.NoError(t, err)

	_, err = Open(make([]byte, MinEnvelopeSize-1), bob)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)

	env, err := Seal([]byte("not a capability"), bob.Public())
	require.NoError(t, err)
	_, err = Decode(env, bob)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
	assert.ErrorIs(t, err, capability.ErrMalformed)
}

func TestDecodeAll(t *testing.T) {
	bob, err := identity.Random()
	require.NoError(t, err)

	var (
		envelopes [][]byte
		caps      []*capability.Capability
	)
	for i := 0; i < 3; i++ {
		c, _ := newCapability(t)
		payload, err := c.Serialize(true)
		require.NoError(t, err)
		env, err := Seal(payload, bob.Public())
		require.NoError(t, err)
		envelopes = append(envelopes, env)
		caps = append(caps, c)
	}
	tampered := bytes.Clone(envelopes[1])
	tampered[EphemeralKeySize+3] ^= 0xff

	// same capability sealed twice yields a different envelope
	payload, err := caps[0].Serialize(true)
	require.NoError(t, err)
	again, err := Seal(payload, bob.Public())
	require.NoError(t, err)

	batch := [][]byte{envelopes[0], tampered, envelopes[1], {1, 2, 3}, again, envelopes[2]}
	res := DecodeAll(batch, bob)
	require.Len(t, res, 5)

	assert.NoError(t, res[0].Err)
	assert.True(t, res[0].Capability.Equals(caps[0]))
	assert.ErrorIs(t, res[1].Err, ErrRequestUndecryptable)
	assert.NoError(t, res[2].Err)
	assert.True(t, res[2].Capability.Equals(caps[1]))
	assert.ErrorIs(t, res[3].Err, ErrMalformedEnvelope)
	assert.NoError(t, res[4].Err)
	assert.True(t, res[4].Capability.Equals(caps[2]))
}

func TestState(t *testing.T) {
	var r Result
	assert.Equal(t, "start", r.State.String())
	r.Advance(StateSharingKeyIssued)
	r.Advance(StateDirectoryUpdated)
	r.Fail(assert.AnError)
	assert.Equal(t, StateFailed, r.State)
	assert.Equal(t, StateDirectoryUpdated, r.Reached)
	assert.Equal(t, "failed", r.State.String())
	assert.Equal(t, "unknown", State(42).String())
}
