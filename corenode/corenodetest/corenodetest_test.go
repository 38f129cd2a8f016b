package corenodetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/capability"
	"github.com/anyproto/any-share/corenode/corenodeproto"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
	"github.com/anyproto/any-share/staticdata"
)

var ctx = context.Background()

func TestService_Reject(t *testing.T) {
	srv := New()
	c := srv.Client()
	owner := newIdentity(t)
	serialized, signed := staticdata.New().SignedPayload("alice", owner)
	require.NoError(t, c.AddUsername(ctx, "alice", owner.PublicKeys(), signed, serialized))

	t.Run("update is not applied", func(t *testing.T) {
		writer := newIdentity(t)
		capa, err := capability.NewRandom(owner.Public(), writer)
		require.NoError(t, err)
		next, nextSigned := staticdata.New().Append(writer.Public(), capa).SignedPayload("alice", owner)

		srv.SetReject(corenodeproto.MethodUpdateStaticData, true)
		err = c.UpdateStaticData(ctx, "alice", nextSigned, next)
		assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
		stored, ok := srv.StaticData("alice")
		require.True(t, ok)
		assert.Equal(t, serialized, stored)

		srv.SetReject(corenodeproto.MethodUpdateStaticData, false)
		require.NoError(t, c.UpdateStaticData(ctx, "alice", nextSigned, next))
		stored, _ = srv.StaticData("alice")
		assert.Equal(t, next, stored)
	})
	t.Run("follow request is not queued", func(t *testing.T) {
		srv.SetReject(corenodeproto.MethodFollowRequest, true)
		err := c.FollowRequest(ctx, owner.PublicKeys(), []byte{1, 2, 3})
		assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
		assert.Empty(t, srv.Inbox(owner.Public()))
		assert.Equal(t, 1, srv.Calls(corenodeproto.MethodFollowRequest))
	})
}

func newIdentity(t *testing.T) *identity.Identity {
	id, err := identity.Random()
	require.NoError(t, err)
	return id
}
