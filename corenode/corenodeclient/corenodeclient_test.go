package corenodeclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/capability"
	"github.com/anyproto/any-share/corenode/corenodeclient"
	"github.com/anyproto/any-share/corenode/corenodeproto"
	"github.com/anyproto/any-share/corenode/corenodetest"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/net/httpposter"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
	"github.com/anyproto/any-share/staticdata"
	"github.com/anyproto/any-share/util/crypto"
)

var ctx = context.Background()

type testConfig struct {
	url string
}

func (c testConfig) Init(a *app.App) error { return nil }
func (c testConfig) Name() string          { return "config" }
func (c testConfig) GetCoreNode() httpposter.Config {
	return httpposter.Config{Url: c.url, TimeoutSec: 5}
}

type fixture struct {
	corenodeclient.CorenodeClient
	a   *app.App
	srv *corenodetest.Service
}

func newFixture(t *testing.T) *fixture {
	srv := corenodetest.New()
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)
	fx := &fixture{
		CorenodeClient: corenodeclient.New(),
		a:              new(app.App),
		srv:            srv,
	}
	fx.a.Register(testConfig{url: hs.URL}).Register(fx.CorenodeClient)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
	})
	return fx
}

func (fx *fixture) register(t *testing.T, username string) *identity.Identity {
	id, err := identity.Random()
	require.NoError(t, err)
	serialized, signed := staticdata.New().SignedPayload(username, id)
	require.NoError(t, fx.AddUsername(ctx, username, id.PublicKeys(), signed, serialized))
	return id
}

func TestCorenodeClient_Registration(t *testing.T) {
	fx := newFixture(t)

	_, found, err := fx.GetPublicKey(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, found)

	bob := fx.register(t, "bob")

	pub, found, err := fx.GetPublicKey(ctx, "bob")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, bob.Public(), pub)

	name, err := fx.GetUsername(ctx, bob.PublicKeys())
	require.NoError(t, err)
	assert.Equal(t, "bob", name)

	stranger, err := identity.Random()
	require.NoError(t, err)
	_, err = fx.GetUsername(ctx, stranger.PublicKeys())
	assert.ErrorIs(t, err, corenodeclient.ErrUnknownUser)

	t.Run("name taken", func(t *testing.T) {
		serialized, signed := staticdata.New().SignedPayload("bob", stranger)
		err := fx.AddUsername(ctx, "bob", stranger.PublicKeys(), signed, serialized)
		assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
	})
	t.Run("static data", func(t *testing.T) {
		data, err := fx.GetStaticData(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 0}, data)

		_, err = fx.GetStaticData(ctx, "nobody")
		assert.ErrorIs(t, err, rpcerr.ErrTransportFailure)
		assert.ErrorIs(t, err, corenodeproto.ErrUnknownUser)
	})
}

func TestCorenodeClient_UpdateStaticData(t *testing.T) {
	fx := newFixture(t)
	alice := fx.register(t, "alice")

	writer, err := identity.Random()
	require.NoError(t, err)
	c, err := capability.NewRandom(alice.Public(), writer)
	require.NoError(t, err)
	dir := staticdata.New().Append(writer.Public(), c)

	t.Run("signed by someone else", func(t *testing.T) {
		serialized, signed := dir.SignedPayload("alice", writer)
		err := fx.UpdateStaticData(ctx, "alice", signed, serialized)
		assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
	})
	t.Run("signed bytes differ", func(t *testing.T) {
		_, signed := staticdata.New().SignedPayload("alice", alice)
		err := fx.UpdateStaticData(ctx, "alice", signed, dir.Serialize())
		assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
	})
	t.Run("ok", func(t *testing.T) {
		serialized, signed := dir.SignedPayload("alice", alice)
		require.NoError(t, fx.UpdateStaticData(ctx, "alice", signed, serialized))
		stored, err := fx.GetStaticData(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, serialized, stored)
	})
}

func TestCorenodeClient_SharingKeys(t *testing.T) {
	fx := newFixture(t)
	alice := fx.register(t, "alice")
	writer, err := identity.Random()
	require.NoError(t, err)

	require.NoError(t, fx.AllowSharingKey(ctx, alice.PublicKeys(), alice.Sign(writer.PublicKeys())))
	keys, err := fx.GetSharingKeys(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{writer.PublicKeys()}, keys)

	t.Run("forged", func(t *testing.T) {
		err := fx.AllowSharingKey(ctx, alice.PublicKeys(), writer.Sign(writer.PublicKeys()))
		assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
	})
	t.Run("ban", func(t *testing.T) {
		h := crypto.Hash(writer.PublicKeys())
		require.NoError(t, fx.BanSharingKey(ctx, "alice", writer.PublicKeys(), alice.Sign(h[:])))
		keys, err := fx.GetSharingKeys(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestCorenodeClient_FollowRequests(t *testing.T) {
	fx := newFixture(t)
	bob := fx.register(t, "bob")

	require.NoError(t, fx.FollowRequest(ctx, bob.PublicKeys(), []byte("one")))
	require.NoError(t, fx.FollowRequest(ctx, bob.PublicKeys(), []byte("two")))

	envelopes, err := fx.GetFollowRequests(ctx, bob.PublicKeys())
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, envelopes)

	require.NoError(t, fx.RemoveFollowRequest(ctx, "bob", []byte("one"), bob.Sign([]byte("one"))))
	envelopes, err = fx.GetFollowRequests(ctx, bob.PublicKeys())
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("two")}, envelopes)

	err = fx.RemoveFollowRequest(ctx, "bob", []byte("one"), bob.Sign([]byte("one")))
	assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
}

func TestCorenodeClient_TransportFailure(t *testing.T) {
	fx := newFixture(t)
	fx.srv.SetStatus(corenodeproto.MethodGetFollowRequests, http.StatusBadGateway)

	_, err := fx.GetFollowRequests(ctx, make([]byte, 64))
	var te *rpcerr.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadGateway, te.Status)
	assert.True(t, te.Retryable())
	assert.NotErrorIs(t, err, rpcerr.ErrRemoteRejected)
}

func TestCorenodeClient_Loopback(t *testing.T) {
	srv := corenodetest.New()
	c := srv.Client()
	id, err := identity.Random()
	require.NoError(t, err)
	serialized, signed := staticdata.New().SignedPayload("carol", id)
	require.NoError(t, c.AddUsername(ctx, "carol", id.PublicKeys(), signed, serialized))
	assert.Equal(t, 1, srv.Calls(corenodeproto.MethodAddUsername))

	srv.SetReject(corenodeproto.MethodFollowRequest, true)
	err = c.FollowRequest(ctx, id.PublicKeys(), []byte{1})
	assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
}
