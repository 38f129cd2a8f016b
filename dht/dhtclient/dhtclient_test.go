package dhtclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/dht/dhtclient"
	"github.com/anyproto/any-share/dht/dhtproto"
	"github.com/anyproto/any-share/dht/dhttest"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/net/httpposter"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
	"github.com/anyproto/any-share/util/crypto"
)

var ctx = context.Background()

type testConfig struct {
	url string
}

func (c testConfig) Init(a *app.App) error { return nil }
func (c testConfig) Name() string          { return "config" }
func (c testConfig) GetDht() httpposter.Config {
	return httpposter.Config{Url: c.url}
}

type fixture struct {
	dhtclient.DhtClient
	store *dhttest.Store
}

func newFixture(t *testing.T) *fixture {
	store := dhttest.New()
	hs := httptest.NewServer(store)
	t.Cleanup(hs.Close)
	fx := &fixture{DhtClient: dhtclient.New(), store: store}
	a := new(app.App)
	a.Register(testConfig{url: hs.URL}).Register(fx.DhtClient)
	require.NoError(t, a.Start(ctx))
	return fx
}

func putRequest(t *testing.T, value []byte) (dhtclient.PutRequest, *identity.Identity) {
	owner, err := identity.Random()
	require.NoError(t, err)
	writer, err := identity.Random()
	require.NoError(t, err)
	key := crypto.Hash(value)
	return dhtclient.PutRequest{
		Key:        key[:],
		Value:      value,
		Owner:      owner.PublicKeys(),
		SharingKey: writer.PublicKeys(),
		MapKey:     make([]byte, 32),
		Proof:      writer.HashAndSign(value),
	}, writer
}

func TestDhtClient(t *testing.T) {
	fx := newFixture(t)
	req, _ := putRequest(t, []byte("fragment"))

	ok, err := fx.Contains(ctx, req.Key)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fx.Get(ctx, req.Key)
	assert.ErrorIs(t, err, dhtproto.ErrNotFound)

	require.NoError(t, fx.Put(ctx, req))

	ok, err = fx.Contains(ctx, req.Key)
	require.NoError(t, err)
	assert.True(t, ok)

	value, err := fx.Get(ctx, req.Key)
	require.NoError(t, err)
	assert.Equal(t, []byte("fragment"), value)
}

func TestDhtClient_PutRejected(t *testing.T) {
	fx := newFixture(t)

	t.Run("bad proof", func(t *testing.T) {
		req, _ := putRequest(t, []byte("fragment"))
		req.Proof = req.Proof[:len(req.Proof)-1]
		assert.ErrorIs(t, fx.Put(ctx, req), rpcerr.ErrRemoteRejected)
	})
	t.Run("unauthorized writer", func(t *testing.T) {
		fx.store.SetAuthorizer(func(owner, sharingKey []byte) bool { return false })
		defer fx.store.SetAuthorizer(nil)
		req, _ := putRequest(t, []byte("fragment"))
		assert.ErrorIs(t, fx.Put(ctx, req), rpcerr.ErrRemoteRejected)
	})
	t.Run("too large", func(t *testing.T) {
		req, _ := putRequest(t, make([]byte, dhtproto.MaxValueSize+1))
		assert.ErrorIs(t, fx.Put(ctx, req), dhtclient.ErrValueTooLarge)
	})
}

func TestDhtClient_Failure(t *testing.T) {
	fx := newFixture(t)
	key := fx.store.Add([]byte("x"))
	fx.store.SetFailure(key, http.StatusServiceUnavailable)
	_, err := fx.Get(ctx, key)
	assert.ErrorIs(t, err, rpcerr.ErrTransportFailure)
	assert.True(t, rpcerr.IsRetryable(err))
}
