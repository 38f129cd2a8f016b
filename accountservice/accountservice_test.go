package accountservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/util/crypto"
)

var ctx = context.Background()

type testConfig struct {
	Config
}

func (c testConfig) Init(a *app.App) error { return nil }
func (c testConfig) Name() string          { return "config" }
func (c testConfig) GetAccount() Config    { return c.Config }

func TestService_Init(t *testing.T) {
	t.Run("secret keys", func(t *testing.T) {
		id, err := identity.Random()
		require.NoError(t, err)
		acc := start(t, Config{Username: "alice", SecretKeys: crypto.EncodeKeyToString(id)})
		assert.Equal(t, "alice", acc.Username)
		assert.True(t, acc.Identity.Public().Equals(id.Public()))
	})
	t.Run("password", func(t *testing.T) {
		id, err := identity.Derive("bob", "secret")
		require.NoError(t, err)
		acc := start(t, Config{Username: "bob", Password: "secret"})
		assert.True(t, acc.Identity.Public().Equals(id.Public()))
	})
	t.Run("no credentials", func(t *testing.T) {
		a := new(app.App)
		a.Register(testConfig{Config{Username: "carol"}}).Register(New())
		assert.ErrorIs(t, a.Start(ctx), ErrNoCredentials)
	})
	t.Run("bad encoding", func(t *testing.T) {
		_, err := Config{SecretKeys: "!!"}.Identity()
		assert.Error(t, err)
	})
}

func TestNewWithAccount(t *testing.T) {
	id, err := identity.Random()
	require.NoError(t, err)
	acc := &AccountData{Username: "dave", Identity: id}
	s := NewWithAccount(acc)
	a := new(app.App)
	a.Register(s)
	require.NoError(t, a.Start(ctx))
	assert.Same(t, acc, s.Account())
}

func start(t *testing.T, conf Config) *AccountData {
	a := new(app.App)
	s := New()
	a.Register(testConfig{conf}).Register(s)
	require.NoError(t, a.Start(ctx))
	return s.Account()
}
