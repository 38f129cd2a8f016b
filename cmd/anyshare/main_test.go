package main

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/corenode/corenodetest"
	"github.com/anyproto/any-share/dht/dhttest"
)

func TestCommands(t *testing.T) {
	core := httptest.NewServer(corenodetest.New())
	defer core.Close()
	dht := httptest.NewServer(dhttest.New())
	defer dht.Close()

	dir := t.TempDir()
	writeConfig := func(username string) string {
		path := filepath.Join(dir, username+".yml")
		conf := fmt.Sprintf(`account:
  username: %s
  password: secret
coreNode:
  url: %s
dht:
  url: %s
store:
  path: %s
log:
  defaultLevel: error
`, username, core.URL, dht.URL, filepath.Join(dir, username+".db"))
		require.NoError(t, os.WriteFile(path, []byte(conf), 0600))
		return path
	}
	alice := writeConfig("alice")
	bob := writeConfig("bob")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return out.String(), err
	}

	out, err := run("keygen")
	require.NoError(t, err)
	assert.Contains(t, out, "secretKeys: z")

	out, err = run("whoami", "-c", alice)
	require.NoError(t, err)
	assert.Contains(t, out, "registered: false")

	_, err = run("register", "-c", alice)
	require.NoError(t, err)
	_, err = run("register", "-c", bob)
	require.NoError(t, err)

	out, err = run("whoami", "-c", alice)
	require.NoError(t, err)
	assert.Contains(t, out, "registered: true")

	out, err = run("follow", "bob", "-c", alice)
	require.NoError(t, err)
	assert.Contains(t, out, "done (reached done)")

	_, err = run("follow", "nobody", "-c", alice)
	assert.Error(t, err)

	out, err = run("requests", "-c", bob)
	require.NoError(t, err)
	assert.Contains(t, out, "0: owner ")

	out, err = run("reconcile", "-c", alice)
	require.NoError(t, err)
	assert.NotContains(t, out, "orphan")

	out, err = run("whoami", "-c", alice)
	require.NoError(t, err)
	assert.Contains(t, out, "version 1, 1 entries")
}
