package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpgpid/internal/app"
)

const (
	alicePublic   = "8WhoNH1e7HPeJU5K69LG92Stjz3msFstvBapb3WWqhGQ"
	mnemonicWords = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	mnemonicPub   = "H5ikrCGDdGMnaWsU2M9AD5rQqSbVbiCKURCBq2fKBsBV"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runStderr(t, stdin, args...)
	return out, err
}

func runStderr(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	root := newRoot(strings.NewReader(stdin))
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestKeygen_Credentials(t *testing.T) {
	out, err := run(t, "", "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, alicePublic+"\n", out)
}

func TestKeygen_Mnemonic(t *testing.T) {
	out, err := run(t, "", append([]string{"-m"}, strings.Fields(mnemonicWords)...)...)
	require.NoError(t, err)
	assert.Equal(t, mnemonicPub+"\n", out)
}

func TestKeygen_ExportThenReimport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice.jwk")
	_, err := run(t, "", "-f", "jwk", "-o", path, "alice", "secret")
	require.NoError(t, err)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	out, err := run(t, "", "-i", path)
	require.NoError(t, err)
	assert.Equal(t, alicePublic+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out, err = run(t, string(data), "-i", "-", "-t", "base58")
	require.NoError(t, err)
	assert.Equal(t, alicePublic+"\n", out)
}

func TestKeygen_SecretRoundTripsThroughPrint(t *testing.T) {
	seed, err := run(t, "", "-s", "-t", "base58", "alice", "secret")
	require.NoError(t, err)

	out, stderr, err := runStderr(t, seed, "-i", "-")
	require.NoError(t, err)
	assert.Equal(t, alicePublic+"\n", out)
	assert.Contains(t, stderr, "base58 key, read as a secret seed")
}

func TestKeygen_BarePublicKeyIsReadAsSeed(t *testing.T) {
	out, stderr, err := runStderr(t, alicePublic+"\n", "-i", "-")
	require.NoError(t, err)
	assert.NotEqual(t, alicePublic+"\n", out)
	assert.Contains(t, stderr, "read as a secret seed")
}

func TestKeygen_StructuredFormatsNeedNoWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice.jwk")
	_, err := run(t, "", "-f", "jwk", "-o", path, "alice", "secret")
	require.NoError(t, err)

	_, stderr, err := runStderr(t, "", "-i", path)
	require.NoError(t, err)
	assert.Equal(t, "Detected jwk key\n", stderr)
}

func TestKeygen_UsageErrors(t *testing.T) {
	cases := map[string][]string{
		"exclusive sources":  {"-m", "-i", "key.jwk"},
		"no username":        {},
		"public-only format": {"-s", "-t", "b58mh", "alice", "secret"},
		"unknown format":     {"-t", "rot13", "alice", "secret"},
		"unknown flag":       {"--nope"},
		"too many args":      {"a", "b", "c"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, "", args...)
			require.Error(t, err)
			assert.Equal(t, app.ExitUsage, app.ExitCode(err), "%v", err)
		})
	}
}

func TestKeygen_BadMnemonicFails(t *testing.T) {
	_, err := run(t, "", "-m", "not", "a", "mnemonic")
	require.Error(t, err)
	assert.Equal(t, app.ExitFailure, app.ExitCode(err))
}
