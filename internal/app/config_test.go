package app_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpgpid/internal/app"
	"dpgpid/internal/domain"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dpgpid.conf")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_MissingFileKeepsDefaults(t *testing.T) {
	base := app.Defaults(app.ToolDpgpid)
	cfg, err := app.LoadConfig(filepath.Join(t.TempDir(), "absent.conf"), base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestLoadConfig_AppliesKeys(t *testing.T) {
	path := writeConf(t, `
type = b36mf
format = pem
api = http://10.0.0.1:5001
timeout = 10s
keyring = /tmp/ring.asc
gpg = /usr/local/bin/gpg2
state_dir = /tmp/state
log_level = info
`)
	cfg, err := app.LoadConfig(path, app.Defaults(app.ToolDpgpid))
	require.NoError(t, err)
	assert.Equal(t, "b36mf", cfg.Type)
	assert.Equal(t, "pem", cfg.Format)
	assert.Equal(t, "http://10.0.0.1:5001", cfg.API)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/ring.asc", cfg.Keyring)
	assert.Equal(t, "/usr/local/bin/gpg2", cfg.GPG)
	assert.Equal(t, "/tmp/state", cfg.StateDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_TimeoutInSeconds(t *testing.T) {
	cfg, err := app.LoadConfig(writeConf(t, "timeout = 2.5\n"), app.Defaults(app.ToolDpgpid))
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout)
}

func TestLoadConfig_MalformedFileFallsBack(t *testing.T) {
	base := app.Defaults(app.ToolKeygen)
	path := writeConf(t, "[unclosed\ntype = pem\n")

	cfg, err := app.LoadConfig(path, base)
	var cerr *domain.ConfigError
	require.True(t, errors.As(err, &cerr), "got %v", err)
	assert.Equal(t, path, cerr.Path)
	assert.Equal(t, base, cfg)
}

func TestLoadConfig_BadValuesKeepTheirDefaults(t *testing.T) {
	base := app.Defaults(app.ToolDpgpid)
	path := writeConf(t, "type = rot13\ntimeout = soon\napi = http://node:5001\n")

	cfg, err := app.LoadConfig(path, base)
	var cerr *domain.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "type")
	assert.Contains(t, err.Error(), "timeout")

	assert.Equal(t, base.Type, cfg.Type)
	assert.Equal(t, base.Timeout, cfg.Timeout)
	assert.Equal(t, "http://node:5001", cfg.API)
}

func TestConfigPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := app.ConfigPath(app.ToolKeygen)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "dpgpid", "keygen.conf"), p)
}

func TestDefaults_PerTool(t *testing.T) {
	d := app.Defaults(app.ToolDpgpid)
	k := app.Defaults(app.ToolKeygen)
	assert.Equal(t, "b58mh", d.Type)
	assert.Equal(t, "base58", k.Type)
	assert.Equal(t, "pubsec", k.Format)
	assert.Equal(t, app.DefaultTimeout, d.Timeout)
}

func TestResolveConfig_MalformedIsNotFatal(t *testing.T) {
	path := writeConf(t, "[unclosed\n")
	cfg, err := app.ResolveConfig(app.ToolDpgpid, path)
	require.NoError(t, err)
	assert.Equal(t, app.Defaults(app.ToolDpgpid), cfg)
}
