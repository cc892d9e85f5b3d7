package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"dpgpid/internal/codec"
	"dpgpid/internal/domain"
	"dpgpid/internal/ipfs"
)

// Tool names; each has its own configuration file.
const (
	ToolDpgpid = "dpgpid"
	ToolKeygen = "keygen"
)

// DefaultTimeout bounds every RPC to the IPFS node.
const DefaultTimeout = 5 * time.Second

// Config holds runtime wiring options for building the app.
type Config struct {
	Type     string        // display encoding, a codec format name
	Format   string        // file export encoding, a codec format name
	API      string        // kubo RPC base URL
	Timeout  time.Duration // per-RPC timeout
	Keyring  string        // keyring file; empty means use gpg
	GPG      string        // gpg binary
	GPGHome  string        // gpg --homedir, optional
	StateDir string        // publication log directory
	LogLevel string

	// Passphrase is never read from the file.
	Passphrase string
}

// Defaults returns the built-in configuration for tool.
func Defaults(tool string) Config {
	cfg := Config{
		Type:     codec.B58MH.String(),
		Format:   codec.JWK.String(),
		API:      ipfs.DefaultAPI,
		Timeout:  DefaultTimeout,
		GPG:      "gpg",
		StateDir: defaultStateDir(),
		LogLevel: "warn",
	}
	if tool == ToolKeygen {
		cfg.Type = codec.Base58.String()
		cfg.Format = codec.PubSec.String()
	}
	return cfg
}

// ConfigPath returns ${XDG_CONFIG_HOME:-~/.config}/dpgpid/<tool>.conf.
func ConfigPath(tool string) (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "dpgpid", tool+".conf"), nil
}

func defaultStateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "dpgpid")
}

// LoadConfig overlays the INI file at path on base. A missing file is not an
// error. A malformed file or value yields a *domain.ConfigError together with
// a usable Config: every key that could be read is applied, the rest keep
// their base values.
func LoadConfig(path string, base Config) (Config, error) {
	cfg := base
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	f, err := ini.Load(path)
	if err != nil {
		return cfg, &domain.ConfigError{Path: path, Err: err}
	}
	sec := f.Section(ini.DefaultSection)

	var problems []string
	str := func(key string, dst *string) {
		if sec.HasKey(key) {
			*dst = strings.TrimSpace(sec.Key(key).String())
		}
	}
	format := func(key string, dst *string) {
		if !sec.HasKey(key) {
			return
		}
		v := sec.Key(key).String()
		if _, err := codec.ParseFormat(v); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = strings.ToLower(strings.TrimSpace(v))
	}

	format("type", &cfg.Type)
	format("format", &cfg.Format)
	str("api", &cfg.API)
	str("keyring", &cfg.Keyring)
	str("gpg", &cfg.GPG)
	str("gpg_home", &cfg.GPGHome)
	str("state_dir", &cfg.StateDir)
	str("log_level", &cfg.LogLevel)
	if sec.HasKey("timeout") {
		d, err := parseTimeout(sec.Key("timeout").String())
		if err != nil {
			problems = append(problems, fmt.Sprintf("timeout: %v", err))
		} else {
			cfg.Timeout = d
		}
	}

	cfg.Keyring = expandHome(cfg.Keyring)
	cfg.StateDir = expandHome(cfg.StateDir)
	cfg.GPGHome = expandHome(cfg.GPGHome)

	if len(problems) > 0 {
		return cfg, &domain.ConfigError{Path: path, Err: errors.New(strings.Join(problems, "; "))}
	}
	return cfg, nil
}

// parseTimeout accepts a Go duration ("10s") or a plain number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("must be positive, got %q", s)
		}
		return time.Duration(n * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %q", s)
	}
	return d, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// ResolveConfig loads the configuration for tool from path, or from the
// default location when path is empty. A malformed file is logged and the
// defaults apply.
func ResolveConfig(tool, path string) (Config, error) {
	if path == "" {
		p, err := ConfigPath(tool)
		if err != nil {
			return Defaults(tool), err
		}
		path = p
	}
	cfg, err := LoadConfig(path, Defaults(tool))
	var cerr *domain.ConfigError
	if errors.As(err, &cerr) {
		log.Warnf("%v; falling back to defaults", cerr)
		return cfg, nil
	}
	return cfg, err
}
