package domain

import (
	"errors"
	"fmt"
)

// Key source sentinels.
var (
	ErrNoMatch              = errors.New("no matching credential")
	ErrNoSigningKey         = errors.New("no signing-capable secret key")
	ErrUnlock               = errors.New("unable to unlock secret key")
	ErrUnsupportedAlgorithm = errors.New("unsupported key algorithm (only ed25519 keys can be mapped)")
	ErrNoSecretProvider     = errors.New("secret required but no passphrase source configured")
	ErrInvalidMnemonic      = errors.New("invalid mnemonic")
)

// ConfigError reports an unreadable or malformed configuration file. It is
// never fatal: defaults apply.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config %s: %v", e.Path, e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

// KeySourceError reports a failure to produce a key from a credential.
type KeySourceError struct {
	Source  SourceKind
	Locator string
	Err     error
}

func (e *KeySourceError) Error() string {
	if e.Locator == "" {
		return fmt.Sprintf("%s source: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s source %q: %v", e.Source, e.Locator, e.Err)
}
func (e *KeySourceError) Unwrap() error { return e.Err }

// CodecError reports a failed encode or decode in a named format.
type CodecError struct {
	Format string
	Op     string // "encode" or "decode"
	Err    error
}

func (e *CodecError) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Format, e.Err) }
func (e *CodecError) Unwrap() error { return e.Err }

// PublishOp names the publisher step that failed.
type PublishOp string

const (
	OpStore   PublishOp = "store"
	OpPublish PublishOp = "publish"
)

// FailureKind separates transport failures from refusals.
type FailureKind string

const (
	Unreachable FailureKind = "unreachable"
	Rejected    FailureKind = "rejected"
)

// PublishError reports a failed content store or naming service call.
type PublishError struct {
	Op   PublishOp
	Kind FailureKind
	Err  error
}

func (e *PublishError) Error() string {
	switch {
	case e.Op == OpStore && e.Kind == Unreachable:
		return fmt.Sprintf("content store unreachable: %v", e.Err)
	case e.Op == OpStore:
		return fmt.Sprintf("content store rejected document: %v", e.Err)
	case e.Kind == Unreachable:
		return fmt.Sprintf("naming service unreachable: %v", e.Err)
	default:
		return fmt.Sprintf("publish rejected: %v", e.Err)
	}
}
func (e *PublishError) Unwrap() error { return e.Err }

// UsageError reports an invalid request: bad format name, missing locator.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Usagef builds a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// IsUsage reports whether err is (or wraps) a UsageError.
func IsUsage(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}
