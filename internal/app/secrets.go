package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"dpgpid/internal/domain"
	"dpgpid/internal/util/memzero"
)

// StaticSecret answers every prompt with the same passphrase.
type StaticSecret struct {
	value []byte
}

// NewStaticSecret copies pass.
func NewStaticSecret(pass string) *StaticSecret {
	return &StaticSecret{value: []byte(pass)}
}

// Secret returns a fresh copy; the caller wipes it.
func (s *StaticSecret) Secret(ctx context.Context, _ string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), s.value...), nil
}

// Zero wipes the stored passphrase; later prompts get an empty answer.
func (s *StaticSecret) Zero() {
	memzero.Zero(s.value)
	s.value = nil
}

// TerminalSecret prompts on out and reads without echo from the terminal
// behind in.
type TerminalSecret struct {
	in  *os.File
	out io.Writer
}

// NewTerminalSecret reads from stdin and prompts on stderr.
func NewTerminalSecret() *TerminalSecret {
	return NewTerminalSecretFrom(os.Stdin, os.Stderr)
}

// NewTerminalSecretFrom reads from in and prompts on out.
func NewTerminalSecretFrom(in *os.File, out io.Writer) *TerminalSecret {
	return &TerminalSecret{in: in, out: out}
}

func (t *TerminalSecret) Secret(ctx context.Context, prompt string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fmt.Fprint(t.out, prompt)
	defer fmt.Fprintln(t.out)

	fd := int(t.in.Fd())
	if term.IsTerminal(fd) {
		return term.ReadPassword(fd)
	}
	// Piped input: one line, without the newline.
	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// NoSecret refuses every prompt.
type NoSecret struct{}

func (NoSecret) Secret(context.Context, string) ([]byte, error) {
	return nil, domain.ErrNoSecretProvider
}

// SecretsFor picks the passphrase source: an explicit passphrase wins, then
// an interactive terminal, otherwise none.
func SecretsFor(passphrase string) domain.SecretProvider {
	if passphrase != "" {
		return NewStaticSecret(passphrase)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewTerminalSecret()
	}
	return NoSecret{}
}
