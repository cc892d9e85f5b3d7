package app

import (
	"strings"

	"github.com/spf13/cobra"

	"dpgpid/internal/codec"
	"dpgpid/internal/domain"
)

// FlagError marks flag parsing failures as usage errors.
func FlagError(_ *cobra.Command, err error) error {
	return domain.Usagef("%v", err)
}

// UsageArgs marks argument count failures as usage errors.
func UsageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return FlagError(cmd, err)
		}
		return nil
	}
}

// FormatNames lists the accepted encodings for flag help.
func FormatNames() string { return strings.Join(codec.Names(), ", ") }

// FormatFor parses name and checks that it can carry part.
func FormatFor(name string, part codec.Part) (codec.Format, error) {
	f, err := codec.ParseFormat(name)
	if err != nil {
		return 0, err
	}
	if !f.Supports(part) {
		return 0, domain.Usagef("format %s cannot carry a %s key", f, part)
	}
	return f, nil
}
