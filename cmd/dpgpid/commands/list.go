package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"dpgpid/internal/app"
	"dpgpid/internal/crypto"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [pattern]",
		Short: "List PGP keys, marking those usable as ed25519 identities",
		Args:  app.UsageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pattern string
			if len(args) == 1 {
				pattern = args[0]
			}
			keys, err := wire.PGPStore.List(cmd.Context(), pattern)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, k := range keys {
				if i > 0 {
					fmt.Fprintln(out)
				}
				kind := "pub"
				if k.HasSecret {
					kind = "sec"
				}
				line := fmt.Sprintf("%s   %s %s", kind, k.Algorithm, k.Created.UTC().Format("2006-01-02"))
				if k.Expires != nil {
					line += fmt.Sprintf(" [expires: %s]", k.Expires.UTC().Format("2006-01-02"))
				}
				if !k.Ed25519 {
					line += " [unsupported]"
				}
				fmt.Fprintln(out, line)
				if fp, err := hex.DecodeString(string(k.Fingerprint)); err == nil {
					fmt.Fprintf(out, "      %s\n", crypto.GroupHex(fp))
				} else {
					fmt.Fprintf(out, "      %s\n", k.Fingerprint)
				}
				for _, uid := range k.UserIDs {
					fmt.Fprintf(out, "uid   %s\n", uid)
				}
			}
			return nil
		},
	}
}
