package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dpgpid/internal/app"
	"dpgpid/internal/domain"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <did|keyid>",
		Short: "Show publications recorded for a DID on this machine",
		Args:  app.UsageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.KeyID(strings.TrimPrefix(args[0], domain.DIDMethodPrefix))
			if !strings.HasPrefix(string(id), "z") {
				return domain.Usagef("%q is not a did:ipid identifier or key id", args[0])
			}
			entries, err := wire.Publications.History(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No publications recorded for %s\n", id.DID())
				return nil
			}
			for _, p := range entries {
				fmt.Fprintf(out, "%-6d %s  %s  /ipns/%s\n",
					p.Sequence, p.Published.UTC().Format(time.RFC3339), p.CID, p.Name)
			}
			return nil
		},
	}
}
