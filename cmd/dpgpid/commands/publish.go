package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dpgpid/internal/app"
	"dpgpid/internal/services/publish"
)

func publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <pattern>",
		Short: "Store the DID document on IPFS and point the key's IPNS name at it",
		Args:  app.UsageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, meta, err := loadPGP(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer k.Zero()

			res, err := wire.Publisher.Publish(cmd.Context(), k, meta)
			out := cmd.OutOrStdout()
			if publish.IsPartial(res, err) {
				fmt.Fprintf(out, "DID: %s\nCID: %s\n", res.KeyID.DID(), res.CID)
				return &app.PartialPublishError{CID: res.CID, Err: err}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "DID: %s\nCID: %s\nName: /ipns/%s\nSequence: %d\n",
				res.KeyID.DID(), res.CID, res.Name, res.Sequence)
			return nil
		},
	}
}
