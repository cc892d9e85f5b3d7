package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dpgpid/internal/app"
	"dpgpid/internal/codec"
	"dpgpid/internal/domain"
	"dpgpid/internal/store"
	"dpgpid/internal/util/memzero"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "export -o <file> <pattern>",
		Short: "Write the ed25519 secret key of a PGP key to a file",
		Args:  app.UsageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return domain.Usagef("--output is required")
			}
			if !cmd.Flags().Changed("format") {
				format = wire.Config.Format
			}
			f, err := app.FormatFor(format, codec.Secret)
			if err != nil {
				return err
			}

			k, _, err := loadPGP(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer k.Zero()

			data, err := codec.Encode(f, k, codec.Secret)
			if err != nil {
				return err
			}
			defer memzero.Zero(data)
			if err := store.WriteExport(output, data, true, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Secret key written to %s (%s)\n", output, f)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "jwk", "file encoding ("+app.FormatNames()+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
