package commands

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"dpgpid/internal/app"
	"dpgpid/internal/codec"
	"dpgpid/internal/services/did"
)

func showCmd() *cobra.Command {
	var (
		keyType  string
		document bool
	)
	cmd := &cobra.Command{
		Use:   "show <pattern>",
		Short: "Print the ed25519 public key and DID of a PGP key",
		Args:  app.UsageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("type") {
				keyType = wire.Config.Type
			}
			f, err := app.FormatFor(keyType, codec.Public)
			if err != nil {
				return err
			}

			k, meta, err := loadPGP(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer k.Zero()

			out := cmd.OutOrStdout()
			if document {
				doc, err := did.Build(k, meta)
				if err != nil {
					return err
				}
				b, err := did.Marshal(doc)
				if err != nil {
					return err
				}
				_, err = out.Write(b)
				return err
			}

			enc, err := codec.Encode(f, k, codec.Public)
			if err != nil {
				return err
			}
			id, err := codec.KeyID(k)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n%s\n", bytes.TrimRight(enc, "\n"), id.DID())
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyType, "type", "t", "b58mh", "output encoding ("+app.FormatNames()+")")
	cmd.Flags().BoolVar(&document, "did", false, "print the full DID document")
	return cmd
}
