package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put [value-file [metadata-file]]",
		Short: "Store a variant",
		Long: `Validate a variant value/metadata pair and store it. Prints the new id.

Example:
  variantdb put value.bin metadata.bin
  variantdb put --value 0c05`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			value, metadata, err := readPair(cmd, args)
			if err != nil {
				return err
			}

			store, err := openStore(rt)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.Put(cmd.Context(), metadata, value)
			if err != nil {
				return errors.Wrap(err, "error putting variant")
			}

			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}

	addPairFlags(cmd)
	return cmd
}
