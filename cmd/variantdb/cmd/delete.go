package cmd

import (
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored variant",
		Long: `Delete a stored variant by id.

Example:
  variantdb delete 0ujtsYcgvSTl8PAuAdqWYSMnLOv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			id, err := ksuid.Parse(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid id %q", args[0])
			}

			store, err := openStore(rt)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), id); err != nil {
				return errors.Wrap(err, "error deleting variant")
			}

			cmd.Printf("Successfully deleted '%s'\n", id)
			return nil
		},
	}
}
