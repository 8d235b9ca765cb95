package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored variants",
		Long: `List stored variant ids with their creation time, oldest first.

Example:
  variantdb list --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")

			store, err := openStore(rt)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return errors.Wrap(err, "error listing variants")
			}

			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d bytes\n", e.ID, e.CreatedAt.UTC().Format(time.RFC3339), len(e.Value))
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 0, "Maximum number of variants to list (0 for all)")
	return cmd
}
