package cmd

import (
	"encoding/base64"
	"fmt"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/variantdb/pkg/api"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a stored variant",
		Long: `Get a stored variant and print it as JSON, as a kind-tagged tree, or as
its raw base64 buffers.

Example:
  variantdb get 0ujtsYcgvSTl8PAuAdqWYSMnLOv
  variantdb get 0ujtsYcgvSTl8PAuAdqWYSMnLOv --format raw`,
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

			entry, err := store.Get(cmd.Context(), id)
			if err != nil {
				return errors.Wrap(err, "error getting variant")
			}

			format, _ := cmd.Flags().GetString("format")
			if format == api.FormatRaw {
				fmt.Fprintf(cmd.OutOrStdout(), "value: %s\n", base64.StdEncoding.EncodeToString(entry.Value))
				fmt.Fprintf(cmd.OutOrStdout(), "metadata: %s\n", base64.StdEncoding.EncodeToString(entry.Metadata))
				return nil
			}
			return printVariant(cmd.OutOrStdout(), rt.cfg.Decoder.NewDecoder(), format, entry.Value, entry.Metadata)
		},
	}

	cmd.Flags().StringP("format", "f", api.FormatJSON, "Output format: json, native or raw")
	return cmd
}
