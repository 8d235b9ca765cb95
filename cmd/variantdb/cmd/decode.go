/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/variantdb/pkg/api"
	"github.com/ssargent/variantdb/pkg/variant"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [value-file [metadata-file]]",
		Short: "Decode a variant to JSON",
		Long: `Decode a variant value/metadata pair and print it.

The json format prints JSON text with object fields in stored order. The
native format prints a kind-tagged tree that keeps decimals exact and
tells ints, doubles and decimals apart.

Examples:
  variantdb decode value.bin metadata.bin
  variantdb decode --value 0c05
  variantdb decode --value AgEAAAIMAQ== --metadata AQEAAWE= --encoding base64 --format native`,
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

			opts := rt.cfg.Decoder.Options()
			if cmd.Flags().Changed("max-depth") {
				depth, _ := cmd.Flags().GetInt("max-depth")
				opts = append(opts, variant.WithMaxDepth(depth))
			}
			if cmd.Flags().Changed("strict") {
				strict, _ := cmd.Flags().GetBool("strict")
				opts = append(opts, variant.WithStrictFieldOrder(strict))
			}

			format, _ := cmd.Flags().GetString("format")
			return printVariant(cmd.OutOrStdout(), variant.NewDecoder(opts...), format, value, metadata)
		},
	}

	addPairFlags(cmd)
	cmd.Flags().StringP("format", "f", api.FormatJSON, "Output format: json or native")
	cmd.Flags().Int("max-depth", variant.DefaultMaxDepth, "Maximum container nesting depth")
	cmd.Flags().Bool("strict", false, "Reject objects whose keys are not strictly increasing")
	return cmd
}

// printVariant writes the pair to w in format.
func printVariant(w io.Writer, decoder *variant.Decoder, format string, value, metadata []byte) error {
	switch format {
	case api.FormatJSON:
		text, err := decoder.ToJSON(value, metadata)
		if err != nil {
			return errors.Wrap(err, "decode variant")
		}
		_, err = fmt.Fprintln(w, text)
		return err
	case api.FormatNative:
		v, err := decoder.ToNative(value, metadata)
		if err != nil {
			return errors.Wrap(err, "decode variant")
		}
		out, err := json.MarshalIndent(api.NewNativeNode(v), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
	return errors.Errorf("unsupported format %q", format)
}
