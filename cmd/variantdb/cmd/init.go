/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/variantdb/pkg/config"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with a generated API key",
		Long: `Create the variantdb configuration file with a freshly generated API key
and create the data directory.

Examples:
  variantdb init
  variantdb init --config ./variantdb.yaml --data-dir ./data --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")

			if config.ConfigExists(rt.configPath) && !force {
				cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", rt.configPath)
				return nil
			}

			cfg, err := config.BootstrapConfig(rt.configPath, rt.cfg.DataDir)
			if err != nil {
				return errors.Wrap(err, "error bootstrapping config")
			}
			if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
				return errors.Wrap(err, "error creating data directory")
			}

			cmd.Printf("✅ Configuration created at %s\n", rt.configPath)
			cmd.Printf("Data directory: %s\n", cfg.DataDir)
			cmd.Printf("API key: %s\n", cfg.Security.APIKey)
			cmd.Printf("\nYou can now start the server with:\n")
			cmd.Printf("  variantdb serve --config %s\n", rt.configPath)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}
