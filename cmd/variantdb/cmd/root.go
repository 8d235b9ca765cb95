/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/variantdb/pkg/config"
	"github.com/ssargent/variantdb/pkg/di"
	"github.com/ssargent/variantdb/pkg/logging"
)

var container *di.Container

// SetContainer injects the dependency container used by the commands
func SetContainer(c *di.Container) {
	container = c
}

type runtimeKey struct{}

// appState is what the root command resolves before any subcommand runs.
type appState struct {
	configPath string
	cfg        *config.Config
	logger     log.Logger
}

func runtimeFrom(cmd *cobra.Command) (*appState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*appState)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}
	return rt, nil
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "variantdb",
		Short: "variantdb - decode and store binary variant values",
		Long: `variantdb decodes the binary variant encoding (a value buffer plus a
metadata dictionary) into JSON text or a kind-tagged tree, and keeps
variants in an embedded store served over a REST API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, rt))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the store (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(
		newDecodeCmd(),
		newPutCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newListCmd(),
		newServeCmd(),
		newInitCmd(),
	)
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// loadRuntime reads the config file if present and applies flag overrides.
func loadRuntime(cmd *cobra.Command) (*appState, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "configuration loaded", "path", configPath, "data_dir", cfg.DataDir)

	return &appState{configPath: configPath, cfg: cfg, logger: logger}, nil
}

// openStore opens the store named by the loaded configuration.
func openStore(rt *appState) (di.Store, error) {
	if container == nil {
		return nil, errors.New("dependency container not initialized")
	}
	return container.GetStoreFactory().OpenStore(rt.cfg.DataDir, rt.logger, rt.cfg.Decoder.NewDecoder())
}
