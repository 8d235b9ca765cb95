/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/variantdb/pkg/api"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the variantdb REST API server.

Port, bind address and API key come from the config file; flags override
them. Run 'variantdb init' first to create a config with a generated key.

Examples:
  variantdb serve
  variantdb serve --api-key=mysecretkey --port=9000 --data-dir=./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd)
			if err != nil {
				return err
			}

			cfg := rt.cfg
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("bind") {
				cfg.Bind, _ = cmd.Flags().GetString("bind")
			}
			if cmd.Flags().Changed("api-key") {
				cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
			}
			if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
				return errors.New("an API key is required: pass --api-key or run 'variantdb init'")
			}

			store, err := openStore(rt)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			starter := container.GetServerFactory().CreateServerStarter()
			return starter.StartServer(ctx, store, api.ServerConfig{
				Port:   cfg.Port,
				Bind:   cfg.Bind,
				APIKey: cfg.Security.APIKey,
			}, api.WithDecoder(cfg.Decoder.NewDecoder()), api.WithLogger(rt.logger))
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	cmd.Flags().String("api-key", "", "API key for client authentication")
	return cmd
}
