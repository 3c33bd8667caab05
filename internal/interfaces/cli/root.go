// Package cli implements the fluxc command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	LogLevel   string
	Version    string
}

// NewRootCommand creates the root command of the fluxc CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{Version: version}

	cmd := &cobra.Command{
		Use:     "fluxc",
		Short:   "FluxC - WordPress and WooCommerce data sync",
		Long:    "Fetches WordPress.com and WooCommerce data into a local cache and serves it to inspectors.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.LogLevel != "" && !logger.IsValidLevel(opts.LogLevel) {
				return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", opts.LogLevel)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: config.toml in ., ./config or /etc/fluxc)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level override (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewPromptsCommand(opts))
	cmd.AddCommand(NewProxyCommand(opts))

	return cmd
}
