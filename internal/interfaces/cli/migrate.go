package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/config"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/migration"
)

const defaultMigrationsDir = "internal/infrastructure/migration/sql"

// NewMigrateCommand creates the migrate command and its subcommands.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the cache schema",
		Long: `Apply or roll back the embedded cache schema migrations against the
configured database, or scaffold a new migration pair.

Example:
  fluxc migrate up
  fluxc migrate version
  fluxc migrate create add_refunds "cache order refunds"`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(rootOpts, func(m *migration.Migrator) error { return m.Up() })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(rootOpts, func(m *migration.Migrator) error { return m.Down() })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "step <n>",
		Short: "Apply n migrations (negative n rolls back)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return withMigrator(rootOpts, func(m *migration.Migrator) error { return m.Steps(n) })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(rootOpts, func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	})

	cmd.AddCommand(newMigrateListCommand(rootOpts))
	cmd.AddCommand(newMigrateCreateCommand())
	return cmd
}

func newMigrateListCommand(rootOpts *RootOptions) *cobra.Command {
	var dialect string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the embedded migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dialect == "" {
				cfg, err := loadConfig(rootOpts)
				if err != nil {
					return err
				}
				dialect = cfg.Database.Driver
			}
			names, err := migration.EmbeddedMigrations(dialect)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dialect, "dialect", "", "sqlite or postgres (default: the configured driver)")
	return cmd
}

func newMigrateCreateCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Scaffold an empty migration for every dialect",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			files, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n  %s\n  %s\n", f.Version, f.Dialect, f.UpPath, f.DownPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", defaultMigrationsDir, "migrations root containing one directory per dialect")
	return cmd
}

func withMigrator(rootOpts *RootOptions, fn func(m *migration.Migrator) error) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	if isMemoryDSN(cfg.Database) {
		return fmt.Errorf("database.dsn %q is in memory; migrations need a file or server database", cfg.Database.DSN)
	}
	m, err := newMigrator(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	log.Debug("Migrating cache", zap.String("driver", cfg.Database.Driver), zap.String("dsn", redactDSN(cfg.Database)))
	return fn(m)
}

// redactDSN hides the credentials of a postgres URL
func redactDSN(cfg config.DatabaseConfig) string {
	at := strings.LastIndex(cfg.DSN, "@")
	scheme := strings.Index(cfg.DSN, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return cfg.DSN
	}
	return cfg.DSN[:scheme+3] + "***" + cfg.DSN[at:]
}
