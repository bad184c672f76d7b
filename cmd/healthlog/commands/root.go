// Package commands implements the healthlog command line.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"healthlog/internal/config"
)

// globalOptions carries the persistent flags and what PersistentPreRunE
// builds from them.
type globalOptions struct {
	store       string
	sqlitePath  string
	databaseURL string
	verbose     bool

	cfg *config.Config
	log *zap.Logger
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd creates the healthlog root command with all subcommands.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "healthlog",
		Short: "Personal blood glucose and weight log",
		Long: `healthlog keeps a personal log of blood glucose readings and daily
morning/evening weigh-ins, and derives BMI, water intake and weight trends.

Run "healthlog serve" for the web app, or use the subcommands directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.log != nil {
				_ = g.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&g.store, "store", "", "storage backend: sqlite, postgres or memory (default $STORE_DRIVER or sqlite)")
	cmd.PersistentFlags().StringVar(&g.sqlitePath, "sqlite-path", "", "SQLite database file (default $SQLITE_PATH or healthlog.db)")
	cmd.PersistentFlags().StringVar(&g.databaseURL, "database-url", "", "Postgres connection string (default $DATABASE_URL)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		NewServeCmd(g),
		NewProfileCmd(g),
		NewSummaryCmd(g),
		NewGlucoseCmd(g),
		NewWeightCmd(g),
		NewReportCmd(g),
		NewHashPasswordCmd(),
	)
	return cmd
}

func (g *globalOptions) init(cmd *cobra.Command) error {
	cfg, err := config.Load(func(c *config.Config) {
		if g.store != "" {
			c.StoreDriver = g.store
		}
		if g.sqlitePath != "" {
			c.SQLitePath = g.sqlitePath
		}
		if g.databaseURL != "" {
			c.DatabaseURL = g.databaseURL
		}
	})
	if err != nil {
		return err
	}
	g.cfg = cfg

	log, err := newLogger(cfg.LogLevel, g.verbose)
	if err != nil {
		return err
	}
	g.log = log.With(zap.String("command", cmd.Name()))
	return nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if verbose {
		lvl = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg.Level = lvl
	return zcfg.Build()
}
