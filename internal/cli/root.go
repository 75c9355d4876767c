// Package cli implements the command-line interface for kpuzzle.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/config"
	"github.com/SeamusWaldron/kpuzzle/internal/loader"
)

const version = "0.1.0"

// app carries what every command needs once flags and environment are read.
type app struct {
	dbPath      string
	definitions []string
	verbose     bool

	cfg      config.Config
	logger   *slog.Logger
	registry *kpuzzle.Registry
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "kpuzzle",
		Short: "Twisty puzzle state calculator",
		Long: `kpuzzle - apply moves to twisty puzzles and inspect the resulting state.

Puzzles are modelled as permutation-with-orientation groups. Built-in
definitions cover the 2x2x2 and 3x3x3 cubes; more can be loaded from YAML or
JSON files with --definitions. Sessions can be saved as snapshots and
replayed later.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Database file path (default: ~/.kpuzzle/kpuzzle.db)")
	rootCmd.PersistentFlags().StringSliceVar(&a.definitions, "definitions", nil, "Extra puzzle definition files (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		newPuzzlesCmd(a),
		newApplyCmd(a),
		newOrderCmd(a),
		newStatusCmd(a),
		newSnapshotsCmd(a),
		newPlayCmd(a),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// init reads the environment, applies flag overrides and builds the
// logger and registry.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if cmd.Flags().Changed("definitions") {
		cfg.Definitions = a.definitions
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a.registry = kpuzzle.DefaultRegistry()
	for _, path := range cfg.Definitions {
		def, err := loader.LoadFile(path)
		if err != nil {
			return err
		}
		if err := a.registry.Register(def); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		a.logger.Debug("definition loaded", "path", path, "puzzle", def.Name)
	}
	return nil
}
