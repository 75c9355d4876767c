package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/kpuzzle/internal/storage"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and database information",
		Long:  `Display the database location, schema version, snapshot count and registered puzzles.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "kpuzzle Status")
			fmt.Fprintln(out, "==============")
			fmt.Fprintln(out)

			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(out, "Database: %s\n", db.Path())

			version, err := db.CurrentVersion(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Schema version: %d (latest %d)\n", version, storage.LatestVersion())

			repo := storage.NewSnapshotRepository(db)
			count, err := repo.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Snapshots: %d\n", count)
			if count > 0 {
				last, err := repo.GetLast(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Last snapshot: %s (%s, %s)\n", last.SnapshotID, last.Puzzle, last.CreatedAt.Format(time.RFC3339))
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Log level: %s\n", a.cfg.LogLevel)
			if len(a.cfg.Definitions) > 0 {
				fmt.Fprintln(out, "Definition files:")
				for _, path := range a.cfg.Definitions {
					fmt.Fprintf(out, "  - %s\n", path)
				}
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Puzzles:")
			for _, name := range a.registry.Names() {
				def, err := a.registry.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  - %s %s\n", name, describeOrbits(def))
			}
			return nil
		},
	}
}
