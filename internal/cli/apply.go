package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/notation"
	"github.com/SeamusWaldron/kpuzzle/internal/recorder"
	"github.com/SeamusWaldron/kpuzzle/internal/storage"
)

// parseAlgorithm parses every argument as a move sequence.
func parseAlgorithm(def *kpuzzle.PuzzleDefinition, args []string) ([]notation.Move, error) {
	moves, err := notation.ParseSequence(def, strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("no moves given")
	}
	return moves, nil
}

func newApplyCmd(a *app) *cobra.Command {
	var (
		repeat   int
		simplify bool
		save     bool
		label    string
	)

	cmd := &cobra.Command{
		Use:   "apply <puzzle> <moves...>",
		Short: "Apply moves to a solved puzzle and print the state",
		Long: `Apply a sequence of moves to a solved puzzle and print the resulting
state in the text serialization format.

Moves are separated by whitespace. A trailing ' inverts a move and a
trailing number repeats it: R, R', R2, R2'.

Examples:
  kpuzzle apply 333 "R U R' U'"
  kpuzzle apply 333 R U --repeat 6
  kpuzzle apply 222 R U2 F' --save --label practice`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			rec, err := recorder.NewSession(a.registry, args[0], kpuzzle.WithLogger(a.logger))
			if err != nil {
				return err
			}
			def := rec.Session().Definition()

			moves, err := parseAlgorithm(def, args[1:])
			if err != nil {
				return err
			}
			if repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1")
			}
			for i := 0; i < repeat; i++ {
				for _, m := range moves {
					if err := rec.Apply(m.Name, m.Amount); err != nil {
						return err
					}
				}
			}

			session := rec.Session()
			fmt.Fprintln(out, session.Serialize())
			fmt.Fprintln(out)
			if simplify {
				fmt.Fprintf(out, "Simplified: %s\n", notation.FormatSequence(notation.Simplify(def, toNotation(rec.Moves()))))
			}
			fmt.Fprintf(out, "Moves:  %d\n", session.MoveCount())
			fmt.Fprintf(out, "Solved: %s\n", solvedLabel(session.IsSolved()))

			if !save {
				return nil
			}

			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			snap, err := rec.Save(cmd.Context(), storage.NewSnapshotRepository(db), label)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved:  %s\n", snap.SnapshotID)
			return nil
		},
	}

	cmd.Flags().IntVar(&repeat, "repeat", 1, "Apply the whole sequence this many times")
	cmd.Flags().BoolVar(&simplify, "simplify", false, "Also print the applied sequence with cancelling turns merged")
	cmd.Flags().BoolVar(&save, "save", false, "Save the result as a snapshot")
	cmd.Flags().StringVar(&label, "label", "", "Snapshot label (with --save)")
	return cmd
}
