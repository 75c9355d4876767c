package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newPuzzlesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "puzzles",
		Short: "List registered puzzle definitions",
		Long: `List every registered puzzle definition with its orbits and moves.

Examples:
  kpuzzle puzzles
  kpuzzle puzzles --definitions ./pyraminx.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range a.registry.Names() {
				def, err := a.registry.Get(name)
				if err != nil {
					return err
				}

				moves := make([]string, 0, len(def.Moves))
				for m := range def.Moves {
					moves = append(moves, m)
				}
				sort.Strings(moves)

				fmt.Fprintf(out, "%s\n", titleStyle.Render(name))
				fmt.Fprintf(out, "  Orbits: %s\n", describeOrbits(def))
				fmt.Fprintf(out, "  Moves:  %s\n", strings.Join(moves, " "))
			}
			return nil
		},
	}
}
