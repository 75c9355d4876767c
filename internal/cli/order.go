package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/notation"
)

func newOrderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order <puzzle> <moves...>",
		Short: "Print how many repetitions return a sequence to solved",
		Long: `Compute the order of a move sequence: the smallest number of times it
must be repeated to return the puzzle to its solved state.

Examples:
  kpuzzle order 333 "R U R' U'"
  kpuzzle order 333 R U`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.registry.Get(args[0])
			if err != nil {
				return err
			}
			moves, err := parseAlgorithm(def, args[1:])
			if err != nil {
				return err
			}

			t, err := notation.Transformation(def, moves)
			if err != nil {
				return err
			}

			a.logger.Debug("order computed", "puzzle", def.Name, "moves", len(moves))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", strings.Join(args[1:], " "), kpuzzle.Order(def, t))
			return nil
		},
	}
}
