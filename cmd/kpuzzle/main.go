// kpuzzle - CLI application for applying moves to twisty puzzles and saving the results.
package main

import (
	"github.com/SeamusWaldron/kpuzzle/internal/cli"
)

func main() {
	cli.Execute()
}
