// Package kpuzzle models twisty puzzle states as elements of a
// permutation-with-orientation group.
//
// # Features
//
//   - Transformation algebra: Combine, Invert, Multiply, identity
//   - Strict and visible-state equality for puzzles with look-alike pieces
//   - A generic Puzzle interface shared by every puzzle family
//   - Sessions with undo/redo and a plain text state format
//   - Built-in 2x2x2 and 3x3x3 definitions
//
// # Quick Start
//
//	registry := kpuzzle.DefaultRegistry()
//	session, err := registry.NewSession(kpuzzle.Name3x3x3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, m := range []string{"R", "U"} {
//	    session.ApplyMove(m)
//	}
//	session.ApplyScaledMove("R", -1)
//	session.ApplyScaledMove("U", -1)
//
//	fmt.Println(session.Serialize())
//	fmt.Println("Solved:", session.IsSolved())
//
// # Conventions
//
// Permutation values are 1-based locations: Permutation[i] = j means the
// piece now in slot i came from location j. The identity therefore has
// Permutation[i] = i+1. Combine(def, a, b) applies a first and then b.
//
// # Puzzle Families
//
// Puzzle[S] is the extension point. TransformationPuzzle binds the algebra
// to one definition; CounterPuzzle counts quarter turns and exists to
// exercise the interface without any piece tracking.
package kpuzzle
