package kpuzzle

// Built-in puzzle names.
const (
	Name2x2x2 = "222"
	Name3x3x3 = "333"
)

// Face turn data shared by the built-in cubes. Corners 1-4 sit in the U
// layer and 5-8 in the D layer. Edges 1-4 are in the U layer, 5-8 in the D
// layer and 9-12 in the E slice.
var (
	cornerTurns = map[string]OrbitTransformation{
		"U": {Permutation: []int{2, 3, 4, 1, 5, 6, 7, 8}, Orientation: []int{0, 0, 0, 0, 0, 0, 0, 0}},
		"L": {Permutation: []int{1, 2, 7, 3, 5, 4, 6, 8}, Orientation: []int{0, 0, 2, 1, 0, 2, 1, 0}},
		"F": {Permutation: []int{4, 2, 3, 6, 1, 5, 7, 8}, Orientation: []int{1, 0, 0, 2, 2, 1, 0, 0}},
		"R": {Permutation: []int{5, 1, 3, 4, 8, 6, 7, 2}, Orientation: []int{2, 1, 0, 0, 1, 0, 0, 2}},
		"B": {Permutation: []int{1, 8, 2, 4, 5, 6, 3, 7}, Orientation: []int{0, 2, 1, 0, 0, 0, 2, 1}},
		"D": {Permutation: []int{1, 2, 3, 4, 6, 7, 8, 5}, Orientation: []int{0, 0, 0, 0, 0, 0, 0, 0}},
	}

	edgeTurns = map[string]OrbitTransformation{
		"U": {Permutation: []int{2, 3, 4, 1, 5, 6, 7, 8, 9, 10, 11, 12}, Orientation: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		"L": {Permutation: []int{1, 2, 3, 12, 5, 6, 7, 10, 9, 4, 11, 8}, Orientation: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		"F": {Permutation: []int{10, 2, 3, 4, 9, 6, 7, 8, 1, 5, 11, 12}, Orientation: []int{1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 0, 0}},
		"R": {Permutation: []int{1, 9, 3, 4, 5, 11, 7, 8, 6, 10, 2, 12}, Orientation: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
		"B": {Permutation: []int{1, 2, 11, 4, 5, 6, 12, 8, 9, 10, 7, 3}, Orientation: []int{0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 1}},
		"D": {Permutation: []int{1, 2, 3, 4, 8, 5, 6, 7, 9, 10, 11, 12}, Orientation: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
)

// Cube3x3x3 returns a new definition of the standard 3x3x3 cube with the
// six clockwise face turns U, L, F, R, B and D. Centers never move under
// face turns and are not tracked.
func Cube3x3x3() *PuzzleDefinition {
	def := &PuzzleDefinition{
		Name: Name3x3x3,
		Orbits: []OrbitDefinition{
			{Name: "EDGES", NumPieces: 12, Orientations: 2},
			{Name: "CORNERS", NumPieces: 8, Orientations: 3},
		},
		Moves: make(map[string]Transformation, len(cornerTurns)),
	}
	for name := range cornerTurns {
		def.Moves[name] = Clone(Transformation{
			"EDGES":   edgeTurns[name],
			"CORNERS": cornerTurns[name],
		})
	}
	def.StartPieces = IdentityTransformation(def)
	return def
}

// Cube2x2x2 returns a new definition of the 2x2x2 cube. Its only orbit is
// the eight corners, turned by the same six face moves as the 3x3x3.
func Cube2x2x2() *PuzzleDefinition {
	def := &PuzzleDefinition{
		Name: Name2x2x2,
		Orbits: []OrbitDefinition{
			{Name: "CORNERS", NumPieces: 8, Orientations: 3},
		},
		Moves: make(map[string]Transformation, len(cornerTurns)),
	}
	for name := range cornerTurns {
		def.Moves[name] = Clone(Transformation{"CORNERS": cornerTurns[name]})
	}
	def.StartPieces = IdentityTransformation(def)
	return def
}
