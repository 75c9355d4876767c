package kpuzzle

// OrbitDefinition describes one independently tracked group of pieces,
// such as the corners or edges of a cube.
type OrbitDefinition struct {
	Name         string // Key used in every Transformation for this puzzle
	NumPieces    int    // Number of piece slots, at least 1
	Orientations int    // Orientation modulus, at least 1
}

// PuzzleDefinition describes a puzzle type: its orbits, solved arrangement
// and named moves. A definition is read-only once built and may be shared
// by any number of sessions.
type PuzzleDefinition struct {
	Name string

	// Orbits in declared order. Serialization follows this order.
	Orbits []OrbitDefinition

	// StartPieces is the solved arrangement. Unlike a move it may repeat
	// piece identities within an orbit to mark pieces that look the same.
	StartPieces Transformation

	// Moves maps a move name to its transformation.
	Moves map[string]Transformation
}

// Orbit returns the orbit with the given name.
func (d *PuzzleDefinition) Orbit(name string) (OrbitDefinition, bool) {
	for _, o := range d.Orbits {
		if o.Name == name {
			return o, true
		}
	}
	return OrbitDefinition{}, false
}

// OrbitNames returns the orbit names in declared order.
func (d *PuzzleDefinition) OrbitNames() []string {
	names := make([]string, len(d.Orbits))
	for i, o := range d.Orbits {
		names[i] = o.Name
	}
	return names
}

// Move returns a copy of the transformation registered for name, so the
// caller may modify it without touching the definition.
func (d *PuzzleDefinition) Move(name string) (Transformation, error) {
	t, ok := d.Moves[name]
	if !ok {
		return nil, &UnknownMoveError{Move: name}
	}
	return Clone(t), nil
}
