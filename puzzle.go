package kpuzzle

// Puzzle is the capability set every puzzle family provides over its own
// state type S. New puzzle families plug in by implementing it.
type Puzzle[S any] interface {
	// StartState returns the solved (identity) state.
	StartState() S

	// Invert returns the inverse of s.
	Invert(s S) S

	// Combine returns s1 followed by s2.
	Combine(s1, s2 S) S

	// Multiply returns s combined with itself amount times.
	Multiply(s S, amount int) S

	// StateFromMove returns the state for a single named move.
	// It returns an *UnknownMoveError if the name is not registered.
	StateFromMove(moveName string) (S, error)

	// Equivalent reports whether two states look the same.
	Equivalent(s1, s2 S) bool
}

// RepeatMultiply is the plain Multiply any Puzzle can fall back on: it
// combines s with the start state |amount| times, going through Invert for
// negative amounts. It is linear in amount.
func RepeatMultiply[S any](p Puzzle[S], s S, amount int) S {
	if amount < 0 {
		return p.Invert(RepeatMultiply(p, s, -amount))
	}

	result := p.StartState()
	for i := 0; i < amount; i++ {
		result = p.Combine(result, s)
	}
	return result
}

// TransformationPuzzle adapts the transformation algebra to the Puzzle
// interface for one definition.
type TransformationPuzzle struct {
	def *PuzzleDefinition
}

// NewTransformationPuzzle binds the algebra to def.
func NewTransformationPuzzle(def *PuzzleDefinition) *TransformationPuzzle {
	return &TransformationPuzzle{def: def}
}

// Definition returns the bound definition.
func (p *TransformationPuzzle) Definition() *PuzzleDefinition {
	return p.def
}

func (p *TransformationPuzzle) StartState() Transformation {
	return IdentityTransformation(p.def)
}

func (p *TransformationPuzzle) Invert(s Transformation) Transformation {
	return Invert(p.def, s)
}

func (p *TransformationPuzzle) Combine(s1, s2 Transformation) Transformation {
	return Combine(p.def, s1, s2)
}

// Multiply uses binary exponentiation rather than RepeatMultiply.
func (p *TransformationPuzzle) Multiply(s Transformation, amount int) Transformation {
	return Multiply(p.def, s, amount)
}

func (p *TransformationPuzzle) StateFromMove(moveName string) (Transformation, error) {
	return p.def.Move(moveName)
}

func (p *TransformationPuzzle) Equivalent(s1, s2 Transformation) bool {
	return EquivalentStates(p.def, s1, s2)
}

var _ Puzzle[Transformation] = (*TransformationPuzzle)(nil)
