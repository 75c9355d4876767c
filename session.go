package kpuzzle

import "fmt"

// Session holds the current state of one puzzle and applies moves to it.
// The state is replaced wholesale on every change, never edited in place.
//
// A Session is not safe for concurrent use.
type Session struct {
	def *PuzzleDefinition
	cfg *config

	state     Transformation
	moveCount int

	// Past and undone states, most recent last
	undo []snapshot
	redo []snapshot

	onMove func(name string, amount int)
}

type snapshot struct {
	state     Transformation
	moveCount int
}

// NewSession creates a session for def starting from the identity.
func NewSession(def *PuzzleDefinition, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Session{
		def:   def,
		cfg:   cfg,
		state: IdentityTransformation(def),
	}
}

// SetMoveCallback sets a callback that fires after every applied move.
func (s *Session) SetMoveCallback(cb func(name string, amount int)) {
	s.onMove = cb
}

// Definition returns the puzzle definition.
func (s *Session) Definition() *PuzzleDefinition {
	return s.def
}

// State returns a copy of the current state.
func (s *Session) State() Transformation {
	return Clone(s.state)
}

// MoveCount returns the number of moves applied since the last reset.
func (s *Session) MoveCount() int {
	return s.moveCount
}

// IsSolved reports whether the puzzle looks solved.
func (s *Session) IsSolved() bool {
	return EquivalentStates(s.def, s.state, IdentityTransformation(s.def))
}

// ApplyMove applies the named move once.
func (s *Session) ApplyMove(name string) error {
	move, err := s.lookup(name)
	if err != nil {
		return err
	}
	s.apply(name, 1, move)
	return nil
}

// ApplyScaledMove applies the named move amount times in one step.
// A negative amount applies the inverse.
func (s *Session) ApplyScaledMove(name string, amount int) error {
	move, err := s.lookup(name)
	if err != nil {
		return err
	}
	s.apply(name, amount, Multiply(s.def, move, amount))
	return nil
}

func (s *Session) lookup(name string) (Transformation, error) {
	move, err := s.def.Move(name)
	if err != nil {
		s.cfg.logger.Debug("move rejected", "puzzle", s.def.Name, "move", name)
		return nil, err
	}
	if s.cfg.validation {
		if err := Validate(s.def, move); err != nil {
			return nil, err
		}
	}
	return move, nil
}

func (s *Session) apply(name string, amount int, t Transformation) {
	s.replace(Combine(s.def, s.state, t), s.moveCount+1)
	s.cfg.logger.Debug("move applied", "puzzle", s.def.Name, "move", name, "amount", amount, "moves", s.moveCount)

	if s.onMove != nil {
		s.onMove(name, amount)
	}
}

// replace installs a new state, recording the old one for Undo.
func (s *Session) replace(state Transformation, moveCount int) {
	if s.cfg.history {
		s.undo = append(s.undo, snapshot{state: s.state, moveCount: s.moveCount})
		s.redo = nil
	}
	s.state = state
	s.moveCount = moveCount
}

// SetState replaces the current state after validating it.
func (s *Session) SetState(t Transformation) error {
	if err := Validate(s.def, t); err != nil {
		return err
	}
	s.replace(Clone(t), s.moveCount)
	return nil
}

// Load replaces the current state with one produced by Serialize.
func (s *Session) Load(text string) error {
	t, err := ParseState(s.def, text)
	if err != nil {
		return err
	}
	s.replace(t, s.moveCount)
	return nil
}

// LoadWithMoveCount is Load for a state reached after moveCount moves,
// such as a saved session whose move log is carried over.
func (s *Session) LoadWithMoveCount(text string, moveCount int) error {
	if moveCount < 0 {
		return fmt.Errorf("%w: negative move count %d", ErrMalformedState, moveCount)
	}
	t, err := ParseState(s.def, text)
	if err != nil {
		return err
	}
	s.replace(t, moveCount)
	return nil
}

// Reset returns the session to the identity and clears the move count.
func (s *Session) Reset() {
	s.replace(IdentityTransformation(s.def), 0)
}

// Undo restores the state before the last change.
func (s *Session) Undo() error {
	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, snapshot{state: s.state, moveCount: s.moveCount})
	s.state = prev.state
	s.moveCount = prev.moveCount
	return nil
}

// Redo reapplies the last undone change.
func (s *Session) Redo() error {
	if len(s.redo) == 0 {
		return ErrNothingToRedo
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, snapshot{state: s.state, moveCount: s.moveCount})
	s.state = next.state
	s.moveCount = next.moveCount
	return nil
}

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool {
	return len(s.redo) > 0
}
