// Package recorder records the moves applied to a puzzle session so the
// session can be saved as a snapshot and replayed later.
package recorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/storage"
)

// ErrReplayMismatch is returned when replaying a move log does not
// reproduce the stored state.
var ErrReplayMismatch = errors.New("recorder: replayed state does not match snapshot")

// Session wraps a kpuzzle.Session and keeps a move log alongside it. All
// changes must go through the recorder so the log and the session's undo
// history stay in step.
type Session struct {
	puzzle  string
	session *kpuzzle.Session

	log     []storage.SnapshotMove
	history [][]storage.SnapshotMove
	redo    [][]storage.SnapshotMove
}

// NewSession starts a recorded session on the named puzzle.
func NewSession(registry *kpuzzle.Registry, puzzle string, opts ...kpuzzle.Option) (*Session, error) {
	session, err := registry.NewSession(puzzle, opts...)
	if err != nil {
		return nil, err
	}
	return &Session{puzzle: puzzle, session: session}, nil
}

// Puzzle returns the puzzle name.
func (s *Session) Puzzle() string {
	return s.puzzle
}

// Session returns the underlying session for reading state.
func (s *Session) Session() *kpuzzle.Session {
	return s.session
}

// Moves returns a copy of the move log.
func (s *Session) Moves() []storage.SnapshotMove {
	return append([]storage.SnapshotMove(nil), s.log...)
}

// Apply applies a move amount times and logs it.
func (s *Session) Apply(name string, amount int) error {
	if err := s.session.ApplyScaledMove(name, amount); err != nil {
		return err
	}
	s.push(append(s.Moves(), storage.SnapshotMove{Seq: len(s.log) + 1, Move: name, Amount: amount}))
	return nil
}

// Reset returns the puzzle to solved and clears the log.
func (s *Session) Reset() {
	s.session.Reset()
	s.push(nil)
}

func (s *Session) push(log []storage.SnapshotMove) {
	s.history = append(s.history, s.log)
	s.redo = nil
	s.log = log
}

// Undo reverts the last move or reset.
func (s *Session) Undo() error {
	if err := s.session.Undo(); err != nil {
		return err
	}
	s.redo = append(s.redo, s.log)
	s.log = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return nil
}

// Redo reapplies the last undone change.
func (s *Session) Redo() error {
	if err := s.session.Redo(); err != nil {
		return err
	}
	s.history = append(s.history, s.log)
	s.log = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return nil
}

// Capture is a copy of a recorded session's state and log, detached from
// the session so it can be saved from another goroutine.
type Capture struct {
	Puzzle    string
	State     string
	MoveCount int
	Moves     []storage.SnapshotMove
}

// Capture copies the current state and move log.
func (s *Session) Capture() Capture {
	return Capture{
		Puzzle:    s.puzzle,
		State:     s.session.Serialize(),
		MoveCount: s.session.MoveCount(),
		Moves:     s.Moves(),
	}
}

// Save stores the current state and move log as a snapshot.
func (s *Session) Save(ctx context.Context, repo *storage.SnapshotRepository, label string) (*storage.Snapshot, error) {
	return s.Capture().Save(ctx, repo, label)
}

// Save stores the captured state and move log as a snapshot. An empty
// label is stored as no label.
func (c Capture) Save(ctx context.Context, repo *storage.SnapshotRepository, label string) (*storage.Snapshot, error) {
	var labelPtr *string
	if label != "" {
		labelPtr = &label
	}
	snap, err := repo.Create(ctx, c.Puzzle, labelPtr, c.State, c.MoveCount, c.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snap, nil
}

// Restore loads a snapshot's stored state into a new recorded session.
// The move log is carried over but not replayed, and the move count
// continues from its length. Undo goes back to the solved state.
func Restore(ctx context.Context, registry *kpuzzle.Registry, repo *storage.SnapshotRepository, snapshotID string, opts ...kpuzzle.Option) (*Session, error) {
	snap, err := repo.Get(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	moves, err := repo.Moves(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	s, err := NewSession(registry, snap.Puzzle, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.session.LoadWithMoveCount(snap.State, len(moves)); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotID, err)
	}
	s.push(moves)
	return s, nil
}

// Replay rebuilds a session from a snapshot's move log and checks that it
// reaches the stored state.
func Replay(ctx context.Context, registry *kpuzzle.Registry, repo *storage.SnapshotRepository, snapshotID string, opts ...kpuzzle.Option) (*Session, error) {
	snap, err := repo.Get(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	moves, err := repo.Moves(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	s, err := NewSession(registry, snap.Puzzle, opts...)
	if err != nil {
		return nil, err
	}
	for _, m := range moves {
		if err := s.Apply(m.Move, m.Amount); err != nil {
			return nil, fmt.Errorf("replay move %d: %w", m.Seq, err)
		}
	}

	stored, err := kpuzzle.ParseState(s.session.Definition(), snap.State)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotID, err)
	}
	if !kpuzzle.EquivalentTransformations(s.session.Definition(), s.session.State(), stored) {
		return s, ErrReplayMismatch
	}
	return s, nil
}
