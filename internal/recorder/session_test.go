package recorder

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/storage"
)

func newRepo(t *testing.T) *storage.SnapshotRepository {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "recorder.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp(context.Background()))
	return storage.NewSnapshotRepository(db)
}

func TestRecordAndReplay(t *testing.T) {
	ctx := context.Background()
	registry := kpuzzle.DefaultRegistry()
	repo := newRepo(t)

	s, err := NewSession(registry, kpuzzle.Name3x3x3)
	require.NoError(t, err)
	require.NoError(t, s.Apply("R", 1))
	require.NoError(t, s.Apply("U", 2))
	require.NoError(t, s.Apply("F", -1))

	snap, err := s.Save(ctx, repo, "practice")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.MoveCount)

	replayed, err := Replay(ctx, registry, repo, snap.SnapshotID)
	require.NoError(t, err)
	assert.Equal(t, s.Session().Serialize(), replayed.Session().Serialize())
	assert.Len(t, replayed.Moves(), 3)
}

func TestReplayDetectsMismatch(t *testing.T) {
	ctx := context.Background()
	registry := kpuzzle.DefaultRegistry()
	repo := newRepo(t)

	// Stored state says R was applied, but the log is empty
	s, err := NewSession(registry, kpuzzle.Name2x2x2)
	require.NoError(t, err)
	require.NoError(t, s.Session().ApplyMove("R"))

	snap, err := s.Save(ctx, repo, "")
	require.NoError(t, err)
	assert.Nil(t, snap.Label)

	_, err = Replay(ctx, registry, repo, snap.SnapshotID)
	assert.ErrorIs(t, err, ErrReplayMismatch)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	registry := kpuzzle.DefaultRegistry()
	repo := newRepo(t)

	s, err := NewSession(registry, kpuzzle.Name3x3x3)
	require.NoError(t, err)
	require.NoError(t, s.Apply("L", 1))
	snap, err := s.Save(ctx, repo, "")
	require.NoError(t, err)

	restored, err := Restore(ctx, registry, repo, snap.SnapshotID)
	require.NoError(t, err)
	assert.Equal(t, s.Session().Serialize(), restored.Session().Serialize())
	assert.Equal(t, s.Moves(), restored.Moves())

	require.NoError(t, restored.Undo())
	assert.True(t, restored.Session().IsSolved())
	assert.Empty(t, restored.Moves())
}

func TestRestoreContinuesMoveCount(t *testing.T) {
	ctx := context.Background()
	registry := kpuzzle.DefaultRegistry()
	repo := newRepo(t)

	s, err := NewSession(registry, kpuzzle.Name3x3x3)
	require.NoError(t, err)
	require.NoError(t, s.Apply("R", 1))
	require.NoError(t, s.Apply("U", 1))
	require.NoError(t, s.Apply("F", 1))
	first, err := s.Save(ctx, repo, "")
	require.NoError(t, err)

	restored, err := Restore(ctx, registry, repo, first.SnapshotID)
	require.NoError(t, err)
	assert.Equal(t, 3, restored.Session().MoveCount())

	require.NoError(t, restored.Apply("D", 1))
	second, err := restored.Save(ctx, repo, "")
	require.NoError(t, err)

	moves, err := repo.Moves(ctx, second.SnapshotID)
	require.NoError(t, err)
	assert.Len(t, moves, 4)
	assert.Equal(t, 4, second.MoveCount)

	stored, err := repo.Get(ctx, second.SnapshotID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.MoveCount)

	_, err = Replay(ctx, registry, repo, second.SnapshotID)
	assert.NoError(t, err)
}

func TestCaptureIsDetached(t *testing.T) {
	ctx := context.Background()
	registry := kpuzzle.DefaultRegistry()
	repo := newRepo(t)

	s, err := NewSession(registry, kpuzzle.Name2x2x2)
	require.NoError(t, err)
	require.NoError(t, s.Apply("R", 1))

	c := s.Capture()
	require.NoError(t, s.Apply("U", 2))
	s.Reset()

	assert.Equal(t, 1, c.MoveCount)
	assert.Equal(t, []storage.SnapshotMove{{Seq: 1, Move: "R", Amount: 1}}, c.Moves)

	snap, err := c.Save(ctx, repo, "before U")
	require.NoError(t, err)
	assert.Equal(t, kpuzzle.Name2x2x2, snap.Puzzle)

	replayed, err := Replay(ctx, registry, repo, snap.SnapshotID)
	require.NoError(t, err)
	assert.Len(t, replayed.Moves(), 1)
}

func TestUndoRedoKeepsLogInStep(t *testing.T) {
	registry := kpuzzle.DefaultRegistry()
	s, err := NewSession(registry, kpuzzle.Name3x3x3)
	require.NoError(t, err)

	require.NoError(t, s.Apply("R", 1))
	require.NoError(t, s.Apply("U", 1))
	s.Reset()
	assert.Empty(t, s.Moves())

	require.NoError(t, s.Undo())
	assert.Len(t, s.Moves(), 2)
	require.NoError(t, s.Undo())
	assert.Equal(t, []storage.SnapshotMove{{Seq: 1, Move: "R", Amount: 1}}, s.Moves())

	require.NoError(t, s.Redo())
	assert.Len(t, s.Moves(), 2)
	assert.False(t, s.Session().IsSolved())

	require.NoError(t, s.Undo())
	require.NoError(t, s.Undo())
	assert.ErrorIs(t, s.Undo(), kpuzzle.ErrNothingToUndo)
	assert.Empty(t, s.Moves())
}

func TestUnknownMoveNotLogged(t *testing.T) {
	s, err := NewSession(kpuzzle.DefaultRegistry(), kpuzzle.Name3x3x3)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Apply("Q", 1), kpuzzle.ErrUnknownMove)
	assert.Empty(t, s.Moves())
}

func TestUnknownPuzzle(t *testing.T) {
	_, err := NewSession(kpuzzle.DefaultRegistry(), "megaminx")
	assert.ErrorIs(t, err, kpuzzle.ErrMissingDefinition)
}
