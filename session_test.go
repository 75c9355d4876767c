package kpuzzle

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionIsSolved(t *testing.T) {
	s := NewSession(Cube3x3x3())
	assert.True(t, s.IsSolved())
	assert.Equal(t, 0, s.MoveCount())
	assert.Equal(t, IdentityTransformation(s.Definition()), s.State())
}

func TestApplyMoveBreaksSolved(t *testing.T) {
	s := NewSession(Cube3x3x3())
	require.NoError(t, s.ApplyMove("R"))
	assert.False(t, s.IsSolved())
	assert.Equal(t, 1, s.MoveCount())
	assert.Equal(t, s.Definition().Moves["R"], s.State())
}

func TestSexyMoveSixTimesReturnsToSolved(t *testing.T) {
	s := NewSession(Cube3x3x3())
	for i := 0; i < 6; i++ {
		require.NoError(t, s.ApplyMove("R"))
		require.NoError(t, s.ApplyMove("U"))
		require.NoError(t, s.ApplyScaledMove("R", -1))
		require.NoError(t, s.ApplyScaledMove("U", -1))
		if i < 5 {
			assert.False(t, s.IsSolved(), "solved early after %d repetitions", i+1)
		}
	}
	assert.True(t, s.IsSolved())
	assert.Equal(t, 24, s.MoveCount())
}

func TestApplyScaledMove(t *testing.T) {
	def := Cube3x3x3()
	s := NewSession(def)

	require.NoError(t, s.ApplyScaledMove("F", 2))
	assert.Equal(t, Multiply(def, def.Moves["F"], 2), s.State())

	require.NoError(t, s.ApplyScaledMove("F", -2))
	assert.True(t, s.IsSolved())

	require.NoError(t, s.ApplyScaledMove("F", 0))
	assert.True(t, s.IsSolved())
}

func TestApplyUnknownMove(t *testing.T) {
	s := NewSession(Cube3x3x3())
	require.NoError(t, s.ApplyMove("R"))
	before := s.State()

	err := s.ApplyMove("Q")
	var unknown *UnknownMoveError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Q", unknown.Move)
	assert.Equal(t, before, s.State())
	assert.Equal(t, 1, s.MoveCount())

	err = s.ApplyScaledMove("Q", 3)
	assert.ErrorIs(t, err, ErrUnknownMove)
}

func TestStateReturnsCopy(t *testing.T) {
	s := NewSession(Cube2x2x2())
	st := s.State()
	st["CORNERS"].Permutation[0] = 8

	assert.True(t, s.IsSolved())
}

func TestUndoRedo(t *testing.T) {
	def := Cube3x3x3()
	s := NewSession(def)
	require.NoError(t, s.ApplyMove("R"))
	afterR := s.State()
	require.NoError(t, s.ApplyMove("U"))
	afterRU := s.State()

	require.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	require.NoError(t, s.Undo())
	assert.True(t, s.CanRedo())
	assert.Equal(t, afterR, s.State())
	assert.Equal(t, 1, s.MoveCount())

	require.NoError(t, s.Undo())
	assert.True(t, s.IsSolved())
	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)

	require.NoError(t, s.Redo())
	require.NoError(t, s.Redo())
	assert.Equal(t, afterRU, s.State())
	assert.Equal(t, 2, s.MoveCount())
	assert.ErrorIs(t, s.Redo(), ErrNothingToRedo)

	// A new move drops the redo stack
	require.NoError(t, s.Undo())
	require.NoError(t, s.ApplyMove("F"))
	assert.False(t, s.CanRedo())
	assert.ErrorIs(t, s.Redo(), ErrNothingToRedo)
}

func TestLoadWithMoveCount(t *testing.T) {
	def := Cube3x3x3()
	src := NewSession(def)
	require.NoError(t, src.ApplyMove("R"))
	require.NoError(t, src.ApplyMove("U"))
	require.NoError(t, src.ApplyMove("F"))

	s := NewSession(def)
	require.NoError(t, s.LoadWithMoveCount(src.Serialize(), 3))
	assert.Equal(t, 3, s.MoveCount())
	assert.Equal(t, src.State(), s.State())

	require.NoError(t, s.ApplyMove("D"))
	assert.Equal(t, 4, s.MoveCount())

	require.NoError(t, s.Undo())
	require.NoError(t, s.Undo())
	assert.True(t, s.IsSolved())
	assert.Equal(t, 0, s.MoveCount())

	assert.ErrorIs(t, s.LoadWithMoveCount(src.Serialize(), -1), ErrMalformedState)
	assert.ErrorIs(t, s.LoadWithMoveCount("EDGES\n1 2", 1), ErrMalformedState)
	assert.Equal(t, 0, s.MoveCount())
}

func TestMoveReturnsCopy(t *testing.T) {
	def := Cube3x3x3()
	r, err := def.Move("R")
	require.NoError(t, err)
	r["CORNERS"].Permutation[0] = 99
	r["EDGES"].Orientation[0] = 1

	assert.Equal(t, 5, def.Moves["R"]["CORNERS"].Permutation[0])
	assert.Equal(t, 0, def.Moves["R"]["EDGES"].Orientation[0])

	p := NewTransformationPuzzle(def)
	u, err := p.StateFromMove("U")
	require.NoError(t, err)
	u["CORNERS"].Orientation[0] = 2
	assert.Equal(t, 0, def.Moves["U"]["CORNERS"].Orientation[0])
	assert.NoError(t, Validate(def, def.Moves["U"]))
}

func TestWithoutHistory(t *testing.T) {
	s := NewSession(Cube3x3x3(), WithHistory(false))
	require.NoError(t, s.ApplyMove("R"))
	assert.False(t, s.CanUndo())
	assert.ErrorIs(t, s.Undo(), ErrNothingToUndo)
}

func TestResetIsUndoable(t *testing.T) {
	s := NewSession(Cube3x3x3())
	require.NoError(t, s.ApplyMove("D"))
	s.Reset()
	assert.True(t, s.IsSolved())
	assert.Equal(t, 0, s.MoveCount())

	require.NoError(t, s.Undo())
	assert.False(t, s.IsSolved())
	assert.Equal(t, 1, s.MoveCount())
}

func TestSetState(t *testing.T) {
	def := threeCycleDef()
	s := NewSession(def)

	require.NoError(t, s.SetState(def.Moves["M"]))
	assert.Equal(t, def.Moves["M"], s.State())

	err := s.SetState(Transformation{"pieces": {Permutation: []int{1, 1, 3}, Orientation: []int{0, 0, 0}}})
	assert.ErrorIs(t, err, ErrMalformedTransformation)
	assert.Equal(t, def.Moves["M"], s.State())
}

func TestWithValidation(t *testing.T) {
	def := threeCycleDef()
	def.Moves["bad"] = Transformation{"pieces": {Permutation: []int{1, 1, 2}, Orientation: []int{0, 0, 0}}}

	s := NewSession(def, WithValidation(true))
	err := s.ApplyMove("bad")
	var malformed *MalformedTransformationError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "pieces", malformed.Orbit)
	assert.True(t, s.IsSolved())

	require.NoError(t, s.ApplyMove("M"))
}

func TestMoveCallback(t *testing.T) {
	s := NewSession(Cube3x3x3())

	type call struct {
		name   string
		amount int
	}
	var calls []call
	s.SetMoveCallback(func(name string, amount int) {
		calls = append(calls, call{name, amount})
	})

	require.NoError(t, s.ApplyMove("R"))
	require.NoError(t, s.ApplyScaledMove("U", -1))
	require.Error(t, s.ApplyMove("Q"))

	assert.Equal(t, []call{{"R", 1}, {"U", -1}}, calls)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := NewSession(Cube3x3x3(), WithLogger(logger))
	require.NoError(t, s.ApplyMove("R"))

	assert.Contains(t, buf.String(), "move applied")
	assert.Contains(t, buf.String(), "move=R")
}
