package kpuzzle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{Name2x2x2, Name3x3x3}, r.Names())

	def, err := r.Get(Name3x3x3)
	require.NoError(t, err)
	assert.Equal(t, []string{"EDGES", "CORNERS"}, def.OrbitNames())
}

func TestRegistryMissingDefinition(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("megaminx")

	var missing *MissingDefinitionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "megaminx", missing.Name)
	assert.ErrorIs(t, err, ErrMissingDefinition)

	_, err = r.NewSession("megaminx")
	assert.ErrorIs(t, err, ErrMissingDefinition)
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(threeCycleDef()))
	assert.ErrorIs(t, r.Register(threeCycleDef()), ErrDuplicateDefinition)

	bad := threeCycleDef()
	bad.Name = "bad"
	bad.Orbits[0].NumPieces = 0
	assert.ErrorIs(t, r.Register(bad), ErrInvalidDefinition)

	assert.Equal(t, []string{"cycle"}, r.Names())
}

func TestRegistrySessionsShareDefinition(t *testing.T) {
	r := DefaultRegistry()
	a, err := r.NewSession(Name2x2x2)
	require.NoError(t, err)
	b, err := r.NewSession(Name2x2x2)
	require.NoError(t, err)

	require.NoError(t, a.ApplyMove("R"))
	assert.Same(t, a.Definition(), b.Definition())
	assert.True(t, b.IsSolved())
}

func TestDefinitionLookups(t *testing.T) {
	def := Cube3x3x3()

	o, ok := def.Orbit("CORNERS")
	require.True(t, ok)
	assert.Equal(t, 8, o.NumPieces)
	assert.Equal(t, 3, o.Orientations)

	_, ok = def.Orbit("CENTERS")
	assert.False(t, ok)

	_, err := def.Move("Q")
	assert.ErrorIs(t, err, ErrUnknownMove)
}
