package kpuzzle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	def := threeCycleDef()
	tests := []struct {
		name  string
		t     Transformation
		orbit string
	}{
		{"missing orbit", Transformation{}, "pieces"},
		{"extra orbit", Transformation{
			"pieces": {Permutation: []int{1, 2, 3}, Orientation: []int{0, 0, 0}},
			"extra":  {Permutation: []int{1}, Orientation: []int{0}},
		}, "extra"},
		{"short permutation", Transformation{"pieces": {Permutation: []int{1, 2}, Orientation: []int{0, 0, 0}}}, "pieces"},
		{"long orientation", Transformation{"pieces": {Permutation: []int{1, 2, 3}, Orientation: []int{0, 0, 0, 0}}}, "pieces"},
		{"zero location", Transformation{"pieces": {Permutation: []int{0, 1, 2}, Orientation: []int{0, 0, 0}}}, "pieces"},
		{"location too large", Transformation{"pieces": {Permutation: []int{1, 2, 4}, Orientation: []int{0, 0, 0}}}, "pieces"},
		{"not a bijection", Transformation{"pieces": {Permutation: []int{1, 2, 2}, Orientation: []int{0, 0, 0}}}, "pieces"},
		{"negative orientation", Transformation{"pieces": {Permutation: []int{1, 2, 3}, Orientation: []int{0, -1, 0}}}, "pieces"},
		{"orientation too large", Transformation{"pieces": {Permutation: []int{1, 2, 3}, Orientation: []int{0, 0, 3}}}, "pieces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(def, tt.t)
			var malformed *MalformedTransformationError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tt.orbit, malformed.Orbit)
			assert.ErrorIs(t, err, ErrMalformedTransformation)
		})
	}

	assert.NoError(t, Validate(def, def.Moves["M"]))
}

func TestValidateDefinition(t *testing.T) {
	assert.NoError(t, ValidateDefinition(lookAlikeDef()), "start pieces may repeat identities")

	tests := []struct {
		name   string
		modify func(*PuzzleDefinition)
	}{
		{"no name", func(d *PuzzleDefinition) { d.Name = "" }},
		{"no orbits", func(d *PuzzleDefinition) { d.Orbits = nil }},
		{"unnamed orbit", func(d *PuzzleDefinition) { d.Orbits[0].Name = "" }},
		{"duplicate orbit", func(d *PuzzleDefinition) { d.Orbits = append(d.Orbits, d.Orbits[0]) }},
		{"zero pieces", func(d *PuzzleDefinition) { d.Orbits[0].NumPieces = 0 }},
		{"zero orientations", func(d *PuzzleDefinition) { d.Orbits[0].Orientations = 0 }},
		{"bad start pieces", func(d *PuzzleDefinition) { d.StartPieces = Transformation{} }},
		{"bad move", func(d *PuzzleDefinition) {
			d.Moves["broken"] = Transformation{"pieces": {Permutation: []int{3, 3, 3}, Orientation: []int{0, 0, 0}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := threeCycleDef()
			tt.modify(def)
			assert.ErrorIs(t, ValidateDefinition(def), ErrInvalidDefinition)
		})
	}

	assert.ErrorIs(t, ValidateDefinition(nil), ErrInvalidDefinition)
}

func TestValidateDefinitionWrapsMoveError(t *testing.T) {
	def := threeCycleDef()
	def.Moves["broken"] = Transformation{"pieces": {Permutation: []int{1, 2, 3}, Orientation: []int{0, 0, 5}}}

	err := ValidateDefinition(def)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
	assert.ErrorIs(t, err, ErrMalformedTransformation)
	assert.Contains(t, err.Error(), "broken")
}
