package kpuzzle

import "fmt"

// Validate checks that t fits def: one entry per orbit and no others,
// slices of NumPieces length, a permutation of 1..NumPieces and
// orientations within range.
func Validate(def *PuzzleDefinition, t Transformation) error {
	if err := validateShape(def, t); err != nil {
		return err
	}
	for _, oDef := range def.Orbits {
		o := t[oDef.Name]
		seen := make([]bool, oDef.NumPieces)
		for _, p := range o.Permutation {
			if seen[p-1] {
				return &MalformedTransformationError{
					Orbit:  oDef.Name,
					Reason: fmt.Sprintf("permutation value %d appears more than once", p),
				}
			}
			seen[p-1] = true
		}
	}
	return nil
}

// validateShape checks everything Validate does except bijectivity.
// StartPieces only has to pass this check.
func validateShape(def *PuzzleDefinition, t Transformation) error {
	if len(t) != len(def.Orbits) {
		for name := range t {
			if _, ok := def.Orbit(name); !ok {
				return &MalformedTransformationError{Orbit: name, Reason: "orbit is not part of the definition"}
			}
		}
	}
	for _, oDef := range def.Orbits {
		o, ok := t[oDef.Name]
		if !ok {
			return &MalformedTransformationError{Orbit: oDef.Name, Reason: "orbit is missing"}
		}
		if len(o.Permutation) != oDef.NumPieces {
			return &MalformedTransformationError{
				Orbit:  oDef.Name,
				Reason: fmt.Sprintf("permutation has %d entries, want %d", len(o.Permutation), oDef.NumPieces),
			}
		}
		if len(o.Orientation) != oDef.NumPieces {
			return &MalformedTransformationError{
				Orbit:  oDef.Name,
				Reason: fmt.Sprintf("orientation has %d entries, want %d", len(o.Orientation), oDef.NumPieces),
			}
		}
		for idx, p := range o.Permutation {
			if p < 1 || p > oDef.NumPieces {
				return &MalformedTransformationError{
					Orbit:  oDef.Name,
					Reason: fmt.Sprintf("permutation value %d at slot %d is outside 1..%d", p, idx, oDef.NumPieces),
				}
			}
		}
		for idx, v := range o.Orientation {
			if v < 0 || v >= oDef.Orientations {
				return &MalformedTransformationError{
					Orbit:  oDef.Name,
					Reason: fmt.Sprintf("orientation value %d at slot %d is outside 0..%d", v, idx, oDef.Orientations-1),
				}
			}
		}
	}
	return nil
}

// ValidateDefinition checks a whole definition: orbit sizes, unique orbit
// names, the start pieces and every move.
func ValidateDefinition(def *PuzzleDefinition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	if def.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDefinition)
	}
	if len(def.Orbits) == 0 {
		return fmt.Errorf("%w: %s has no orbits", ErrInvalidDefinition, def.Name)
	}

	names := make(map[string]bool, len(def.Orbits))
	for _, o := range def.Orbits {
		if o.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed orbit", ErrInvalidDefinition, def.Name)
		}
		if names[o.Name] {
			return fmt.Errorf("%w: %s declares orbit %q twice", ErrInvalidDefinition, def.Name, o.Name)
		}
		names[o.Name] = true
		if o.NumPieces < 1 || o.Orientations < 1 {
			return fmt.Errorf("%w: orbit %q needs at least one piece and one orientation", ErrInvalidDefinition, o.Name)
		}
	}

	if err := validateShape(def, def.StartPieces); err != nil {
		return fmt.Errorf("%w: start pieces: %w", ErrInvalidDefinition, err)
	}
	for name, move := range def.Moves {
		if err := Validate(def, move); err != nil {
			return fmt.Errorf("%w: move %s: %w", ErrInvalidDefinition, name, err)
		}
	}
	return nil
}
