package kpuzzle

// OrbitTransformation is the state of one orbit.
//
// Permutation[slot] is the 1-based location the piece now in slot came
// from. Orientation[slot] is that piece's twist, in [0, Orientations).
type OrbitTransformation struct {
	Permutation []int `json:"permutation" yaml:"permutation"`
	Orientation []int `json:"orientation" yaml:"orientation"`
}

// Transformation maps an orbit name to that orbit's state. It is a value:
// none of the functions in this package modify a Transformation passed in.
type Transformation map[string]OrbitTransformation

// Clone returns a deep copy of t.
func Clone(t Transformation) Transformation {
	if t == nil {
		return nil
	}
	out := make(Transformation, len(t))
	for name, o := range t {
		out[name] = OrbitTransformation{
			Permutation: append([]int(nil), o.Permutation...),
			Orientation: append([]int(nil), o.Orientation...),
		}
	}
	return out
}

// Combine returns the transformation for applying t1 and then t2.
func Combine(def *PuzzleDefinition, t1, t2 Transformation) Transformation {
	out := make(Transformation, len(def.Orbits))
	for _, oDef := range def.Orbits {
		o1 := t1[oDef.Name]
		o2 := t2[oDef.Name]

		newPerm := make([]int, oDef.NumPieces)
		newOri := make([]int, oDef.NumPieces)
		for idx := 0; idx < oDef.NumPieces; idx++ {
			// Locations are 1-based, indexes are not
			prevIdx := o2.Permutation[idx] - 1
			newPerm[idx] = o1.Permutation[prevIdx]
			newOri[idx] = (o1.Orientation[prevIdx] + o2.Orientation[idx]) % oDef.Orientations
		}
		out[oDef.Name] = OrbitTransformation{Permutation: newPerm, Orientation: newOri}
	}
	return out
}

// Invert returns the group inverse of t.
func Invert(def *PuzzleDefinition, t Transformation) Transformation {
	out := make(Transformation, len(def.Orbits))
	for _, oDef := range def.Orbits {
		o := t[oDef.Name]

		newPerm := make([]int, oDef.NumPieces)
		newOri := make([]int, oDef.NumPieces)
		for idx := 0; idx < oDef.NumPieces; idx++ {
			fromIdx := o.Permutation[idx] - 1
			newPerm[fromIdx] = idx + 1
			newOri[fromIdx] = (oDef.Orientations - o.Orientation[idx]) % oDef.Orientations
		}
		out[oDef.Name] = OrbitTransformation{Permutation: newPerm, Orientation: newOri}
	}
	return out
}

// IdentityTransformation returns the neutral element for def.
// Permutation values are 1-based like every other transformation.
func IdentityTransformation(def *PuzzleDefinition) Transformation {
	out := make(Transformation, len(def.Orbits))
	for _, oDef := range def.Orbits {
		perm := make([]int, oDef.NumPieces)
		ori := make([]int, oDef.NumPieces)
		for i := range perm {
			perm[i] = i + 1
		}
		out[oDef.Name] = OrbitTransformation{Permutation: perm, Orientation: ori}
	}
	return out
}

// Multiply returns t composed with itself amount times. Negative amounts
// use the inverse. It needs O(log |amount|) compositions.
func Multiply(def *PuzzleDefinition, t Transformation, amount int) Transformation {
	switch {
	case amount < 0:
		return Multiply(def, Invert(def, t), -amount)
	case amount == 0:
		return IdentityTransformation(def)
	case amount == 1:
		return t
	}

	half := Multiply(def, t, amount/2)
	twice := Combine(def, half, half)
	if amount%2 == 0 {
		return twice
	}
	return Combine(def, twice, t)
}

// EquivalentTransformations reports whether t1 and t2 are identical in
// every orbit. Pieces that merely look alike are still told apart.
func EquivalentTransformations(def *PuzzleDefinition, t1, t2 Transformation) bool {
	for _, oDef := range def.Orbits {
		o1 := t1[oDef.Name]
		o2 := t2[oDef.Name]
		for idx := 0; idx < oDef.NumPieces; idx++ {
			if o1.Orientation[idx] != o2.Orientation[idx] {
				return false
			}
			if o1.Permutation[idx] != o2.Permutation[idx] {
				return false
			}
		}
	}
	return true
}

// EquivalentStates reports whether t1 and t2 leave the puzzle looking the
// same. Both are applied to the definition's start pieces first, so pieces
// sharing an identity in StartPieces are interchangeable.
func EquivalentStates(def *PuzzleDefinition, t1, t2 Transformation) bool {
	return EquivalentTransformations(
		def,
		Combine(def, def.StartPieces, t1),
		Combine(def, def.StartPieces, t2),
	)
}
