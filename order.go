package kpuzzle

// Order returns the smallest n >= 1 such that t applied n times is the
// identity.
//
// Each orbit is split into permutation cycles. A cycle of length k returns
// every piece home after k applications, carrying the sum of the cycle's
// twists; the cycle is done once that sum is also a multiple of the
// orientation modulus. The order is the lcm over all cycles.
func Order(def *PuzzleDefinition, t Transformation) int {
	order := 1
	for _, oDef := range def.Orbits {
		o := t[oDef.Name]
		visited := make([]bool, oDef.NumPieces)
		for start := 0; start < oDef.NumPieces; start++ {
			if visited[start] {
				continue
			}
			length := 0
			twist := 0
			for idx := start; !visited[idx]; idx = o.Permutation[idx] - 1 {
				visited[idx] = true
				twist += o.Orientation[idx]
				length++
			}
			period := oDef.Orientations / gcd(twist%oDef.Orientations, oDef.Orientations)
			order = lcm(order, length*period)
		}
	}
	return order
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
