package kpuzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize returns the session state as text: for each orbit in declared
// order, the orbit name, the permutation and the orientation, each on its
// own line with values separated by spaces. There is no trailing newline.
func (s *Session) Serialize() string {
	return SerializeState(s.def, s.state)
}

// SerializeState formats t the same way Session.Serialize does.
func SerializeState(def *PuzzleDefinition, t Transformation) string {
	lines := make([]string, 0, 3*len(def.Orbits))
	for _, oDef := range def.Orbits {
		o := t[oDef.Name]
		lines = append(lines, oDef.Name, joinInts(o.Permutation), joinInts(o.Orientation))
	}
	return strings.Join(lines, "\n")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// ParseState reads text produced by SerializeState back into a
// transformation. Orbits must appear in declared order and the result must
// pass Validate.
func ParseState(def *PuzzleDefinition, text string) (Transformation, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 3*len(def.Orbits) {
		return nil, fmt.Errorf("%w: got %d lines, want %d", ErrMalformedState, len(lines), 3*len(def.Orbits))
	}

	t := make(Transformation, len(def.Orbits))
	for i, oDef := range def.Orbits {
		block := lines[3*i : 3*i+3]
		if name := strings.TrimSpace(block[0]); name != oDef.Name {
			return nil, fmt.Errorf("%w: line %d: got orbit %q, want %q", ErrMalformedState, 3*i+1, name, oDef.Name)
		}
		perm, err := parseInts(block[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedState, 3*i+2, err)
		}
		ori, err := parseInts(block[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedState, 3*i+3, err)
		}
		t[oDef.Name] = OrbitTransformation{Permutation: perm, Orientation: ori}
	}

	if err := Validate(def, t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	return t, nil
}

func parseInts(line string) ([]int, error) {
	fields := strings.Fields(line)
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", f)
		}
		values[i] = v
	}
	return values, nil
}
