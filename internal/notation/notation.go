// Package notation parses and formats move sequences such as "R U2 F'".
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/kpuzzle"
)

// Move is a named move applied Amount times. A negative amount turns the
// other way.
type Move struct {
	Name   string
	Amount int
}

// String returns the move in standard notation: R, R', R2, R2'.
func (m Move) String() string {
	var b strings.Builder
	b.WriteString(m.Name)
	amount := m.Amount
	if amount < 0 {
		amount = -amount
	}
	if amount != 1 {
		b.WriteString(strconv.Itoa(amount))
	}
	if m.Amount < 0 {
		b.WriteByte('\'')
	}
	return b.String()
}

// ParseMove parses a single move token against def.
// A token that is itself a move name is taken literally, so definitions
// with primed or numbered move names still work.
func ParseMove(def *kpuzzle.PuzzleDefinition, s string) (Move, error) {
	s = strings.TrimSpace(s)
	if _, ok := def.Moves[s]; ok {
		return Move{Name: s, Amount: 1}, nil
	}

	name := s
	sign := 1
	if strings.HasSuffix(name, "'") || strings.HasSuffix(name, "`") {
		sign = -1
		name = name[:len(name)-1]
	}

	// Extract repeat count
	end := len(name)
	for end > 0 && name[end-1] >= '0' && name[end-1] <= '9' {
		end--
	}
	amount := 1
	if end < len(name) {
		n, err := strconv.Atoi(name[end:])
		if err != nil {
			return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
		}
		amount = n
		name = name[:end]
	}

	if _, ok := def.Moves[name]; !ok {
		return Move{}, &kpuzzle.UnknownMoveError{Move: s}
	}
	return Move{Name: name, Amount: sign * amount}, nil
}

// ParseSequence parses a whitespace-separated sequence of moves.
func ParseSequence(def *kpuzzle.PuzzleDefinition, s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(def, part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatSequence formats moves as a space-separated string.
func FormatSequence(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}

	return strings.Join(parts, " ")
}

// NormalizeAmount reduces amount modulo order into the range
// (-order/2, order/2]. For a quarter turn: 3 -> -1, -2 -> 2, 4 -> 0.
func NormalizeAmount(amount, order int) int {
	if order <= 0 {
		return amount
	}
	amount = ((amount % order) + order) % order
	if amount > order/2 {
		amount -= order
	}
	return amount
}

// Transformation returns the combined effect of moves.
func Transformation(def *kpuzzle.PuzzleDefinition, moves []Move) (kpuzzle.Transformation, error) {
	t := kpuzzle.IdentityTransformation(def)
	for _, m := range moves {
		move, err := def.Move(m.Name)
		if err != nil {
			return nil, err
		}
		t = kpuzzle.Combine(def, t, kpuzzle.Multiply(def, move, m.Amount))
	}
	return t, nil
}

// Simplify merges adjacent turns of the same move and drops turns that
// cancel out. Amounts are normalized by the order of each move.
func Simplify(def *kpuzzle.PuzzleDefinition, moves []Move) []Move {
	orders := make(map[string]int)
	orderOf := func(name string) int {
		if n, ok := orders[name]; ok {
			return n
		}
		n := 0
		if t, ok := def.Moves[name]; ok {
			n = kpuzzle.Order(def, t)
		}
		orders[name] = n
		return n
	}

	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		amount := m.Amount
		if len(out) > 0 && out[len(out)-1].Name == m.Name {
			amount += out[len(out)-1].Amount
			out = out[:len(out)-1]
		}
		amount = NormalizeAmount(amount, orderOf(m.Name))
		if amount != 0 {
			out = append(out, Move{Name: m.Name, Amount: amount})
		}
	}
	return out
}
