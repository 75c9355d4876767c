package kpuzzle

// CounterState is a quarter turn count.
type CounterState int

// CounterPuzzle counts moves instead of tracking pieces. Every move name
// is worth one turn, so its state is simply an integer under addition.
type CounterPuzzle struct{}

func (CounterPuzzle) StartState() CounterState {
	return 0
}

func (CounterPuzzle) Invert(s CounterState) CounterState {
	return -s
}

func (CounterPuzzle) Combine(s1, s2 CounterState) CounterState {
	return s1 + s2
}

func (c CounterPuzzle) Multiply(s CounterState, amount int) CounterState {
	return RepeatMultiply[CounterState](c, s, amount)
}

func (CounterPuzzle) StateFromMove(moveName string) (CounterState, error) {
	return 1, nil
}

func (CounterPuzzle) Equivalent(s1, s2 CounterState) bool {
	return s1 == s2
}

var _ Puzzle[CounterState] = CounterPuzzle{}
