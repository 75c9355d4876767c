package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/notation"
)

func parse(t *testing.T, s string) []notation.Move {
	t.Helper()
	moves, err := notation.ParseSequence(kpuzzle.Cube3x3x3(), s)
	require.NoError(t, err)
	return moves
}

func TestRollingHashWindow(t *testing.T) {
	rh := NewRollingHash(3)
	rh.Roll(1)
	rh.Roll(2)
	assert.False(t, rh.Ready())
	rh.Roll(3)
	assert.True(t, rh.Ready())
	first := rh.Hash()

	rh.Roll(1)
	rh.Roll(2)
	rh.Roll(3)
	assert.Equal(t, []uint32{1, 2, 3}, rh.Window())
	assert.Equal(t, first, rh.Hash())

	fresh := NewRollingHash(3)
	fresh.Roll(2)
	fresh.Roll(3)
	fresh.Roll(1)
	assert.NotEqual(t, first, fresh.Hash())
}

func TestMineNGramsSingleLog(t *testing.T) {
	logs := map[string][]notation.Move{
		"a": parse(t, "R U R' U' R U R' U' F"),
	}

	report := MineNGrams(logs, 2, 4, 3)

	top4 := report.TopNGrams[4]
	require.Len(t, top4, 1)
	assert.Equal(t, "R U R' U'", top4[0].String())
	assert.Equal(t, 2, top4[0].Count)
	assert.Equal(t, []NGramOccurrence{{SnapshotID: "a", StartIndex: 0}, {SnapshotID: "a", StartIndex: 4}}, top4[0].Occurrences)

	// Every 2-gram of the trigger appears twice; ties sort by notation
	top2 := report.TopNGrams[2]
	require.Len(t, top2, 3)
	assert.Equal(t, []string{"R U", "R' U'", "U R'"}, []string{top2[0].String(), top2[1].String(), top2[2].String()})
}

func TestMineNGramsAcrossLogs(t *testing.T) {
	logs := map[string][]notation.Move{
		"a": parse(t, "F R U2"),
		"b": parse(t, "D R U2 B"),
		"c": parse(t, "R U2"),
	}

	report := MineNGrams(logs, 2, 3, 5)

	top2 := report.TopNGrams[2]
	require.Len(t, top2, 1)
	assert.Equal(t, []string{"R", "U2"}, top2[0].Sequence)
	assert.Equal(t, 3, top2[0].Count)
	assert.Equal(t, "a", top2[0].Occurrences[0].SnapshotID)

	_, ok := report.TopNGrams[3]
	assert.False(t, ok, "no 3-gram repeats")
}

func TestMineNGramsShortLogs(t *testing.T) {
	report := MineNGrams(map[string][]notation.Move{"a": parse(t, "R")}, 2, 4, 5)
	assert.Empty(t, report.TopNGrams)

	report = MineNGrams(nil, 1, 2, 5)
	assert.Empty(t, report.TopNGrams)
}

func TestMineNGramsTopK(t *testing.T) {
	logs := map[string][]notation.Move{
		"a": parse(t, "R R R U U F"),
	}
	report := MineNGrams(logs, 1, 1, 1)
	require.Len(t, report.TopNGrams[1], 1)
	assert.Equal(t, "R", report.TopNGrams[1][0].String())
	assert.Equal(t, 3, report.TopNGrams[1][0].Count)
}
