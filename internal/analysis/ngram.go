// Package analysis mines saved move logs for repeated move sequences.
package analysis

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/kpuzzle/internal/notation"
)

// maxOccurrences caps the sample occurrences kept per n-gram.
const maxOccurrences = 10

// NGram represents a repeated move sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []string          `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// String returns the sequence in move notation.
func (ng NGram) String() string {
	return strings.Join(ng.Sequence, " ")
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	SnapshotID string `json:"snapshot_id,omitempty"`
	StartIndex int    `json:"start_index"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

// RollingHash implements a Rabin-Karp rolling hash over token windows.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint32
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   1_000_003,
		n:      n,
		window: make([]uint32, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint32) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint32 {
	return append([]uint32(nil), rh.window...)
}

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// vocabulary interns move strings as tokens.
type vocabulary struct {
	ids   map[string]uint32
	moves []string
}

func (v *vocabulary) token(move string) uint32 {
	if id, ok := v.ids[move]; ok {
		return id
	}
	id := uint32(len(v.moves)) + 1
	v.ids[move] = id
	v.moves = append(v.moves, move)
	return id
}

func (v *vocabulary) move(token uint32) string {
	return v.moves[token-1]
}

type ngramEntry struct {
	tokens      []uint32
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the topK most frequent n-grams for each n in
// [minN, maxN] across the given move logs, keyed by snapshot id.
// Only sequences seen at least twice are reported. Ties are broken by
// notation so reports are stable.
func MineNGrams(logs map[string][]notation.Move, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}
	if minN < 1 {
		minN = 1
	}

	ids := make([]string, 0, len(logs))
	for id := range logs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	vocab := &vocabulary{ids: make(map[string]uint32)}
	tokens := make(map[string][]uint32, len(logs))
	for _, id := range ids {
		toks := make([]uint32, len(logs[id]))
		for i, m := range logs[id] {
			toks[i] = vocab.token(m.String())
		}
		tokens[id] = toks
	}

	for n := minN; n <= maxN; n++ {
		if ngrams := mineNGramsForN(ids, tokens, vocab, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

// mineNGramsForN mines n-grams of a specific length.
func mineNGramsForN(ids []string, tokens map[string][]uint32, vocab *vocabulary, n, topK int) []NGram {
	counts := make(map[uint64][]*ngramEntry)

	for _, id := range ids {
		rh := NewRollingHash(n)
		for i, tok := range tokens[id] {
			rh.Roll(tok)
			if !rh.Ready() {
				continue
			}

			occ := NGramOccurrence{SnapshotID: id, StartIndex: i - n + 1}
			window := rh.Window()
			entry := findEntry(counts[rh.Hash()], window)
			if entry == nil {
				entry = &ngramEntry{tokens: window}
				counts[rh.Hash()] = append(counts[rh.Hash()], entry)
			}
			entry.count++
			if len(entry.occurrences) < maxOccurrences {
				entry.occurrences = append(entry.occurrences, occ)
			}
		}
	}

	var result []NGram
	for _, bucket := range counts {
		for _, entry := range bucket {
			if entry.count < 2 {
				continue
			}
			sequence := make([]string, len(entry.tokens))
			for j, tok := range entry.tokens {
				sequence[j] = vocab.move(tok)
			}
			result = append(result, NGram{
				N:           n,
				Sequence:    sequence,
				Count:       entry.count,
				Occurrences: entry.occurrences,
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].String() < result[j].String()
	})

	if topK > 0 && len(result) > topK {
		result = result[:topK]
	}
	return result
}

// findEntry returns the entry in bucket with the same tokens, guarding
// against hash collisions.
func findEntry(bucket []*ngramEntry, window []uint32) *ngramEntry {
	for _, entry := range bucket {
		if tokensEqual(entry.tokens, window) {
			return entry
		}
	}
	return nil
}

func tokensEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
