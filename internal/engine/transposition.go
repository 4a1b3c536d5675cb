package engine

import (
	"github.com/brineforge/ambercore/internal/board"
)

// ttSize is fixed at 2^23 entries; being a power of two lets probing use a
// mask instead of a modulo.
const ttSize = 1 << 23
const ttMask = ttSize - 1

// ttEmptyDepth marks an unused slot.
const ttEmptyDepth = 0xFF

// TTEntry is one transposition table slot.
type TTEntry struct {
	Hash   uint64
	Value  int16
	Action board.Action
	Depth  uint8
	Alpha  bool // best <= alpha at store time (upper bound)
	Beta   bool // alpha >= beta at store time (lower bound)
}

// TranspositionTable is a fixed 2^23-entry depth-preferred table. Its only
// use in search is to seed move ordering with the stored best move; score-
// based cutoffs are deliberately never taken from it (see Probe).
type TranspositionTable struct {
	entries []TTEntry
}

// NewTranspositionTable allocates a fresh, empty table.
func NewTranspositionTable() *TranspositionTable {
	tt := &TranspositionTable{entries: make([]TTEntry, ttSize)}
	tt.Clear()
	return tt
}

// Clear resets every slot to empty.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{Depth: ttEmptyDepth}
	}
}

// Probe looks up hash. The returned entry's Value is informational only —
// callers must not use it as a cutoff bound; this table seeds move ordering
// and nothing else, per the search design.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	e := tt.entries[hash&ttMask]
	if e.Depth == ttEmptyDepth || e.Hash != hash {
		return TTEntry{}, false
	}
	return e, true
}

// Store inserts an entry if the slot is empty or depth is at least as deep
// as what is already stored there.
func (tt *TranspositionTable) Store(hash uint64, value int, action board.Action, depth int, alpha, beta bool) {
	idx := hash & ttMask
	slot := &tt.entries[idx]
	if slot.Depth != ttEmptyDepth && uint8(depth) < slot.Depth {
		return
	}
	slot.Hash = hash
	slot.Value = int16(value)
	slot.Action = action
	slot.Depth = uint8(depth)
	slot.Alpha = alpha
	slot.Beta = beta
}
