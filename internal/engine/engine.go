package engine

import (
	"log"
	"math/rand"
	"time"

	"github.com/brineforge/ambercore/internal/board"
)

// Player is the capability every move-choosing participant implements: the
// PVS Searcher and the RandomPlayer baseline below. There is one strength
// level, not a Difficulty enum — tuning playing strength is outside the
// core's scope.
type Player interface {
	RequestMove(state board.GameState) board.Action
	Reset()
	SetTimeLimit(ms int)
}

// SearchInfo summarizes one finished search for the OnInfo callback. It is
// reported once per RequestMove, not per iteration, and Depth is left zero.
type SearchInfo struct {
	Depth int
	Nodes uint64
	Time  time.Duration
	PV    []board.Action
}

// SearchPlayer wraps a Searcher as a Player, owning the transposition table
// that backs it.
type SearchPlayer struct {
	searcher *Searcher

	// OnInfo, if set, is invoked after Search returns with a summary of the
	// completed search. Logging-only; never consulted for correctness.
	OnInfo func(SearchInfo)
}

// NewSearchPlayer builds a ready-to-use search-backed player with a fresh
// 2^23-entry transposition table.
func NewSearchPlayer() *SearchPlayer {
	tt := NewTranspositionTable()
	return &SearchPlayer{searcher: NewSearcher(tt)}
}

// RequestMove runs iterative deepening from state and returns the chosen
// action.
func (p *SearchPlayer) RequestMove(state board.GameState) board.Action {
	start := time.Now()
	a := p.searcher.Search(state)
	if p.OnInfo != nil {
		p.OnInfo(SearchInfo{
			Nodes: p.searcher.Nodes(),
			Time:  time.Since(start),
			PV:    p.searcher.GetPV(),
		})
	}
	log.Printf("[search] chose %s (%d nodes, %s)", a, p.searcher.Nodes(), time.Since(start))
	return a
}

// Reset reinitializes the searcher's transposition table and heuristic
// tables for a new match.
func (p *SearchPlayer) Reset() {
	p.searcher.Reset()
}

// SetTimeLimit sets the per-move search budget in milliseconds.
func (p *SearchPlayer) SetTimeLimit(ms int) {
	p.searcher.SetTimeLimitMs(ms)
}

// RandomPlayer is the trivial baseline: it picks uniformly among the legal
// actions at the current state. Useful as an opponent for harness smoke
// tests and as a sanity floor for the search player.
type RandomPlayer struct {
	rng *rand.Rand
}

// NewRandomPlayer builds a RandomPlayer seeded from seed.
func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

// RequestMove picks a uniformly random legal action.
func (p *RandomPlayer) RequestMove(state board.GameState) board.Action {
	var actions board.ActionList
	board.GetLegalActions(&state, &actions)
	if actions.Len() == 0 {
		return board.NoAction
	}
	return actions.Get(p.rng.Intn(actions.Len()))
}

// Reset is a no-op: RandomPlayer carries no per-match state.
func (p *RandomPlayer) Reset() {}

// SetTimeLimit is a no-op: RandomPlayer never searches.
func (p *RandomPlayer) SetTimeLimit(ms int) {}
