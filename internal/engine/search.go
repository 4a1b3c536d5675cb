package engine

import (
	"sync/atomic"
	"time"

	"github.com/brineforge/ambercore/internal/board"
)

// Search value bounds, wide enough to never collide with a mate score.
const (
	MinValue = -32000
	MaxValue = 32000
)

// pvPlies bounds PVTable; one more than MaxSearchDepth so the terminal
// ply's empty continuation is representable.
const pvPlies = board.MaxSearchDepth + 1

// PVTable stores the principal variation as a per-ply length plus a
// ply-by-ply triangular array of moves.
type PVTable struct {
	length [pvPlies]int
	moves  [pvPlies][pvPlies]board.Action
}

// Searcher performs the single-threaded iterative-deepening PVS described in
// the external contract. It owns its transposition table, move orderer,
// time manager, and working state; none of it is safe for concurrent use by
// more than one Searcher (multithreaded search is out of scope).
type Searcher struct {
	state   board.GameState
	tt      *TranspositionTable
	orderer *MoveOrderer
	timeMan *TimeManager

	actionLists board.ActionListStack

	nodes    uint64
	stopFlag atomic.Bool

	pv PVTable

	// pvLine/pvHashes record the previous iteration's root principal
	// variation together with the state hash at each ply along it, so the
	// next iteration can seed move ordering with the PV move only when the
	// search has actually reached the same position (per-ply hash match),
	// not merely the same ply number.
	pvLine   []board.Action
	pvHashes []uint64
}

// NewSearcher builds a Searcher sharing the given transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
		timeMan: NewTimeManager(),
	}
}

// Stop signals the search to abandon its current iteration.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset reinitializes every per-match table: transposition table,
// killer/history/butterfly heuristics, and node count. Called between
// matches in tournament mode.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
	s.orderer.Clear()
	s.tt.Clear()
	s.pvLine = nil
	s.pvHashes = nil
}

// SetTimeLimitMs sets the per-move search budget in milliseconds.
func (s *Searcher) SetTimeLimitMs(ms int) {
	s.timeMan.SetLimit(time.Duration(ms) * time.Millisecond)
}

// Nodes returns the number of nodes visited by the last Search call.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search runs iterative deepening from root up to MaxSearchDepth, or until
// the time budget expires. It returns the first action of the last fully
// completed iteration's PV, falling back to any legal action if not even
// depth 1 completed in time.
func (s *Searcher) Search(root board.GameState) board.Action {
	s.stopFlag.Store(false)
	s.nodes = 0
	s.timeMan.Start()

	best := board.NoAction

	for depth := 1; depth <= board.MaxSearchDepth; depth++ {
		s.state = root
		s.pvSearch(0, depth, MinValue, MaxValue)

		if s.stopFlag.Load() {
			break
		}

		if s.pv.length[0] > 0 {
			best = s.pv.moves[0][0]
		}
		s.recordRootPV(root)
		s.orderer.DecayForIteration()

		if s.pv.length[0] < depth {
			break // exhausted the tree before reaching full depth
		}
	}

	if best == board.NoAction {
		var actions board.ActionList
		board.GetLegalActions(&root, &actions)
		if actions.Len() > 0 {
			best = actions.Get(0)
		}
	}
	return best
}

// recordRootPV replays the completed iteration's root PV from root, storing
// each ply's pre-move hash so the next iteration can verify it is really on
// the same line before trusting the PV hint.
func (s *Searcher) recordRootPV(root board.GameState) {
	n := s.pv.length[0]
	line := make([]board.Action, n)
	hashes := make([]uint64, n)
	cur := root
	for i := 0; i < n; i++ {
		hashes[i] = cur.Hash
		a := s.pv.moves[0][i]
		line[i] = a
		board.DoAction(&cur, a)
	}
	s.pvLine = line
	s.pvHashes = hashes
}

// pvSeed returns the previous iteration's PV move for ply, or NoAction if
// the current position is not on the recorded PV line at that ply.
func (s *Searcher) pvSeed(ply int) board.Action {
	if ply < len(s.pvHashes) && s.pvHashes[ply] == s.state.Hash {
		return s.pvLine[ply]
	}
	return board.NoAction
}

func colorSign(c board.Color) int {
	if c == board.Red {
		return 1
	}
	return -1
}

// pvSearch is the PVS recursion described in the external contract's search
// section: null-window re-search, mate-distance pruning, TT-seeded and
// killer/history-ordered moves.
func (s *Searcher) pvSearch(ply, depthLeft, alpha, beta int) int {
	if s.nodes&2047 == 0 && s.timeMan.ShouldStop() {
		s.stopFlag.Store(true)
	}
	if s.stopFlag.Load() {
		return 0
	}
	s.nodes++
	s.pv.length[ply] = ply

	color := s.state.CurrentColor()
	sign := colorSign(color)

	if board.IsGameOver(&s.state) {
		return (MateValue + 60 - ply) * sign * board.GameResult(&s.state)
	}

	mateBound := MateValue + 60 - ply - 1
	if lower := -mateBound; lower > alpha {
		alpha = lower
	}
	if mateBound < beta {
		beta = mateBound
	}
	if alpha >= beta {
		return beta
	}

	if depthLeft == 0 || s.stopFlag.Load() {
		return int(StaticEvaluation(&s.state)) * sign
	}

	actions := s.actionLists.At(ply)
	board.GetLegalActions(&s.state, actions)

	if actions.Len() == 0 {
		// Defensive guard: unreachable given the ply ceiling in IsGameOver,
		// preserved for robustness against a future rule change.
		return MateValue
	}

	var ttAction board.Action
	if entry, found := s.tt.Probe(s.state.Hash); found {
		ttAction = entry.Action
	}

	order := s.orderer.Order(actions, ply, color, s.pvSeed(ply), ttAction)

	originalAlpha := alpha
	bestScore := MinValue
	bestAction := board.NoAction
	first := true

	for {
		a, ok := order.Next()
		if !ok {
			break
		}

		board.DoAction(&s.state, a)

		var score int
		if first {
			score = -s.pvSearch(ply+1, depthLeft-1, -beta, -alpha)
			first = false
		} else {
			score = -s.pvSearch(ply+1, depthLeft-1, -alpha-1, -alpha)
			if score > alpha && score < beta {
				score = -s.pvSearch(ply+1, depthLeft-1, -beta, -alpha)
			}
		}

		board.UndoAction(&s.state, a)

		if s.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestAction = a
			if score > alpha {
				alpha = score
				s.pv.moves[ply][ply] = a
				for j := ply + 1; j < s.pv.length[ply+1]; j++ {
					s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
				}
				s.pv.length[ply] = s.pv.length[ply+1]
			}
		}

		if alpha >= beta {
			s.orderer.UpdateKillers(a, ply)
			s.orderer.UpdateHistory(a, color, depthLeft)
			break
		}
		s.orderer.UpdateButterfly(a, color, depthLeft)
	}

	if !s.stopFlag.Load() {
		s.tt.Store(s.state.Hash, bestScore, bestAction, depthLeft, bestScore <= originalAlpha, alpha >= beta)
	}

	return alpha
}

// GetPV returns the root principal variation currently held in the PV
// table. After a Search that stopped on its time limit, this is the
// interrupted iteration's line (possibly empty), not the last completed one.
func (s *Searcher) GetPV() []board.Action {
	pv := make([]board.Action, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])
	return pv
}
