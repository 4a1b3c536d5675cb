package engine

import (
	"github.com/brineforge/ambercore/internal/board"
)

// Ranks above any heuristic score, in descending priority: principal
// variation move, TT-suggested move, killer moves. Everything else is
// ranked by CaptureBonus·isCapture + history/butterfly, which never reaches
// these reserved bands.
const (
	rankPV     = ^uint64(0)
	rankTT     = ^uint64(0) - 1
	rankKiller = ^uint64(0) - 2

	// CaptureBonus separates amber-relevant captures from quiet moves; there
	// is no MVV-LVA table here, because captures in this game are a binary
	// amber/non-amber event rather than a piece-value trade.
	CaptureBonus = 1 << 30

	historyDecayShift = 3 // x /= 8 between root iterations
)

// MoveOrderer layers TT/killer/history priority over a generated action
// list, using this game's binary capture model in place of MVV-LVA.
type MoveOrderer struct {
	killers   [board.MaxSearchDepth][2]board.Action
	history   [2][64][64]int64
	butterfly [2][64][64]int64
}

// NewMoveOrderer builds an orderer with butterfly counts seeded to 1 (so the
// history/butterfly ratio never divides by zero).
func NewMoveOrderer() *MoveOrderer {
	mo := &MoveOrderer{}
	mo.resetButterfly()
	return mo
}

func (mo *MoveOrderer) resetButterfly() {
	for c := range mo.butterfly {
		for i := range mo.butterfly[c] {
			for j := range mo.butterfly[c][i] {
				mo.butterfly[c][i][j] = 1
			}
		}
	}
}

// Clear wipes killers and heuristic tables for a new match.
func (mo *MoveOrderer) Clear() {
	mo.killers = [board.MaxSearchDepth][2]board.Action{}
	mo.history = [2][64][64]int64{}
	mo.resetButterfly()
}

// DecayForIteration ages history and butterfly between root iterations of
// iterative deepening: history /= 8, butterfly /= 8 clamped to >= 1.
func (mo *MoveOrderer) DecayForIteration() {
	for c := range mo.history {
		for i := range mo.history[c] {
			for j := range mo.history[c][i] {
				mo.history[c][i][j] >>= historyDecayShift
				mo.butterfly[c][i][j] >>= historyDecayShift
				if mo.butterfly[c][i][j] < 1 {
					mo.butterfly[c][i][j] = 1
				}
			}
		}
	}
}

func (mo *MoveOrderer) rank(a, pv, tt board.Action, ply int, color board.Color) uint64 {
	if pv != board.NoAction && a == pv {
		return rankPV
	}
	if tt != board.NoAction && a == tt {
		return rankTT
	}
	if a == mo.killers[ply][0] || a == mo.killers[ply][1] {
		return rankKiller
	}

	from, to := a.From(), a.To()
	score := mo.history[color][from][to] / mo.butterfly[color][from][to]
	if a.IsCapture() {
		score += CaptureBonus
	}
	if score < 0 {
		score = 0
	}
	return uint64(score)
}

// ActionOrder is a one-shot iterator over a node's actions, highest
// priority first. It consumes the underlying ActionList via swap-remove, so
// it must not outlive the node that owns that list.
type ActionOrder struct {
	list   *board.ActionList
	scores []uint64
}

// Order scores every action currently in list for the given ply/color, with
// pv and tt as the two moves to rank above killers. Pass board.NoAction for
// either when not available.
func (mo *MoveOrderer) Order(list *board.ActionList, ply int, color board.Color, pv, tt board.Action) *ActionOrder {
	n := list.Len()
	scores := make([]uint64, n)
	for i := 0; i < n; i++ {
		scores[i] = mo.rank(list.Get(i), pv, tt, ply, color)
	}
	return &ActionOrder{list: list, scores: scores}
}

// Next returns the highest-ranked remaining action, or (NoAction, false)
// once exhausted.
func (o *ActionOrder) Next() (board.Action, bool) {
	n := o.list.Len()
	if n == 0 {
		return board.NoAction, false
	}
	best := 0
	for i := 1; i < n; i++ {
		if o.scores[i] > o.scores[best] {
			best = i
		}
	}
	a := o.list.Get(best)
	last := n - 1
	o.scores[best] = o.scores[last]
	o.scores = o.scores[:last]
	o.list.SwapRemove(best)
	return a, true
}

// UpdateKillers records a beta-cutoff move as the new first killer at ply,
// shifting the previous first killer into the second slot.
func (mo *MoveOrderer) UpdateKillers(a board.Action, ply int) {
	if ply >= board.MaxSearchDepth || mo.killers[ply][0] == a {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = a
}

// UpdateHistory bumps the history score for a cutoff move by depthLeft^2.
func (mo *MoveOrderer) UpdateHistory(a board.Action, color board.Color, depthLeft int) {
	mo.history[color][a.From()][a.To()] += int64(depthLeft) * int64(depthLeft)
}

// UpdateButterfly bumps the butterfly score for a searched-but-not-cutoff
// move by depthLeft.
func (mo *MoveOrderer) UpdateButterfly(a board.Action, color board.Color, depthLeft int) {
	mo.butterfly[color][a.From()][a.To()] += int64(depthLeft)
}
