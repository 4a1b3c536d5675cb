// Package engine implements the iterative-deepening search and static
// evaluation for the core rules engine in internal/board.
package engine

import (
	"github.com/brineforge/ambercore/internal/board"
)

// MateValue is the magnitude returned for a detected forced win: a "won
// position" score, distinct from any score a non-terminal evaluation could
// ever reach.
const MateValue = 31000

// Evaluation weights, grouped by concern rather than scattered as inline
// magic numbers.
const (
	AmberWeight          = 100.0
	StackedOwnWeight     = 20.0
	AmberThreatWeight    = 20.0
	ReachableFieldWeight = 1.0
	SideToMoveBonus      = 3.0
)

// ReachableFields aggregates, for one color, the union of movement targets
// per piece type, the union of targets reachable from a stacked piece of
// that type, and the two ORs across all piece types.
type ReachableFields struct {
	PerPiece        [4]board.Bitboard
	PerPieceStacked [4]board.Bitboard
	All             board.Bitboard
	AllStacked      board.Bitboard
}

// computeReachableFields walks every piece of c and unions its movement
// pattern (ignoring legality of capture/promotion, matching §4.6's
// evaluation-only "reachable fields" definition rather than GetLegalActions).
func computeReachableFields(s *board.GameState, c board.Color) ReachableFields {
	var rf ReachableFields
	occSelf := s.Occupied[c]

	for pt := board.Cockle; pt < board.NoPieceType; pt++ {
		origins := s.Board[c][pt]
		var reach board.Bitboard
		origins.ForEach(func(sq board.Square) {
			reach |= board.Destinations(pt, c, sq, occSelf)
		})
		rf.PerPiece[pt] = reach
		rf.All |= reach

		stackedOrigins := origins & s.Stacked
		var stackedReach board.Bitboard
		stackedOrigins.ForEach(func(sq board.Square) {
			stackedReach |= board.Destinations(pt, c, sq, occSelf)
		})
		rf.PerPieceStacked[pt] = stackedReach
		rf.AllStacked |= stackedReach
	}
	return rf
}

// Captures is the pair of amber-yielding capture aggregates derived from a
// color's ReachableFields against the opponent's occupancy.
type Captures struct {
	StackCaptures board.Bitboard // all & oppOccupied & stacked: capturing an opposing stack
	CapturesStack board.Bitboard // allStacked & oppOccupied: a stacked piece capturing
}

func computeCaptures(rf ReachableFields, oppOccupied, stacked board.Bitboard) Captures {
	return Captures{
		StackCaptures: rf.All & oppOccupied & stacked,
		CapturesStack: rf.AllStacked & oppOccupied,
	}
}

// Any reports whether this aggregate holds at least one amber-yielding
// target square.
func (c Captures) Any() bool {
	return c.StackCaptures != 0 || c.CapturesStack != 0
}

// count returns the number of distinct amber-yielding target squares.
func (c Captures) count() int {
	return (c.StackCaptures | c.CapturesStack).PopCount()
}

// StaticEvaluation scores state from RED's perspective: positive favors
// RED, negative favors BLUE. Search applies colorSign to convert this into
// the side-to-move's perspective.
func StaticEvaluation(s *board.GameState) int16 {
	stm := s.CurrentColor()
	opp := stm.Other()

	redRF := computeReachableFields(s, board.Red)
	blueRF := computeReachableFields(s, board.Blue)

	redCaptures := computeCaptures(redRF, s.Occupied[board.Blue], s.Stacked)
	blueCaptures := computeCaptures(blueRF, s.Occupied[board.Red], s.Stacked)

	stmRF, oppRF := redRF, blueRF
	stmCaptures, oppCaptures := redCaptures, blueCaptures
	if stm == board.Blue {
		stmRF, oppRF = blueRF, redRF
		stmCaptures, oppCaptures = blueCaptures, redCaptures
	}

	if v, ok := immediateMate(s, stm, opp, stmRF, oppRF, stmCaptures, oppCaptures); ok {
		return v
	}

	sum := AmberWeight*float64(s.Ambers[board.Red]) - AmberWeight*float64(s.Ambers[board.Blue])
	sum += StackedOwnWeight * float64((s.Stacked & s.Occupied[board.Red]).PopCount())
	sum -= StackedOwnWeight * float64((s.Stacked & s.Occupied[board.Blue]).PopCount())
	sum += AmberThreatWeight * float64(redCaptures.count())
	sum -= AmberThreatWeight * float64(blueCaptures.count())

	for pt := board.Cockle; pt < board.NoPieceType; pt++ {
		sum += ReachableFieldWeight * float64(redRF.PerPiece[pt].PopCount())
		sum -= ReachableFieldWeight * float64(blueRF.PerPiece[pt].PopCount())
	}

	if stm == board.Red {
		sum += SideToMoveBonus
	} else {
		sum -= SideToMoveBonus
	}

	return int16(sum + sign(sum)*0.5) // round to nearest, ties away from zero
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// canPromoteThisMove reports whether a non-seal piece of c can reach c's
// finish line from its current reachable fields.
func canPromoteThisMove(rf ReachableFields, c board.Color) bool {
	finish := board.Finish(c)
	for pt := board.Cockle; pt < board.NoPieceType; pt++ {
		if pt == board.Seal {
			continue
		}
		if rf.PerPiece[pt]&finish != 0 {
			return true
		}
	}
	return false
}

// immediateMate implements the §4.6 one-ply forced-win override. The
// opponent-threat branch requires, in addition to two independent target
// squares, that stm cannot already preempt both: either stm has no ambers
// in progress yet, or stm has no amber-capture of its own this ply.
// Verifying that no single stm reply defends both threatened squares would
// require a one-ply search, which this static evaluator deliberately does
// not perform (that is the search layer's job, not eval's); the two
// conjuncts above are exactly what the contract names as computable without
// one.
func immediateMate(s *board.GameState, stm, opp board.Color, stmRF, oppRF ReachableFields, stmCaptures, oppCaptures Captures) (int16, bool) {
	matingSign := func(c board.Color) int16 {
		if c == board.Red {
			return MateValue
		}
		return -MateValue
	}

	if s.Ambers[stm] == 1 && (stmCaptures.Any() || canPromoteThisMove(stmRF, stm)) {
		return matingSign(stm), true
	}

	if s.Ambers[opp] == 1 && oppCaptures.count() >= 2 && (s.Ambers[stm] == 0 || !stmCaptures.Any()) {
		return matingSign(opp), true
	}

	return 0, false
}
