package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/brineforge/ambercore/internal/board"
)

func TestSearchBasicReturnsLegalMove(t *testing.T) {
	state := board.Random(rand.New(rand.NewSource(1)))
	player := NewSearchPlayer()
	player.SetTimeLimit(50)

	a := player.RequestMove(state)
	if a == board.NoAction {
		t.Fatal("RequestMove returned NoAction for a non-terminal starting position")
	}

	var legal board.ActionList
	board.GetLegalActions(&state, &legal)
	if legal.Find(a) < 0 {
		t.Errorf("RequestMove returned %v, which is not in the legal action list", a)
	}
}

func TestSearchRespectsTimeLimit(t *testing.T) {
	state := board.Random(rand.New(rand.NewSource(2)))
	player := NewSearchPlayer()
	player.SetTimeLimit(100)

	start := time.Now()
	player.RequestMove(state)
	elapsed := time.Since(start)

	// Generous margin: the stop check is cooperative (every 2048 nodes), not
	// preemptive, so a single slow iteration can overshoot slightly.
	if elapsed > 2*time.Second {
		t.Errorf("search took %s, want well under 2s for a 100ms budget", elapsed)
	}
}

func TestSearchResetClearsState(t *testing.T) {
	state := board.Random(rand.New(rand.NewSource(3)))
	player := NewSearchPlayer()
	player.SetTimeLimit(50)
	player.RequestMove(state)

	if player.searcher.Nodes() == 0 {
		t.Fatal("expected the first search to visit at least one node")
	}

	player.Reset()
	if player.searcher.Nodes() != 0 {
		t.Errorf("Reset should zero the node counter, got %d", player.searcher.Nodes())
	}
	if _, found := player.searcher.tt.Probe(state.Hash); found {
		t.Error("Reset should clear the transposition table")
	}
}

func TestRandomPlayerReturnsLegalMove(t *testing.T) {
	state := board.Random(rand.New(rand.NewSource(4)))
	player := NewRandomPlayer(5)

	a := player.RequestMove(state)
	var legal board.ActionList
	board.GetLegalActions(&state, &legal)
	if legal.Find(a) < 0 {
		t.Errorf("RandomPlayer returned %v, which is not legal", a)
	}
}

func TestTranspositionStoreProbe(t *testing.T) {
	tt := NewTranspositionTable()
	state := board.Random(rand.New(rand.NewSource(6)))

	if _, found := tt.Probe(state.Hash); found {
		t.Fatal("expected a miss on an empty table")
	}

	var actions board.ActionList
	board.GetLegalActions(&state, &actions)
	a := actions.Get(0)

	tt.Store(state.Hash, 42, a, 5, false, true)
	entry, found := tt.Probe(state.Hash)
	if !found {
		t.Fatal("expected a hit after Store")
	}
	if entry.Action != a || entry.Value != 42 || entry.Depth != 5 {
		t.Errorf("unexpected entry contents: %+v", entry)
	}

	// A shallower store must not overwrite a deeper entry.
	tt.Store(state.Hash, 7, a, 2, false, false)
	entry, _ = tt.Probe(state.Hash)
	if entry.Depth != 5 {
		t.Errorf("shallower store overwrote deeper entry: depth = %d", entry.Depth)
	}
}

func TestMoveOrdererRanksPVAboveEverything(t *testing.T) {
	state := board.Random(rand.New(rand.NewSource(8)))
	var actions board.ActionList
	board.GetLegalActions(&state, &actions)
	if actions.Len() < 2 {
		t.Skip("need at least two legal actions for this check")
	}

	pv := actions.Get(1)
	mo := NewMoveOrderer()
	order := mo.Order(&actions, 0, state.CurrentColor(), pv, board.NoAction)

	first, ok := order.Next()
	if !ok || first != pv {
		t.Errorf("expected the PV action %v first, got %v", pv, first)
	}
}

func TestStaticEvaluationRewardsAmbers(t *testing.T) {
	state := board.Random(rand.New(rand.NewSource(9)))
	baseline := StaticEvaluation(&state)

	state.Ambers[board.Red]++
	withAmber := StaticEvaluation(&state)

	if withAmber <= baseline {
		t.Errorf("an extra RED amber should raise the RED-perspective score: got %d, want > %d", withAmber, baseline)
	}
}

// TestMateDistancePruningBoundsForcedWin pins the contract's mate-distance
// scenario: BLUE is one stacked capture away from its second amber, which
// locks in the win as soon as it becomes RED's turn again. Searching one
// ply deep is enough to see the whole forced line, so the PV is exactly
// that one move and the returned value respects the mate-distance bound.
func TestMateDistancePruningBoundsForcedWin(t *testing.T) {
	from := board.NewSquare(6, 1)
	to := board.NewSquare(5, 2)

	var s board.GameState
	s.Ply = 1 // BLUE to move
	s.Board[board.Blue][board.Cockle] = board.SquareBB(from)
	s.Occupied[board.Blue] = board.SquareBB(from)
	s.Stacked = board.SquareBB(from)
	s.Ambers[board.Blue] = 1
	s.Board[board.Red][board.Gull] = board.SquareBB(to)
	s.Occupied[board.Red] = board.SquareBB(to)
	s.Hash = s.RecalculateHash()

	searcher := NewSearcher(NewTranspositionTable())
	searcher.state = s
	searcher.timeMan.Start()

	const depth = 1
	value := searcher.pvSearch(0, depth, MinValue, MaxValue)

	if want := MateValue + 59 - depth; value < want {
		t.Errorf("forced-win value %d below the mate-distance bound %d", value, want)
	}

	pv := searcher.GetPV()
	if len(pv) != 1 {
		t.Fatalf("PV length = %d, want 1", len(pv))
	}
	if pv[0].From() != from || pv[0].To() != to {
		t.Errorf("PV move = %v, want the amber-winning capture %s->%s", pv[0], from, to)
	}
}

func TestSearchDoesNotMutateCallerState(t *testing.T) {
	state := board.Random(rand.New(rand.NewSource(10)))
	before := state

	player := NewSearchPlayer()
	player.SetTimeLimit(50)
	player.RequestMove(state)

	if state != before {
		t.Error("Search must not mutate the caller's state")
	}
}
