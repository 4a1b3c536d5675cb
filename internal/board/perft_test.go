package board

import (
	"math/rand"
	"testing"
)

// perft counts leaf nodes at depth, driving GetLegalActions/DoAction/UndoAction
// exactly as search does.
func perft(s *GameState, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var actions ActionList
	GetLegalActions(s, &actions)
	if depth == 1 {
		return int64(actions.Len())
	}
	var nodes int64
	for i := 0; i < actions.Len(); i++ {
		a := actions.Get(i)
		DoAction(s, a)
		nodes += perft(s, depth-1)
		UndoAction(s, a)
	}
	return nodes
}

// startingFEN is the fixed starting position named in the external contract.
const startingFEN = "29 281474976710657 1099511628032 8589935104 0 35184372088832 0 549755813888 2147483776 0 2"

// TestPerftDepth6 pins move generation and apply/undo together against the
// literal oracle count from the fixed starting position: 4,961,202 leaves
// at depth 6.
func TestPerftDepth6(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping depth-6 perft in -short mode")
	}
	s, err := FromFEN(startingFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	const want = 4961202
	if got := perft(&s, 6); got != want {
		t.Errorf("perft(6) = %d, want %d", got, want)
	}
}

// TestPerftSelfConsistency checks that perft's depth-(d+1) count always equals
// the sum, over every depth-1 move, of perft at depth d from the resulting
// child — a structural property perft must satisfy independent of the
// depth-6 oracle count, and cheap enough to run unconditionally.
func TestPerftSelfConsistency(t *testing.T) {
	s, err := FromFEN(startingFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}

	for depth := 1; depth <= 3; depth++ {
		var actions ActionList
		GetLegalActions(&s, &actions)
		var sum int64
		for i := 0; i < actions.Len(); i++ {
			a := actions.Get(i)
			DoAction(&s, a)
			sum += perft(&s, depth-1)
			UndoAction(&s, a)
		}
		whole := perft(&s, depth)
		if sum != whole {
			t.Errorf("depth %d: sum over children = %d, perft(depth) = %d", depth, sum, whole)
		}
	}
}

// TestPerftBounded confirms perft produces a positive, finite count within a
// few plies and never overruns MaxActions.
func TestPerftBounded(t *testing.T) {
	s, err := FromFEN(startingFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	for depth := 1; depth <= 3; depth++ {
		got := perft(&s, depth)
		if got <= 0 {
			t.Errorf("perft(%d) = %d, want > 0", depth, got)
		}
	}
}

// TestDoUndoIsIdentity drives perft to depth 4 from several random starting
// deals and additionally asserts that DoAction followed by UndoAction
// restores every field of GameState exactly, including the incrementally
// maintained Zobrist hash. The Undo array is the one exception: DoAction
// leaves its record in Undo[ply], so it is copied back before comparing.
func TestDoUndoIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		s := Random(rng)
		walkAndCheck(t, &s, 4)
	}
}

func walkAndCheck(t *testing.T, s *GameState, depth int) {
	t.Helper()
	if depth == 0 || IsGameOver(s) {
		return
	}
	var actions ActionList
	GetLegalActions(s, &actions)
	for i := 0; i < actions.Len(); i++ {
		a := actions.Get(i)
		before := *s
		DoAction(s, a)
		if err := s.CheckIntegrity(); err != nil {
			t.Fatalf("integrity after DoAction(%v): %v", a, err)
		}
		UndoAction(s, a)
		if err := s.CheckIntegrity(); err != nil {
			t.Fatalf("integrity after UndoAction(%v): %v", a, err)
		}
		after := *s
		after.Undo = before.Undo
		if after != before {
			t.Fatalf("UndoAction(%v) did not restore state exactly", a)
		}
		if recomputed := s.RecalculateHash(); recomputed != s.Hash {
			t.Fatalf("hash drift after undo of %v: got %x want %x", a, s.Hash, recomputed)
		}
	}
	if actions.Len() > 0 {
		a := actions.Get(0)
		DoAction(s, a)
		walkAndCheck(t, s, depth-1)
		UndoAction(s, a)
	}
}

// TestFENRoundTrip checks FromFEN(ToFEN(s)) == s for a handful of reachable
// states, including the fixed starting position from the external contract.
func TestFENRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	states := []GameState{}
	if s, err := FromFEN(startingFEN); err == nil {
		states = append(states, s)
	} else {
		t.Fatalf("FromFEN(startingFEN): %v", err)
	}
	for i := 0; i < 5; i++ {
		states = append(states, Random(rng))
	}

	for _, s := range states {
		got, err := FromFEN(s.ToFEN())
		if err != nil {
			t.Fatalf("FromFEN(ToFEN(s)): %v", err)
		}
		if got != s {
			t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", s, got)
		}
	}
}
