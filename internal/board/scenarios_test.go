package board

import "testing"

// These tests pin the four concrete scenarios from the external contract
// that aren't already covered by perft or the generic round-trip/integrity
// tests: the empty-state FEN, the two capture/stacking variants, and
// promotion consuming the moved piece.

func TestEmptyStateFEN(t *testing.T) {
	s := Empty()
	want := "0 0 0 0 0 0 0 0 0 0 0"
	if got := s.ToFEN(); got != want {
		t.Errorf("Empty().ToFEN() = %q, want %q", got, want)
	}
}

// TestAmberCaptureFromStackedSquare: a stacked RED cockle captures a BLUE
// gull. The mover is cleared from the board entirely (no piece placed at
// the destination), both stack bits end up clear, and RED's amber count
// goes up by one.
func TestAmberCaptureFromStackedSquare(t *testing.T) {
	from := NewSquare(1, 1)
	to := NewSquare(2, 2)

	var s GameState
	s.Board[Red][Cockle] = SquareBB(from)
	s.Occupied[Red] = SquareBB(from)
	s.Stacked = SquareBB(from)
	s.Board[Blue][Gull] = SquareBB(to)
	s.Occupied[Blue] = SquareBB(to)
	s.Hash = s.RecalculateHash()

	var actions ActionList
	GetLegalActions(&s, &actions)
	a := NewAction(from, to, Cockle, true, true)
	if actions.Find(a) < 0 {
		t.Fatalf("capture %v not found among legal actions", a)
	}

	DoAction(&s, a)

	if s.Board[Blue][Gull]&SquareBB(to) != 0 {
		t.Error("captured gull should be removed from the board")
	}
	if s.Stacked&(SquareBB(from)|SquareBB(to)) != 0 {
		t.Error("both stack bits should be clear after a stack-scoring capture")
	}
	if s.Board[Red][Cockle]&SquareBB(to) != 0 {
		t.Error("mover should not be placed at the destination; it is consumed by the capture")
	}
	if s.Ambers[Red] != 1 {
		t.Errorf("Ambers[Red] = %d, want 1", s.Ambers[Red])
	}
}

// TestCaptureWithoutStackCreatesStack: the same capture, but from a
// non-stacked origin. The mover lands at the destination and that square
// becomes stacked; no amber is awarded.
func TestCaptureWithoutStackCreatesStack(t *testing.T) {
	from := NewSquare(1, 1)
	to := NewSquare(2, 2)

	var s GameState
	s.Board[Red][Cockle] = SquareBB(from)
	s.Occupied[Red] = SquareBB(from)
	s.Board[Blue][Gull] = SquareBB(to)
	s.Occupied[Blue] = SquareBB(to)
	s.Hash = s.RecalculateHash()

	a := NewAction(from, to, Cockle, true, false)
	DoAction(&s, a)

	if s.Stacked&SquareBB(to) == 0 {
		t.Error("the destination should become stacked after a non-stacked capture")
	}
	if s.Board[Red][Cockle]&SquareBB(to) == 0 {
		t.Error("the mover should occupy the destination")
	}
	if s.Board[Blue][Gull]&SquareBB(to) != 0 {
		t.Error("captured gull should be removed from the board")
	}
	if s.Ambers[Red] != 0 {
		t.Errorf("Ambers[Red] = %d, want 0 (unchanged)", s.Ambers[Red])
	}
}

// TestPromotionConsumesPiece: a non-seal RED piece moving onto RED's finish
// line (x=7) is removed from the board, not left sitting on the finish
// square, and increments RED's amber count.
func TestPromotionConsumesPiece(t *testing.T) {
	from := NewSquare(6, 3)
	to := NewSquare(7, 2)

	var s GameState
	s.Board[Red][Cockle] = SquareBB(from)
	s.Occupied[Red] = SquareBB(from)
	s.Hash = s.RecalculateHash()

	a := NewAction(from, to, Cockle, false, true)
	DoAction(&s, a)

	if s.Board[Red][Cockle]&SquareBB(to) != 0 {
		t.Error("the promoted piece should be consumed, not left on the finish square")
	}
	if s.Occupied[Red]&SquareBB(to) != 0 {
		t.Error("occupied[Red] should not carry a bit for the consumed piece")
	}
	if s.Ambers[Red] != 1 {
		t.Errorf("Ambers[Red] = %d, want 1", s.Ambers[Red])
	}
}
