package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ToFEN encodes the state as a FEN-like line: ply, RED's four piece
// bitboards (cockle, gull, starfish, seal), BLUE's four piece bitboards,
// the stacked bitboard, then a packed amber byte (ambers[Red] | ambers[Blue]<<4).
func (s *GameState) ToFEN() string {
	amberByte := uint64(s.Ambers[Red]) | uint64(s.Ambers[Blue])<<4
	return fmt.Sprintf("%d %d %d %d %d %d %d %d %d %d %d",
		s.Ply,
		uint64(s.Board[Red][Cockle]), uint64(s.Board[Red][Gull]), uint64(s.Board[Red][Starfish]), uint64(s.Board[Red][Seal]),
		uint64(s.Board[Blue][Cockle]), uint64(s.Board[Blue][Gull]), uint64(s.Board[Blue][Starfish]), uint64(s.Board[Blue][Seal]),
		uint64(s.Stacked),
		amberByte,
	)
}

// FromFEN decodes a line produced by ToFEN. Like the package's other
// parsers, it returns an error rather than panicking, so callers at the
// trust boundary (the test-mode REPL) can choose how to fail.
func FromFEN(fen string) (GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) != 11 {
		return GameState{}, fmt.Errorf("fen: expected 11 fields, got %d", len(fields))
	}

	values := make([]uint64, 11)
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return GameState{}, fmt.Errorf("fen: field %d (%q): %w", i, f, err)
		}
		values[i] = v
	}

	var s GameState
	s.Ply = int(values[0])
	s.Board[Red][Cockle] = Bitboard(values[1])
	s.Board[Red][Gull] = Bitboard(values[2])
	s.Board[Red][Starfish] = Bitboard(values[3])
	s.Board[Red][Seal] = Bitboard(values[4])
	s.Board[Blue][Cockle] = Bitboard(values[5])
	s.Board[Blue][Gull] = Bitboard(values[6])
	s.Board[Blue][Starfish] = Bitboard(values[7])
	s.Board[Blue][Seal] = Bitboard(values[8])
	s.Stacked = Bitboard(values[9])
	amberByte := values[10]
	s.Ambers[Red] = uint8(amberByte & 0xF)
	s.Ambers[Blue] = uint8((amberByte >> 4) & 0xF)

	for c := Red; c <= Blue; c++ {
		var union Bitboard
		for pt := Cockle; pt < NoPieceType; pt++ {
			union |= s.Board[c][pt]
		}
		s.Occupied[c] = union
	}
	if s.Occupied[Red]&s.Occupied[Blue] != 0 {
		return GameState{}, fmt.Errorf("fen: red and blue occupy the same square")
	}

	s.Hash = s.RecalculateHash()
	return s, nil
}
