package board

import (
	"math/bits"
)

// Bitboard represents a set of squares as a 64-bit mask.
// Bit i corresponds to Square(i): index = x + 8*y.
type Bitboard uint64

// File masks (x = const column).
const (
	FileX0 Bitboard = 0x0101010101010101
	FileX1 Bitboard = FileX0 << 1
	FileX2 Bitboard = FileX0 << 2
	FileX3 Bitboard = FileX0 << 3
	FileX4 Bitboard = FileX0 << 4
	FileX5 Bitboard = FileX0 << 5
	FileX6 Bitboard = FileX0 << 6
	FileX7 Bitboard = FileX0 << 7
)

// FileMask maps a column index (0-7) to its file mask.
var FileMask = [8]Bitboard{FileX0, FileX1, FileX2, FileX3, FileX4, FileX5, FileX6, FileX7}

const (
	// EmptyBB is the bitboard with no squares set.
	EmptyBB Bitboard = 0
	// Universe is the bitboard with every square set.
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	// ShiftRightMask marks the x=7 file: a bit there has no east neighbor,
	// so it must be cleared before shifting a bitboard one step east (<<1).
	ShiftRightMask Bitboard = FileX7
	// ShiftLeftMask marks the x=0 file, cleared before shifting west (>>1).
	ShiftLeftMask Bitboard = FileX0

	// Finish lines: RED starts on column x=0 and advances toward x=7; BLUE
	// starts on column x=7 and advances toward x=0. FINISH[color] is the
	// column that color's own pieces promote on, which is the far column
	// from where they start, not the near one — see DESIGN.md for how this
	// was pinned down against the literal movement-pattern data.
	FinishRed  Bitboard = FileX7
	FinishBlue Bitboard = FileX0
)

// Finish returns the finish-line mask for the given color.
func Finish(c Color) Bitboard {
	if c == Red {
		return FinishRed
	}
	return FinishBlue
}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Clear returns b with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// IsSet reports whether sq is a member of b.
func (b Bitboard) IsSet(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest-indexed set square, or NoSquare if b is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest-indexed set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// More reports whether any bit is set.
func (b Bitboard) More() bool {
	return b != 0
}

// ForEach invokes f once per set square, in increasing order.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// String renders the bitboard as an 8x8 grid, y=7 at top.
func (b Bitboard) String() string {
	s := ""
	for y := 7; y >= 0; y-- {
		for x := 0; x < 8; x++ {
			if b.IsSet(NewSquare(x, y)) {
				s += "1 "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	return s
}
