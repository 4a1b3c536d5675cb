package board

// Zobrist hash keys for incremental position hashing. Generated once, at
// init, from a seeded PRNG so the table (and therefore every hash value) is
// reproducible across runs and machines.
var (
	zobristPiece   [2][4][64]uint64 // [Color][PieceType][Square]
	zobristStacked [64]uint64       // one key per square, XORed while stacked
	zobristAmber   [2][3]uint64     // [Color][ambers] for ambers in {0,1,2}; 2 covers "2 or more"
	zobristSide    uint64
)

func init() {
	initZobrist()
}

// prng is a small xorshift64* generator used for reproducible-seed
// construction of the Zobrist tables.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0xA13BE57C0FF1E5EE)

	for c := Red; c <= Blue; c++ {
		for pt := Cockle; pt < NoPieceType; pt++ {
			for sq := Square(0); sq < 64; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for sq := Square(0); sq < 64; sq++ {
		zobristStacked[sq] = rng.next()
	}

	for c := Red; c <= Blue; c++ {
		for k := 0; k < 3; k++ {
			zobristAmber[c][k] = rng.next()
		}
	}

	zobristSide = rng.next()
}

func amberKey(c Color, ambers uint8) uint64 {
	k := int(ambers)
	if k > 2 {
		k = 2
	}
	return zobristAmber[c][k]
}

// RecalculateHash computes the Zobrist hash of s from scratch. DoAction and
// UndoAction maintain s.Hash incrementally; this is the ground truth used to
// check that incremental maintenance never drifts.
func (s *GameState) RecalculateHash() uint64 {
	var h uint64
	for c := Red; c <= Blue; c++ {
		for pt := Cockle; pt < NoPieceType; pt++ {
			bb := s.Board[c][pt]
			bb.ForEach(func(sq Square) {
				h ^= zobristPiece[c][pt][sq]
			})
		}
		h ^= amberKey(c, s.Ambers[c])
	}
	stacked := s.Stacked
	stacked.ForEach(func(sq Square) {
		h ^= zobristStacked[sq]
	})
	if s.CurrentColor() == Blue {
		h ^= zobristSide
	}
	return h
}
