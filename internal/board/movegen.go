package board

// This file builds the four movement-pattern tables for the game's pieces
// and implements legal move generation, apply/undo, and terminal detection.
//
// SEAL_PATTERN, STARFISH_PATTERN, and COCKLE_PATTERN are literal upstream
// constant arrays, reproduced verbatim below (reindexed from the source's
// flat `from | color<<6` layout to this repo's own `sealPattern`/
// `cocklePattern`/`starfishPattern` tables — same indexing convention, same
// values, just declared as Go composite literals instead of Rust consts).
// GULL has no such table upstream; it is computed from the bit-twiddling
// formula the source uses directly in its move generator, reproduced as
// gullPattern below.

// gullPattern is color-independent: 64 entries, indexed by origin square.
// Computed once at init from the orthogonal-neighbor shift formula.
var gullPattern [64]Bitboard

func init() {
	for sq := Square(0); sq < 64; sq++ {
		b := SquareBB(sq)
		gullPattern[sq] = ((b &^ ShiftRightMask) << 1) | ((b &^ ShiftLeftMask) >> 1) | (b >> 8) | (b << 8)
	}
}

// sealPattern is color-independent: 64 entries, indexed by origin square.
// The eight knight-style leap targets, clipped to the board.
var sealPattern = [...]Bitboard{
	132096, 329728, 659712, 1319424,
	2638848, 5277696, 10489856, 4202496,
	33816580, 84410376, 168886289, 337772578,
	675545156, 1351090312, 2685403152, 1075839008,
	8657044482, 21609056261, 43234889994, 86469779988,
	172939559976, 345879119952, 687463207072, 275414786112,
	2216203387392, 5531918402816, 11068131838464, 22136263676928,
	44272527353856, 88545054707712, 175990581010432, 70506185244672,
	567348067172352, 1416171111120896, 2833441750646784, 5666883501293568,
	11333767002587136, 22667534005174272, 45053588738670592, 18049583422636032,
	145241105196122112, 362539804446949376, 725361088165576704, 1450722176331153408,
	2901444352662306816, 5802888705324613632, 11533718717099671552, 4620693356194824192,
	288234782788157440, 576469569871282176, 1224997833292120064, 2449995666584240128,
	4899991333168480256, 9799982666336960512, 1152939783987658752, 2305878468463689728,
	1128098930098176, 2257297371824128, 4796069720358912, 9592139440717824,
	19184278881435648, 38368557762871296, 4679521487814656, 9077567998918656,
}

// cocklePattern and starfishPattern are color-dependent: 128 entries,
// indexed by origin square | color<<6 (i.e. square + color*64). Cockle is a
// one-step diagonal move (up to two targets); starfish is one step forward
// plus the two forward diagonals (up to three targets). Both are oriented
// by color: RED (index 0..63) moves toward increasing x, BLUE (index
// 64..127) toward decreasing x — see the Finish-line correction noted in
// DESIGN.md.
var cocklePattern = [...]Bitboard{
	512, 1024, 2048, 4096,
	8192, 16384, 32768, 0,
	131074, 262148, 524296, 1048592,
	2097184, 4194368, 8388736, 0,
	33554944, 67109888, 134219776, 268439552,
	536879104, 1073758208, 2147516416, 0,
	8590065664, 17180131328, 34360262656, 68720525312,
	137441050624, 274882101248, 549764202496, 0,
	2199056809984, 4398113619968, 8796227239936, 17592454479872,
	35184908959744, 70369817919488, 140739635838976, 0,
	562958543355904, 1125917086711808, 2251834173423616, 4503668346847232,
	9007336693694464, 18014673387388928, 36029346774777856, 0,
	144117387099111424, 288234774198222848, 576469548396445696, 1152939096792891392,
	2305878193585782784, 4611756387171565568, 9223512774343131136, 0,
	562949953421312, 1125899906842624, 2251799813685248, 4503599627370496,
	9007199254740992, 18014398509481984, 36028797018963968, 0,
	0, 256, 512, 1024,
	2048, 4096, 8192, 16384,
	0, 65537, 131074, 262148,
	524296, 1048592, 2097184, 4194368,
	0, 16777472, 33554944, 67109888,
	134219776, 268439552, 536879104, 1073758208,
	0, 4295032832, 8590065664, 17180131328,
	34360262656, 68720525312, 137441050624, 274882101248,
	0, 1099528404992, 2199056809984, 4398113619968,
	8796227239936, 17592454479872, 35184908959744, 70369817919488,
	0, 281479271677952, 562958543355904, 1125917086711808,
	2251834173423616, 4503668346847232, 9007336693694464, 18014673387388928,
	0, 72058693549555712, 144117387099111424, 288234774198222848,
	576469548396445696, 1152939096792891392, 2305878193585782784, 4611756387171565568,
	0, 281474976710656, 562949953421312, 1125899906842624,
	2251799813685248, 4503599627370496, 9007199254740992, 18014398509481984,
}

var starfishPattern = [...]Bitboard{
	514, 1284, 2568, 5136,
	10272, 20544, 41088, 16384,
	131586, 328709, 657418, 1314836,
	2629672, 5259344, 10518688, 4194368,
	33686016, 84149504, 168299008, 336598016,
	673196032, 1346392064, 2692784128, 1073758208,
	8623620096, 21542273024, 43084546048, 86169092096,
	172338184192, 344676368384, 689352736768, 274882101248,
	2207646744576, 5514821894144, 11029643788288, 22059287576576,
	44118575153152, 88237150306304, 176474300612608, 70369817919488,
	565157566611456, 1411794404900864, 2823588809801728, 5647177619603456,
	11294355239206912, 22588710478413824, 45177420956827648, 18014673387388928,
	144680337052532736, 361419367654621184, 722838735309242368, 1445677470618484736,
	2891354941236969472, 5782709882473938944, 11565419764947877888, 4611756387171565568,
	144678138029277184, 289637751035265024, 579275502070530048, 1158551004141060096,
	2317102008282120192, 4634204016564240384, 9268408033128480768, 18014398509481984,
	512, 1281, 2562, 5124,
	10248, 20496, 40992, 16448,
	131074, 327941, 655882, 1311764,
	2623528, 5247056, 10494112, 4210752,
	33554944, 83952896, 167905792, 335811584,
	671623168, 1343246336, 2686492672, 1077952512,
	8590065664, 21491941376, 42983882752, 85967765504,
	171935531008, 343871062016, 687742124032, 275955843072,
	2199056809984, 5501936992256, 11003873984512, 22007747969024,
	44015495938048, 88030991876096, 176061983752192, 70644695826432,
	562958543355904, 1408495870017536, 2816991740035072, 5633983480070144,
	11267966960140288, 22535933920280576, 45071867840561152, 18085042131566592,
	144117387099111424, 360574942724489216, 721149885448978432, 1442299770897956864,
	2884599541795913728, 5769199083591827456, 11538398167183654912, 4629770785681047552,
	562949953421312, 73464968921481216, 146929937842962432, 293859875685924864,
	587719751371849728, 1175439502743699456, 2350879005487398912, 4629700416936869888,
}

// patternFor returns the raw reachability pattern for piece/color/square,
// ignoring occupancy.
func patternFor(piece PieceType, c Color, sq Square) Bitboard {
	switch piece {
	case Gull:
		return gullPattern[sq]
	case Seal:
		return sealPattern[sq]
	case Cockle:
		return cocklePattern[int(sq)+int(c)*64]
	case Starfish:
		return starfishPattern[int(sq)+int(c)*64]
	default:
		return EmptyBB
	}
}

// Destinations returns the legal destination squares for a piece of the
// given type/color sitting on sq, given the current occupancy. Opponent-
// occupied squares are legal destinations (that is how captures happen).
func Destinations(piece PieceType, c Color, sq Square, occupiedSelf Bitboard) Bitboard {
	return patternFor(piece, c, sq) &^ occupiedSelf
}

// pieceOrder is the enumeration order GetLegalActions uses: cockle, starfish,
// seal, gull.
var pieceOrder = [4]PieceType{Cockle, Starfish, Seal, Gull}

// GetLegalActions clears out and appends every legal action for the side to
// move in s.
func GetLegalActions(s *GameState, out *ActionList) {
	out.Clear()
	color := s.CurrentColor()
	other := color.Other()

	for _, piece := range pieceOrder {
		origins := s.Board[color][piece]
		origins.ForEach(func(from Square) {
			dests := Destinations(piece, color, from, s.Occupied[color])
			dests.ForEach(func(to Square) {
				fromBit := SquareBB(from)
				toBit := SquareBB(to)
				isCapture := s.Occupied[other]&toBit != 0
				isAmberCapture := isCapture && (toBit&s.Stacked != 0 || fromBit&s.Stacked != 0)
				if !isAmberCapture && piece != Seal && toBit&Finish(color) != 0 {
					isAmberCapture = true
				}
				out.Push(NewAction(from, to, piece, isCapture, isAmberCapture))
			})
		})
	}
}

// DoAction applies action to s, recording undo information at s.Undo[s.Ply],
// then advances s.Ply. It implements the case analysis of §4.3.3.
func DoAction(s *GameState, a Action) {
	from := a.From()
	to := a.To()
	piece := a.Piece()
	fromBit := SquareBB(from)
	toBit := SquareBB(to)
	changed := fromBit | toBit
	color := s.CurrentColor()
	other := color.Other()

	var undo UndoInfo
	undo.PriorHash = s.Hash

	s.Hash ^= zobristPiece[color][piece][from]

	if s.Occupied[other]&toBit != 0 {
		undo.HadCapture = true
		touchedStacks := changed & s.Stacked
		undo.FromWasStacked = fromBit&s.Stacked != 0
		undo.CapturedWasStacked = toBit&s.Stacked != 0

		if touchedStacks != 0 {
			s.Ambers[color]++
			s.Hash ^= amberKey(color, s.Ambers[color]-1) ^ amberKey(color, s.Ambers[color])
			if undo.FromWasStacked {
				s.Hash ^= zobristStacked[from]
			}
			if undo.CapturedWasStacked {
				s.Hash ^= zobristStacked[to]
			}
			s.Stacked &^= touchedStacks
			s.Occupied[color] &^= changed
			s.Board[color][piece] ^= fromBit
		} else {
			s.Hash ^= zobristStacked[to]
			s.Stacked |= toBit
			s.Occupied[color] ^= changed
			s.Board[color][piece] ^= changed
			s.Hash ^= zobristPiece[color][piece][to]
		}

		capturedType := NoPieceType
		for pt := Cockle; pt < NoPieceType; pt++ {
			if s.Board[other][pt]&toBit != 0 {
				capturedType = pt
				break
			}
		}
		undo.CapturedPiece = capturedType
		s.Occupied[other] &^= toBit
		s.Board[other][capturedType] &^= toBit
		s.Hash ^= zobristPiece[other][capturedType][to]
	} else {
		undo.FromWasStacked = fromBit&s.Stacked != 0
		s.Occupied[color] ^= changed
		s.Board[color][piece] ^= changed
		s.Hash ^= zobristPiece[color][piece][to]
		if undo.FromWasStacked {
			s.Stacked ^= changed
			s.Hash ^= zobristStacked[from] ^ zobristStacked[to]
		}
	}

	if piece != Seal && toBit&Finish(color) != 0 {
		wasStackedAtTo := s.Stacked&toBit != 0
		hadPieceAtTo := s.Board[color][piece]&toBit != 0

		if wasStackedAtTo {
			s.Stacked &^= toBit
			s.Hash ^= zobristStacked[to]
		} else if hadPieceAtTo {
			s.Board[color][piece] &^= toBit
			s.Occupied[color] &^= toBit
			s.Hash ^= zobristPiece[color][piece][to]
		}

		s.Hash ^= amberKey(color, s.Ambers[color]) ^ amberKey(color, s.Ambers[color]+1)
		s.Ambers[color]++

		undo.Promoted = true
		undo.PromotedWasStacked = wasStackedAtTo
		undo.PromotedRemovedPiece = hadPieceAtTo && !wasStackedAtTo
	}

	s.Hash ^= zobristSide
	s.Undo[s.Ply] = undo
	s.Ply++
}

// UndoAction reverses the most recently applied action; do/undo on the same
// action must be a bitwise identity on Board, Occupied, Stacked, Ambers,
// Ply, and Hash.
func UndoAction(s *GameState, a Action) {
	s.Ply--
	undo := s.Undo[s.Ply]

	from := a.From()
	to := a.To()
	piece := a.Piece()
	fromBit := SquareBB(from)
	toBit := SquareBB(to)
	changed := fromBit | toBit
	color := s.CurrentColor()
	other := color.Other()

	if undo.Promoted {
		if undo.PromotedWasStacked {
			s.Stacked |= toBit
		} else if undo.PromotedRemovedPiece {
			s.Board[color][piece] |= toBit
			s.Occupied[color] |= toBit
		}
		s.Ambers[color]--
	}

	if undo.HadCapture {
		s.Board[other][undo.CapturedPiece] |= toBit
		s.Occupied[other] |= toBit

		if undo.FromWasStacked || undo.CapturedWasStacked {
			s.Board[color][piece] ^= fromBit
			s.Occupied[color] |= fromBit
			if undo.FromWasStacked {
				s.Stacked |= fromBit
			}
			if undo.CapturedWasStacked {
				s.Stacked |= toBit
			}
			s.Ambers[color]--
		} else {
			s.Stacked &^= toBit
			s.Occupied[color] ^= changed
			s.Board[color][piece] ^= changed
		}
	} else {
		s.Occupied[color] ^= changed
		s.Board[color][piece] ^= changed
		if undo.FromWasStacked {
			s.Stacked ^= changed
		}
	}

	s.Hash = undo.PriorHash
}

// IsGameOver reports whether the match has ended: either a hard ply ceiling
// or a 2-amber win that has been "locked in" at the start of RED's turn.
func IsGameOver(s *GameState) bool {
	if s.Ply >= 59 {
		return true
	}
	return (s.Ambers[Red] > 1 || s.Ambers[Blue] > 1) && s.Ply&1 == 0
}

// GameResult returns the outcome from RED's perspective: +1 RED wins,
// -1 BLUE wins, 0 draw.
func GameResult(s *GameState) int {
	if s.Ambers[Red] > s.Ambers[Blue] {
		return 1
	}
	if s.Ambers[Red] < s.Ambers[Blue] {
		return -1
	}
	for i := 0; i < 8; i++ {
		redMask := shiftFinish(Finish(Red), i, true) & s.Occupied[Red]
		blueMask := shiftFinish(Finish(Blue), i, false) & s.Occupied[Blue]
		redCount := redMask.PopCount()
		blueCount := blueMask.PopCount()
		if redCount != blueCount {
			if redCount > blueCount {
				return 1
			}
			return -1
		}
	}
	return 0
}

// shiftFinish shifts a finish-line mask by i squares, right for RED's
// FINISH>>i and left for BLUE's FINISH<<i, both clipped to 64 bits.
func shiftFinish(finish Bitboard, i int, right bool) Bitboard {
	if right {
		return finish >> uint(i)
	}
	return finish << uint(i)
}
