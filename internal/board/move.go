package board

import (
	"fmt"
	"strconv"
)

// Action encodes a move in 16 bits:
// bits 0-5:   from square
// bits 6-11:  to square
// bits 12-13: piece type (Cockle/Gull/Starfish/Seal)
// bits 14-15: tagging bits (IsCapture, IsAmberCapture) used by move ordering;
//             stripped by Serialize/ToXML, which only carry from/to/piece.
type Action uint16

const (
	actionCaptureBit      Action = 1 << 14
	actionAmberCaptureBit Action = 1 << 15
)

// NoAction is the sentinel "no move" value. from==to==0 never occurs for a
// real action, so the all-zero encoding is safe to reserve.
const NoAction Action = 0

// NewAction packs a move. isCapture/isAmberCapture set the tagging bits.
func NewAction(from, to Square, piece PieceType, isCapture, isAmberCapture bool) Action {
	a := Action(from) | Action(to)<<6 | Action(piece)<<12
	if isCapture {
		a |= actionCaptureBit
	}
	if isAmberCapture {
		a |= actionAmberCaptureBit
	}
	return a
}

// From returns the origin square.
func (a Action) From() Square {
	return Square(a & 0x3F)
}

// To returns the destination square.
func (a Action) To() Square {
	return Square((a >> 6) & 0x3F)
}

// Piece returns the moved piece type.
func (a Action) Piece() PieceType {
	return PieceType((a >> 12) & 0x3)
}

// IsCapture reports whether this action was generated as a capture.
func (a Action) IsCapture() bool {
	return a&actionCaptureBit != 0
}

// IsAmberCapture reports whether this action wins an amber (stacked capture,
// capture by a stacked mover, or promotion).
func (a Action) IsAmberCapture() bool {
	return a&actionAmberCaptureBit != 0
}

// wireField returns the 14-bit from|to|piece field used by Serialize/ToXML;
// the tagging bits never leave the process.
func (a Action) wireField() uint16 {
	return uint16(a) & 0x3FFF
}

// Serialize renders the action as the decimal form of its 14-bit wire field.
func (a Action) Serialize() string {
	return strconv.FormatUint(uint64(a.wireField()), 10)
}

// DeserializeAction parses the decimal wire field produced by Serialize.
// Tagging bits default to false, as the wire form never carries them.
func DeserializeAction(s string) (Action, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return NoAction, fmt.Errorf("invalid action %q: %w", s, err)
	}
	return Action(v & 0x3FFF), nil
}

// ToXML renders the action as the move-submission XML fragment.
func (a Action) ToXML() string {
	from := a.From()
	to := a.To()
	return fmt.Sprintf(
		"<data class=\"move\">\n    <from x=\"%d\" y=\"%d\"/>\n    <to x=\"%d\" y=\"%d\"/>\n  </data>",
		from.X(), from.Y(), to.X(), to.Y(),
	)
}

// String renders the action for diagnostics.
func (a Action) String() string {
	if a == NoAction {
		return "none"
	}
	return fmt.Sprintf("%c:%s->%s", a.Piece().Char(), a.From(), a.To())
}

// MaxActions bounds the fixed-capacity ActionList.
const MaxActions = 200

// ActionList is a fixed-capacity, allocation-free container of actions.
type ActionList struct {
	actions [MaxActions]Action
	size    int
}

// Len returns the number of actions currently stored.
func (al *ActionList) Len() int {
	return al.size
}

// Clear empties the list without reallocating.
func (al *ActionList) Clear() {
	al.size = 0
}

// Push appends an action. Panics if the list is already at MaxActions: legal
// move generation for this game never produces more actions than that.
func (al *ActionList) Push(a Action) {
	al.actions[al.size] = a
	al.size++
}

// Get returns the action at index i.
func (al *ActionList) Get(i int) Action {
	return al.actions[i]
}

// Set overwrites the action at index i.
func (al *ActionList) Set(i int, a Action) {
	al.actions[i] = a
}

// Swap exchanges the actions at i and j.
func (al *ActionList) Swap(i, j int) {
	al.actions[i], al.actions[j] = al.actions[j], al.actions[i]
}

// SwapRemove removes the action at index i in O(1) by moving the last
// element into its place. Order is not preserved.
func (al *ActionList) SwapRemove(i int) {
	al.size--
	al.actions[i] = al.actions[al.size]
}

// Find returns the index of a, or -1 if absent.
func (al *ActionList) Find(a Action) int {
	for i := 0; i < al.size; i++ {
		if al.actions[i] == a {
			return i
		}
	}
	return -1
}

// Slice returns the stored actions as a slice sharing the backing array.
func (al *ActionList) Slice() []Action {
	return al.actions[:al.size]
}

// MaxSearchDepth bounds ActionListStack.
const MaxSearchDepth = 60

// ActionListStack provides one ActionList per search ply, avoiding
// allocation inside the search's recursive descent.
type ActionListStack struct {
	lists [MaxSearchDepth]ActionList
}

// At returns the ActionList for the given ply.
func (s *ActionListStack) At(depth int) *ActionList {
	return &s.lists[depth]
}

// UndoInfo carries everything DoAction needs to make UndoAction an exact
// inverse.
type UndoInfo struct {
	HadCapture         bool
	CapturedPiece      PieceType
	CapturedWasStacked bool // the captured square held a stack before the move
	FromWasStacked     bool // the origin square held a stack before the move

	Promoted             bool
	PromotedWasStacked   bool // the destination held a stack when it promoted
	PromotedRemovedPiece bool // a (non-stacked) board bit was cleared by promotion

	PriorHash uint64
}
