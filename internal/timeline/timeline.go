package timeline

// Color identifies the side that played a move.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Piece is the lowercase name of the moved piece type.
type Piece string

const (
	Pawn   Piece = "pawn"
	Knight Piece = "knight"
	Bishop Piece = "bishop"
	Rook   Piece = "rook"
	Queen  Piece = "queen"
	King   Piece = "king"
)

// MoveDescriptor is one ply of the replayed game. Immutable once built.
type MoveDescriptor struct {
	SAN         string
	Side        Color
	Piece       Piece
	IsCapture   bool
	IsCheck     bool
	IsPromotion bool
}

// PositionSnapshot is a full board state as a FEN string: piece placement,
// side to move, castling rights, en passant square and move counters.
type PositionSnapshot string

// GameTimeline owns the ordered move list and the index-aligned snapshot
// list for one parsed game. Built once per analysis request and replaced
// wholesale; never partially mutated.
//
// Positions[0] is the starting position and Positions[i+1] is Positions[i]
// with Moves[i] applied, so len(Positions) == len(Moves)+1 always holds.
type GameTimeline struct {
	Movetext  string
	Moves     []MoveDescriptor
	Positions []PositionSnapshot
	Headers   map[string]string
	Result    string
}

// LastIndex returns the highest valid ply index, or -1 for an empty game.
func (t *GameTimeline) LastIndex() int {
	if t == nil {
		return -1
	}
	return len(t.Moves) - 1
}

// PositionAt returns the snapshot visible at a cursor value: ply -1 maps
// to the starting position, ply i to the position after Moves[i].
func (t *GameTimeline) PositionAt(ply int) (PositionSnapshot, bool) {
	if t == nil || ply < -1 || ply >= len(t.Moves) {
		return "", false
	}
	return t.Positions[ply+1], true
}

// MoveAt returns the descriptor for a ply index; false for ply -1 or out
// of range.
func (t *GameTimeline) MoveAt(ply int) (MoveDescriptor, bool) {
	if t == nil || ply < 0 || ply >= len(t.Moves) {
		return MoveDescriptor{}, false
	}
	return t.Moves[ply], true
}
