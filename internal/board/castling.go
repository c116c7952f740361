package board

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// NewCastlingRight returns the single right for a color and side.
func NewCastlingRight(c Color, kingSide bool) CastlingRights {
	switch {
	case c == White && kingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case c == Black && kingSide:
		return BlackKingSideCastle
	case c == Black:
		return BlackQueenSideCastle
	}
	panic("board: invalid castling color")
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&NewCastlingRight(c, kingSide) != 0
}

// castlingLoss maps a square to the rights lost when it is vacated.
var castlingLoss [NumSquares]CastlingRights

func init() {
	castlingLoss[A1] = WhiteQueenSideCastle
	castlingLoss[H1] = WhiteKingSideCastle
	castlingLoss[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	castlingLoss[A8] = BlackQueenSideCastle
	castlingLoss[H8] = BlackKingSideCastle
	castlingLoss[E8] = BlackKingSideCastle | BlackQueenSideCastle
}

// castlingRookSquares returns the rook's origin and target for a castling
// move whose king lands on kingTarget.
func castlingRookSquares(kingTarget Square) (from, to Square) {
	switch kingTarget {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	panic("board: invalid castling target square " + kingTarget.String())
}

// castlingHome returns where the king and rook must stand for a castling
// right to be usable.
func castlingHome(c Color, kingSide bool) (king, rook Square) {
	switch {
	case c == White && kingSide:
		return E1, H1
	case c == White:
		return E1, A1
	case kingSide:
		return E8, H8
	}
	return E8, A8
}

// hasCastlingPieces reports whether the king and rook of a castling right
// are on their home squares.
func (p *Position) hasCastlingPieces(c Color, kingSide bool) bool {
	king, rook := castlingHome(c, kingSide)
	return p.board[king] == NewPiece(King, c) && p.board[rook] == NewPiece(Rook, c)
}
