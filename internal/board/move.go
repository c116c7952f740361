package board

// MoveType classifies how a move changes the board.
type MoveType uint8

const (
	Normal MoveType = iota
	PawnDouble
	PawnPromotion
	EnPassant
	Castling
	NoMoveType
)

// String returns the move type name.
func (t MoveType) String() string {
	switch t {
	case Normal:
		return "Normal"
	case PawnDouble:
		return "PawnDouble"
	case PawnPromotion:
		return "PawnPromotion"
	case EnPassant:
		return "EnPassant"
	case Castling:
		return "Castling"
	default:
		return "NoMoveType"
	}
}

// Move encodes a chess move in 28 bits:
// bits 0-2:   move type
// bits 3-9:   origin square (0x88)
// bits 10-16: target square (0x88)
// bits 17-20: origin piece
// bits 21-24: target piece (captured piece, NoPiece if none)
// bits 25-27: promotion piece type (NoPieceType if none)
type Move uint32

const (
	moveTypeShift        = 0
	moveOriginShift      = 3
	moveTargetShift      = 10
	moveOriginPieceShift = 17
	moveTargetPieceShift = 21
	movePromotionShift   = 25

	moveTypeMask      = 0x7
	moveSquareMask    = 0x7F
	movePieceMask     = 0xF
	movePieceTypeMask = 0x7
)

// NoMove represents an invalid or null move.
var NoMove = NewMove(NoMoveType, NoSquare, NoSquare, NoPiece, NoPiece, NoPieceType)

// NewMove packs a move. For an en passant capture the target piece is the
// captured pawn, which stands behind the target square.
func NewMove(t MoveType, origin, target Square, originPiece, targetPiece Piece, promotion PieceType) Move {
	return Move(t)<<moveTypeShift |
		Move(origin)<<moveOriginShift |
		Move(target)<<moveTargetShift |
		Move(originPiece)<<moveOriginPieceShift |
		Move(targetPiece)<<moveTargetPieceShift |
		Move(promotion)<<movePromotionShift
}

// Type returns the move type.
func (m Move) Type() MoveType {
	return MoveType(m >> moveTypeShift & moveTypeMask)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m >> moveOriginShift & moveSquareMask)
}

// To returns the target square.
func (m Move) To() Square {
	return Square(m >> moveTargetShift & moveSquareMask)
}

// OriginPiece returns the moving piece.
func (m Move) OriginPiece() Piece {
	return Piece(m >> moveOriginPieceShift & movePieceMask)
}

// TargetPiece returns the captured piece, or NoPiece.
func (m Move) TargetPiece() Piece {
	return Piece(m >> moveTargetPieceShift & movePieceMask)
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	return PieceType(m >> movePromotionShift & movePieceTypeMask)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Type() == PawnPromotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Type() == Castling
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Type() == EnPassant
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.TargetPiece() != NoPiece
}

// captureSquare returns the square the captured piece stands on.
func (m Move) captureSquare() Square {
	if m.Type() == EnPassant {
		return m.To().Add(PawnDirections[m.OriginPiece().Color().Other()][0])
	}
	return m.To()
}

// String returns the coordinate format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}

	return s
}
