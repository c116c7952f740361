package board

import "strings"

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other returns the opposite color. NoColor has no opposite.
func (c Color) Other() Color {
	return c ^ 1
}

var colorNames = [...]string{"White", "Black", "NoColor"}

func (c Color) String() string {
	if c > NoColor {
		return colorNames[NoColor]
	}
	return colorNames[c]
}

// PieceType is a piece without its color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		return pieceTypeNames[NoPieceType]
	}
	return pieceTypeNames[pt]
}

// pieceChars holds the notation letter of each Piece value.
const pieceChars = "PNBRQKpnbrqk"

// Char returns the lowercase notation letter, or ' ' for NoPieceType.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return pieceChars[NumPieceTypes+int(pt)]
}

// PieceTypeFromChar parses a notation letter in either case.
func PieceTypeFromChar(c byte) PieceType {
	p := PieceFromChar(c)
	if p == NoPiece {
		return NoPieceType
	}
	return p.Type()
}

// NumPieceTypes is the number of real piece types.
const NumPieceTypes = 6

// PieceValue is the material value of each piece type in centipawns,
// indexed by PieceType. NoPieceType is worth nothing.
var PieceValue = [NumPieceTypes + 1]int{100, 320, 330, 500, 900, 20000, 0}

// Piece packs a PieceType and a Color as pieceType + color*6.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// NumPieces is the number of real piece values.
const NumPieces = int(NoPiece)

// NewPiece panics on NoPieceType or NoColor.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		panic("board: invalid piece type or color")
	}
	return Piece(pt) + Piece(c)*NumPieceTypes
}

func (p Piece) IsValid() bool {
	return p < NoPiece
}

func (p Piece) Type() PieceType {
	if !p.IsValid() {
		return NoPieceType
	}
	return PieceType(p % NumPieceTypes)
}

func (p Piece) Color() Color {
	if !p.IsValid() {
		return NoColor
	}
	return Color(p / NumPieceTypes)
}

// String returns the FEN letter: uppercase for white, lowercase for black,
// a blank for NoPiece.
func (p Piece) String() string {
	if !p.IsValid() {
		return " "
	}
	return pieceChars[p : p+1]
}

// PieceFromChar converts a FEN letter to a Piece, or NoPiece.
func PieceFromChar(c byte) Piece {
	i := strings.IndexByte(pieceChars, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
