// Package board implements the board-state core of a chess engine: a 0x88
// position with incremental Zobrist hashing, exact make/undo, an attack
// oracle and draw detection.
package board

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Square represents a square on the chess board in 0x88 encoding.
// The index is rank*16 + file: A1=0x00, H1=0x07, A8=0x70, H8=0x77.
// Values with any of the 0x88 bits set are off the board.
type Square uint8

// Square constants for all 64 squares.
const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07
	A2, B2, C2, D2, E2, F2, G2, H2 Square = 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17
	A3, B3, C3, D3, E3, F3, G3, H3 Square = 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27
	A4, B4, C4, D4, E4, F4, G4, H4 Square = 0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37
	A5, B5, C5, D5, E5, F5, G5, H5 Square = 0x40, 0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47
	A6, B6, C6, D6, E6, F6, G6, H6 Square = 0x50, 0x51, 0x52, 0x53, 0x54, 0x55, 0x56, 0x57
	A7, B7, C7, D7, E7, F7, G7, H7 Square = 0x60, 0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67
	A8, B8, C8, D8, E8, F8, G8, H8 Square = 0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x76, 0x77

	NoSquare Square = 0x7F
)

// NumSquares is the size of any array indexed by Square.
const NumSquares = 128

// File and rank sentinels.
const (
	FileA, FileH = 0, 7
	Rank1, Rank8 = 0, 7
	NoFile       = 8
	NoRank       = 8
)

// Direction is a 0x88 offset between two squares.
type Direction int

// Compass directions.
const (
	North     Direction = 16
	East      Direction = 1
	South     Direction = -16
	West      Direction = -1
	NorthEast Direction = North + East
	SouthEast Direction = South + East
	SouthWest Direction = South + West
	NorthWest Direction = North + West
)

// Direction sets used by the attack oracle and by move application.
var (
	// PawnDirections holds a pawn's push direction followed by its two capture directions.
	PawnDirections = [2][3]Direction{
		{North, NorthEast, NorthWest},
		{South, SouthEast, SouthWest},
	}

	KnightDirections = [8]Direction{
		North + North + East,
		North + North + West,
		North + East + East,
		North + West + West,
		South + South + East,
		South + South + West,
		South + East + East,
		South + West + West,
	}

	BishopDirections = [4]Direction{NorthEast, NorthWest, SouthEast, SouthWest}
	RookDirections   = [4]Direction{North, East, South, West}
	QueenDirections  = [8]Direction{North, East, South, West, NorthEast, NorthWest, SouthEast, SouthWest}
	KingDirections   = QueenDirections
)

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank<<4 | file)
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 0xF
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 4
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq&0x88 == 0
}

// Add returns the square one step away in direction d. The result may be
// off the board; check it with IsValid before use.
func (sq Square) Add(d Direction) Square {
	return sq + Square(d)
}

// Index returns the dense 0-63 index of a valid square (a1=0, h8=63).
func (sq Square) Index() int {
	return int(sq&^7)>>1 | int(sq&7)
}

// SquareFromIndex converts a dense 0-63 index back into a 0x88 square.
func SquareFromIndex(i int) Square {
	return Square((i&^7)<<1 | i&7)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < FileA || file > FileH || rank < Rank1 || rank > Rank8 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// Distance returns the king-move distance between two valid squares.
func Distance(a, b Square) int {
	return max(abs(a.File()-b.File()), abs(a.Rank()-b.Rank()))
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
