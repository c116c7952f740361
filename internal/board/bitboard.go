package board

import (
	"math/bits"
	"strings"
)

// Bitboard is an occupancy set over the 64 valid squares.
// Bit i corresponds to the square with dense index i (a1=0, h8=63).
type Bitboard uint64

// Empty is the set with no members.
const Empty Bitboard = 0

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << uint(sq.Index())
}

// Add returns the set with sq added.
func (b Bitboard) Add(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Remove returns the set with sq removed.
func (b Bitboard) Remove(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// Contains returns true if sq is a member.
func (b Bitboard) Contains(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// Count returns the number of members.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// First returns the member with the lowest index, or NoSquare if empty.
func (b Bitboard) First() Square {
	if b == 0 {
		return NoSquare
	}
	return SquareFromIndex(bits.TrailingZeros64(uint64(b)))
}

// PopFirst removes and returns the member with the lowest index.
func (b *Bitboard) PopFirst() Square {
	sq := b.First()
	*b &= *b - 1
	return sq
}

// Squares returns all members in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.Count())
	for b != 0 {
		squares = append(squares, b.PopFirst())
	}
	return squares
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := FileA; file <= FileH; file++ {
			if b.Contains(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
