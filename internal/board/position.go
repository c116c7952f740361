package board

import "fmt"

// DebugMoveValidation enables a full consistency check after every
// MakeMove and UndoMove. Inconsistencies are logged, not fixed.
var DebugMoveValidation = false

// Position represents a complete chess position.
//
// All state is private: it changes only through Put, Remove, the
// construction setters and MakeMove/UndoMove, which keep the board array,
// occupancy sets, material and hash in step with each other.
type Position struct {
	zobrist *Zobrist

	// Piece at every 0x88 square; off-board slots stay NoPiece.
	board [NumSquares]Piece

	// Occupancy sets: [Color][PieceType]
	pieces [2][6]Bitboard

	// Running material sum per color
	material [2]int

	// Game state
	sideToMove     Color
	castlingRights CastlingRights
	enPassant      Square // Target square for en passant, NoSquare if none
	halfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	halfMoveNumber int    // Two per full move: fullmove = halfMoveNumber / 2

	// Zobrist hash, maintained incrementally
	hash uint64

	history history
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: cannot parse start position: " + err.Error())
	}
	return pos
}

// NewEmptyPosition creates an empty board with white to move, no castling
// rights and fullmove number 1. A nil table selects DefaultZobrist.
func NewEmptyPosition(z *Zobrist) *Position {
	if z == nil {
		z = DefaultZobrist()
	}
	p := &Position{zobrist: z}
	p.Clear()
	return p
}

// Clear resets the position to an empty board, keeping its hash table.
func (p *Position) Clear() {
	*p = Position{
		zobrist:        p.zobrist,
		enPassant:      NoSquare,
		halfMoveNumber: 2,
	}
	for sq := range p.board {
		p.board[sq] = NoPiece
	}
}

// Copy creates an independent copy of the position. The copy shares the
// hash table but starts with an empty history.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.history.size = 0
	return &newPos
}

// Equal reports whether two positions hold identical state. History is
// not compared.
func (p *Position) Equal(o *Position) bool {
	return p.board == o.board &&
		p.pieces == o.pieces &&
		p.material == o.material &&
		p.sideToMove == o.sideToMove &&
		p.castlingRights == o.castlingRights &&
		p.enPassant == o.enPassant &&
		p.halfMoveClock == o.halfMoveClock &&
		p.halfMoveNumber == o.halfMoveNumber &&
		p.hash == o.hash
}

// Put places a piece on an empty square.
// Calling it on an occupied square corrupts the position.
func (p *Position) Put(piece Piece, sq Square) {
	c := piece.Color()
	pt := piece.Type()

	p.board[sq] = piece
	p.pieces[c][pt] = p.pieces[c][pt].Add(sq)
	p.material[c] += piece.Value()

	p.hash ^= p.zobrist.pieces[piece][sq]
}

// Remove takes the piece off an occupied square and returns it.
// Calling it on an empty square corrupts the position.
func (p *Position) Remove(sq Square) Piece {
	piece := p.board[sq]
	c := piece.Color()
	pt := piece.Type()

	p.board[sq] = NoPiece
	p.pieces[c][pt] = p.pieces[c][pt].Remove(sq)
	p.material[c] -= piece.Value()

	p.hash ^= p.zobrist.pieces[piece][sq]

	return piece
}

// SetActiveColor sets the side to move.
func (p *Position) SetActiveColor(c Color) {
	if p.sideToMove != c {
		p.sideToMove = c
		p.hash ^= p.zobrist.sideToMove
		p.halfMoveNumber = p.halfMoveNumber&^1 | int(c)
	}
}

// SetCastlingRight adds castling rights. Rights already present are left alone.
func (p *Position) SetCastlingRight(cr CastlingRights) {
	added := cr &^ p.castlingRights & AllCastling
	if added != NoCastling {
		p.castlingRights |= added
		p.hash ^= p.zobrist.castling[added]
	}
}

// SetEnPassantSquare sets or clears (NoSquare) the en passant square.
func (p *Position) SetEnPassantSquare(sq Square) {
	if p.enPassant != NoSquare {
		p.hash ^= p.zobrist.enPassant[p.enPassant]
	}
	if sq != NoSquare {
		p.hash ^= p.zobrist.enPassant[sq]
	}
	p.enPassant = sq
}

// SetHalfMoveClock sets the number of half moves since the last pawn move or capture.
func (p *Position) SetHalfMoveClock(n int) {
	p.halfMoveClock = n
}

// SetFullMoveNumber sets the full move number; the side to move must be set first.
func (p *Position) SetFullMoveNumber(n int) {
	p.halfMoveNumber = n*2 + int(p.sideToMove)
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == NoPiece
}

// Pieces returns the occupancy set for a color and piece type.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.pieces[c][pt]
}

// Occupied returns all squares holding a piece of the given color.
func (p *Position) Occupied(c Color) Bitboard {
	var bb Bitboard
	for pt := Pawn; pt <= King; pt++ {
		bb |= p.pieces[c][pt]
	}
	return bb
}

// KingSquare returns the square of the color's king, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	return p.pieces[c][King].First()
}

// Material returns the running material sum of one color.
func (p *Position) Material(c Color) int {
	return p.material[c]
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the remaining castling rights.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassant returns the en passant square, or NoSquare.
func (p *Position) EnPassant() Square { return p.enPassant }

// HalfMoveClock returns the fifty-move-rule counter.
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// HalfMoveNumber returns the game length in half moves, offset so that
// HalfMoveNumber()/2 is the full move number.
func (p *Position) HalfMoveNumber() int { return p.halfMoveNumber }

// FullMoveNumber returns the full move counter, starting at 1.
func (p *Position) FullMoveNumber() int { return p.halfMoveNumber / 2 }

// Hash returns the incrementally maintained Zobrist hash.
func (p *Position) Hash() uint64 { return p.hash }

// Zobrist returns the hash table the position uses.
func (p *Position) Zobrist() *Zobrist { return p.zobrist }

// Ply returns the number of moves recorded in the history.
func (p *Position) Ply() int { return p.history.size }

// HasNonPawnMaterial returns true if the side to move has non-pawn material.
func (p *Position) HasNonPawnMaterial() bool {
	us := p.sideToMove
	return p.pieces[us][Knight]|p.pieces[us][Bishop]|p.pieces[us][Rook]|p.pieces[us][Queen] != 0
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for rank := Rank8; rank >= Rank1; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := FileA; file <= FileH; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.sideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.castlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.enPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.halfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber())
	s += fmt.Sprintf("Hash: %016x\n", p.hash)
	return s
}
