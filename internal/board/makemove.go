package board

import "log"

// MakeMove applies a move produced for this position.
// The move is not checked for legality; UndoMove with the same move
// restores the previous state exactly.
func (p *Position) MakeMove(m Move) {
	// Save state
	p.history.push(state{
		hash:           p.hash,
		castlingRights: p.castlingRights,
		enPassant:      p.enPassant,
		halfMoveClock:  p.halfMoveClock,
	})

	t := m.Type()
	from := m.From()
	to := m.To()
	originPiece := m.OriginPiece()
	us := originPiece.Color()
	captured := m.TargetPiece()

	// Remove the captured piece and update castling rights
	if captured != NoPiece {
		capSq := m.captureSquare()
		p.Remove(capSq)
		p.clearCastling(capSq)
	}

	// Move the piece
	p.Remove(from)
	if t == PawnPromotion {
		promo := m.Promotion()
		if promo == Pawn || promo == King || promo >= NoPieceType {
			panic("board: invalid promotion piece type " + promo.String())
		}
		p.Put(NewPiece(promo, us), to)
	} else {
		p.Put(originPiece, to)
	}

	// Move the rook
	if t == Castling {
		rookFrom, rookTo := castlingRookSquares(to)
		p.Put(p.Remove(rookFrom), rookTo)
	}

	// Rights lost by the mover itself (king or unmoved rook)
	p.clearCastling(from)

	// Update en passant
	if p.enPassant != NoSquare {
		p.hash ^= p.zobrist.enPassant[p.enPassant]
	}
	if t == PawnDouble {
		p.enPassant = to.Add(PawnDirections[us.Other()][0])
		p.hash ^= p.zobrist.enPassant[p.enPassant]
	} else {
		p.enPassant = NoSquare
	}

	// Switch side to move
	p.sideToMove = p.sideToMove.Other()
	p.hash ^= p.zobrist.sideToMove

	// Update half-move clock
	if originPiece.Type() == Pawn || captured != NoPiece {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	p.halfMoveNumber++

	if DebugMoveValidation {
		if err := p.Validate(); err != nil {
			log.Printf("MAKEMOVE INCONSISTENT: move=%v: %v", m, err)
		}
	}
}

// UndoMove takes back the move most recently passed to MakeMove.
func (p *Position) UndoMove(m Move) {
	t := m.Type()
	from := m.From()
	to := m.To()
	originPiece := m.OriginPiece()
	captured := m.TargetPiece()

	p.halfMoveNumber--

	p.sideToMove = p.sideToMove.Other()

	// Move the rook back
	if t == Castling {
		rookFrom, rookTo := castlingRookSquares(to)
		p.Put(p.Remove(rookTo), rookFrom)
	}

	// Move the piece back, undoing any promotion
	p.Remove(to)
	p.Put(originPiece, from)

	// Restore the captured piece
	if captured != NoPiece {
		p.Put(captured, m.captureSquare())
	}

	// Restore state verbatim rather than trusting the incremental path
	s := p.history.pop()
	p.hash = s.hash
	p.castlingRights = s.castlingRights
	p.enPassant = s.enPassant
	p.halfMoveClock = s.halfMoveClock

	if DebugMoveValidation {
		if err := p.Validate(); err != nil {
			log.Printf("UNDOMOVE INCONSISTENT: move=%v: %v", m, err)
		}
	}
}

// MakeNullMove passes the turn without moving. Only en passant, side to
// move and the move counters change.
func (p *Position) MakeNullMove() {
	p.history.push(state{
		hash:           p.hash,
		castlingRights: p.castlingRights,
		enPassant:      p.enPassant,
		halfMoveClock:  p.halfMoveClock,
	})

	if p.enPassant != NoSquare {
		p.hash ^= p.zobrist.enPassant[p.enPassant]
		p.enPassant = NoSquare
	}

	p.sideToMove = p.sideToMove.Other()
	p.hash ^= p.zobrist.sideToMove

	p.halfMoveClock++
	p.halfMoveNumber++
}

// UndoNullMove takes back the null move most recently made.
func (p *Position) UndoNullMove() {
	p.halfMoveNumber--
	p.sideToMove = p.sideToMove.Other()

	s := p.history.pop()
	p.hash = s.hash
	p.castlingRights = s.castlingRights
	p.enPassant = s.enPassant
	p.halfMoveClock = s.halfMoveClock
}

// clearCastling removes the rights tied to a vacated square. The hash is
// updated with the key of exactly the bits that were removed.
func (p *Position) clearCastling(sq Square) {
	lost := p.castlingRights & castlingLoss[sq]
	if lost != NoCastling {
		p.hash ^= p.zobrist.castling[lost]
		p.castlingRights &^= lost
	}
}
