package board

// IsAttacked returns true if any piece of the attacker color attacks the
// target square. The search runs backwards from the target: a piece
// attacks the target exactly when the target, moving like that piece,
// would reach it.
func (p *Position) IsAttacked(target Square, attacker Color) bool {
	// Pawn attacks
	pawn := NewPiece(Pawn, attacker)
	for _, d := range PawnDirections[attacker][1:] {
		sq := target.Add(-d)
		if sq.IsValid() && p.board[sq] == pawn {
			return true
		}
	}

	return p.isAttackedByStep(target, NewPiece(Knight, attacker), KnightDirections[:]) ||
		// The queen moves like a bishop, so check both piece types
		p.isAttackedBySlider(target, NewPiece(Bishop, attacker), NewPiece(Queen, attacker), BishopDirections[:]) ||
		// The queen moves like a rook, so check both piece types
		p.isAttackedBySlider(target, NewPiece(Rook, attacker), NewPiece(Queen, attacker), RookDirections[:]) ||
		p.isAttackedByStep(target, NewPiece(King, attacker), KingDirections[:])
}

// isAttackedByStep checks the non-sliding pieces.
func (p *Position) isAttackedByStep(target Square, piece Piece, directions []Direction) bool {
	for _, d := range directions {
		sq := target.Add(d)
		if sq.IsValid() && p.board[sq] == piece {
			return true
		}
	}
	return false
}

// isAttackedBySlider walks each ray until the first occupied square.
func (p *Position) isAttackedBySlider(target Square, slider, queen Piece, directions []Direction) bool {
	for _, d := range directions {
		for sq := target.Add(d); sq.IsValid(); sq = sq.Add(d) {
			piece := p.board[sq]
			if piece == NoPiece {
				continue
			}
			if piece == slider || piece == queen {
				return true
			}
			break
		}
	}
	return false
}

// IsCheck returns true if the side to move is in check.
func (p *Position) IsCheck() bool {
	return p.IsCheckFor(p.sideToMove)
}

// IsCheckFor returns true if the king of the given color is attacked.
// A color without a king is never in check.
func (p *Position) IsCheckFor(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return p.IsAttacked(ksq, c.Other())
}

// Attackers returns the squares of all pieces of the attacker color that
// attack the target square.
func (p *Position) Attackers(target Square, attacker Color) Bitboard {
	var bb Bitboard

	pawn := NewPiece(Pawn, attacker)
	for _, d := range PawnDirections[attacker][1:] {
		if sq := target.Add(-d); sq.IsValid() && p.board[sq] == pawn {
			bb = bb.Add(sq)
		}
	}

	knight, king := NewPiece(Knight, attacker), NewPiece(King, attacker)
	for _, d := range KnightDirections {
		if sq := target.Add(d); sq.IsValid() && p.board[sq] == knight {
			bb = bb.Add(sq)
		}
	}
	for _, d := range KingDirections {
		if sq := target.Add(d); sq.IsValid() && p.board[sq] == king {
			bb = bb.Add(sq)
		}
	}

	queen := NewPiece(Queen, attacker)
	for _, ray := range []struct {
		slider     Piece
		directions []Direction
	}{
		{NewPiece(Bishop, attacker), BishopDirections[:]},
		{NewPiece(Rook, attacker), RookDirections[:]},
	} {
		for _, d := range ray.directions {
			for sq := target.Add(d); sq.IsValid(); sq = sq.Add(d) {
				if piece := p.board[sq]; piece != NoPiece {
					if piece == ray.slider || piece == queen {
						bb = bb.Add(sq)
					}
					break
				}
			}
		}
	}

	return bb
}
