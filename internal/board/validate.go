package board

import "fmt"

// ComputeHash computes the Zobrist hash for the position from scratch.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for sq := A1; sq <= H8; sq++ {
		if piece := p.PieceAt(sq); piece != NoPiece {
			hash ^= p.zobrist.pieces[piece][sq]
		}
	}

	hash ^= p.zobrist.castling[p.castlingRights]

	if p.enPassant != NoSquare {
		hash ^= p.zobrist.enPassant[p.enPassant]
	}

	if p.sideToMove == Black {
		hash ^= p.zobrist.sideToMove
	}

	return hash
}

// Validate recomputes every derived field from the board array and
// reports the first one that disagrees.
func (p *Position) Validate() error {
	var pieces [2][6]Bitboard
	var material [2]int

	for sq := Square(0); sq < NumSquares; sq++ {
		piece := p.board[sq]
		if !sq.IsValid() {
			if piece != NoPiece {
				return fmt.Errorf("off-board slot %#x holds %v", uint8(sq), piece)
			}
			continue
		}
		if piece == NoPiece {
			continue
		}
		if !piece.IsValid() {
			return fmt.Errorf("square %v holds invalid piece %d", sq, piece)
		}
		c, pt := piece.Color(), piece.Type()
		pieces[c][pt] = pieces[c][pt].Add(sq)
		material[c] += piece.Value()
	}

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if pieces[c][pt] != p.pieces[c][pt] {
				return fmt.Errorf("%v %v occupancy %x, board says %x", c, pt, uint64(p.pieces[c][pt]), uint64(pieces[c][pt]))
			}
		}
		if material[c] != p.material[c] {
			return fmt.Errorf("%v material %d, board says %d", c, p.material[c], material[c])
		}
	}

	if p.enPassant != NoSquare && !p.enPassant.IsValid() {
		return fmt.Errorf("invalid en passant square %#x", uint8(p.enPassant))
	}

	if p.halfMoveNumber&1 != int(p.sideToMove) {
		return fmt.Errorf("half-move number %d does not match %v to move", p.halfMoveNumber, p.sideToMove)
	}

	if hash := p.ComputeHash(); hash != p.hash {
		return fmt.Errorf("hash %016x, recomputed %016x", p.hash, hash)
	}

	return nil
}
