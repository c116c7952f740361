package board

import "fmt"

// ParseMove parses a move in coordinate notation (e.g., "e2e4", "e7e8q")
// and types it by inspecting the position. The move is not checked for
// legality, but it is always safe to pass to MakeMove: castling needs the
// right with king and rook at home, en passant needs the pawn to capture.
func ParseMove(pos *Position, s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %s: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %s: %w", s, err)
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("invalid move %s: no piece on %s", s, from)
	}
	us := pos.SideToMove()
	if piece.Color() != us {
		return NoMove, fmt.Errorf("invalid move %s: %s is not to move", s, piece.Color())
	}

	captured := pos.PieceAt(to)
	if captured != NoPiece && captured.Color() == us {
		return NoMove, fmt.Errorf("invalid move %s: %s holds an own piece", s, to)
	}

	promotion := NoPieceType
	if len(s) == 5 {
		promotion = PieceTypeFromChar(s[4])
		if promotion == NoPieceType || promotion == Pawn || promotion == King {
			return NoMove, fmt.Errorf("invalid promotion piece in move %s", s)
		}
	}

	pt := piece.Type()
	lastRank := to.RelativeRank(us) == Rank8

	switch {
	case pt == Pawn && lastRank:
		if promotion == NoPieceType {
			return NoMove, fmt.Errorf("invalid move %s: missing promotion piece", s)
		}
		return NewMove(PawnPromotion, from, to, piece, captured, promotion), nil

	case promotion != NoPieceType:
		return NoMove, fmt.Errorf("invalid move %s: only pawns reaching the last rank promote", s)

	case pt == Pawn && to == pos.EnPassant() && captured == NoPiece && from.File() != to.File():
		victim := NewPiece(Pawn, us.Other())
		if pos.PieceAt(NewSquare(to.File(), from.Rank())) != victim {
			return NoMove, fmt.Errorf("invalid move %s: no pawn to capture en passant", s)
		}
		return NewMove(EnPassant, from, to, piece, victim, NoPieceType), nil

	case pt == Pawn && abs(to.Rank()-from.Rank()) == 2:
		return NewMove(PawnDouble, from, to, piece, NoPiece, NoPieceType), nil

	case pt == King && abs(to.File()-from.File()) == 2 && from.Rank() == to.Rank():
		kingSide := to.File() > from.File()
		king, rook := castlingHome(us, kingSide)
		if from != king || !pos.CastlingRights().CanCastle(us, kingSide) || !pos.hasCastlingPieces(us, kingSide) {
			return NoMove, fmt.Errorf("invalid move %s: castling not available", s)
		}
		step := East
		if !kingSide {
			step = West
		}
		for sq := from.Add(step); sq != rook; sq = sq.Add(step) {
			if !pos.IsEmpty(sq) {
				return NoMove, fmt.Errorf("invalid move %s: %s blocks castling", s, sq)
			}
		}
		return NewMove(Castling, from, to, piece, NoPiece, NoPieceType), nil
	}

	return NewMove(Normal, from, to, piece, captured, NoPieceType), nil
}
