package board

import "testing"

func TestParseMoveTypes(t *testing.T) {
	tests := []struct {
		fen       string
		move      string
		typ       MoveType
		target    Piece
		promotion PieceType
	}{
		{StartFEN, "g1f3", Normal, NoPiece, NoPieceType},
		{StartFEN, "e2e4", PawnDouble, NoPiece, NoPieceType},
		{StartFEN, "e2e3", Normal, NoPiece, NoPieceType},
		{"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "e4d5", Normal, BlackPawn, NoPieceType},
		{"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", "e5f6", EnPassant, BlackPawn, NoPieceType},
		{"4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1", "d4e3", EnPassant, WhitePawn, NoPieceType},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", Castling, NoPiece, NoPieceType},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", Castling, NoPiece, NoPieceType},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1f1", Normal, NoPiece, NoPieceType},
		{"8/4P3/8/8/8/8/k7/4K3 w - - 0 1", "e7e8q", PawnPromotion, NoPiece, Queen},
		{"8/4P3/8/8/8/8/k7/4K3 w - - 0 1", "e7e8N", PawnPromotion, NoPiece, Knight},
		{"r3k3/1P6/8/8/8/8/8/4K3 w q - 0 1", "b7a8r", PawnPromotion, BlackRook, Rook},
		{"4k3/8/8/8/8/8/p7/4K3 b - - 0 1", "a2a1b", PawnPromotion, NoPiece, Bishop},
	}

	for _, tc := range tests {
		t.Run(tc.move, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			m := mustParseMove(t, pos, tc.move)
			if m.Type() != tc.typ {
				t.Errorf("Type() = %v, want %v", m.Type(), tc.typ)
			}
			if m.OriginPiece() != pos.PieceAt(m.From()) {
				t.Errorf("OriginPiece() = %v, want %v", m.OriginPiece(), pos.PieceAt(m.From()))
			}
			if m.TargetPiece() != tc.target {
				t.Errorf("TargetPiece() = %v, want %v", m.TargetPiece(), tc.target)
			}
			if m.Promotion() != tc.promotion {
				t.Errorf("Promotion() = %v, want %v", m.Promotion(), tc.promotion)
			}
			if got := m.String(); got[:4] != tc.move[:4] {
				t.Errorf("String() = %s, want %s", got, tc.move)
			}
		})
	}
}

func TestParseMoveErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
	}{
		{"too short", StartFEN, "e2"},
		{"too long", StartFEN, "e2e4qq"},
		{"bad origin", StartFEN, "z2e4"},
		{"bad target", StartFEN, "e2e9"},
		{"empty origin", StartFEN, "e4e5"},
		{"opponent piece", StartFEN, "e7e5"},
		{"own piece on target", StartFEN, "e1e2"},
		{"missing promotion", "8/4P3/8/8/8/8/k7/4K3 w - - 0 1", "e7e8"},
		{"king promotion", "8/4P3/8/8/8/8/k7/4K3 w - - 0 1", "e7e8k"},
		{"promotion off the last rank", StartFEN, "e2e4q"},
		{"promotion of a piece", "8/4P3/8/8/8/8/k7/R3K3 w - - 0 1", "a1a8q"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			if m, err := ParseMove(pos, tc.move); err == nil {
				t.Errorf("ParseMove(%q) = %v, want an error", tc.move, m)
			}
		})
	}
}

// Moves that MakeMove could not apply are rejected when parsed.
func TestParseMoveUnplayable(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
	}{
		{"castling without right", "4k3/8/8/8/8/8/8/R3K2R w - - 0 1", "e1g1"},
		{"castling without right on the other side", "4k3/8/8/8/8/8/8/R3K2R w K - 0 1", "e1c1"},
		{"king two files away from home", "4k3/8/8/8/8/8/8/3K3R w - - 0 1", "d1f1"},
		{"castling through a piece", "4k3/8/8/8/8/8/8/R3KB1R w KQ - 0 1", "e1g1"},
		{"queen side castling through b1", "4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1", "e1c1"},
		{"black castling onto a piece", "r3k1nr/8/8/8/8/8/8/4K3 b kq - 0 1", "e8g8"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			if m, err := ParseMove(pos, tc.move); err == nil {
				t.Errorf("ParseMove(%q) = %v, want an error", tc.move, m)
			}
		})
	}
}

func TestParseMoveRightsLostAfterBuild(t *testing.T) {
	// Built by hand: the right survives after the rook is gone
	pos := NewEmptyPosition(nil)
	pos.Put(WhiteKing, E1)
	pos.Put(WhiteRook, H1)
	pos.Put(BlackKing, E8)
	pos.SetCastlingRight(WhiteKingSideCastle)
	pos.Remove(H1)

	if _, err := ParseMove(pos, "e1g1"); err == nil {
		t.Error("ParseMove accepted castling without the rook")
	}

	// En passant square with no pawn to capture
	pos = NewEmptyPosition(nil)
	pos.Put(WhiteKing, E1)
	pos.Put(BlackKing, E8)
	pos.Put(BlackPawn, D4)
	pos.SetActiveColor(Black)
	pos.SetEnPassantSquare(E3)

	if _, err := ParseMove(pos, "d4e3"); err == nil {
		t.Error("ParseMove accepted en passant without a pawn to capture")
	}
}
