package board

import (
	"errors"
	"fmt"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	tests := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 37 112",
		"r3k3/8/8/8/8/8/8/4K2R w Kq - 0 1",
	}

	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN failed: %v", err)
			}
			if got := pos.ToFEN(); got != fen {
				t.Errorf("ToFEN() = %s, want %s", got, fen)
			}
			if err := pos.Validate(); err != nil {
				t.Errorf("Validate failed: %v", err)
			}
		})
	}
}

func TestFENFields(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 3 7")
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}

	if pos.SideToMove() != Black {
		t.Errorf("SideToMove() = %v, want Black", pos.SideToMove())
	}
	if pos.CastlingRights() != AllCastling {
		t.Errorf("CastlingRights() = %v, want KQkq", pos.CastlingRights())
	}
	if pos.EnPassant() != E3 {
		t.Errorf("EnPassant() = %v, want e3", pos.EnPassant())
	}
	if pos.HalfMoveClock() != 3 {
		t.Errorf("HalfMoveClock() = %d, want 3", pos.HalfMoveClock())
	}
	if pos.FullMoveNumber() != 7 {
		t.Errorf("FullMoveNumber() = %d, want 7", pos.FullMoveNumber())
	}
	if pos.HalfMoveNumber() != 15 {
		t.Errorf("HalfMoveNumber() = %d, want 15", pos.HalfMoveNumber())
	}
	if pos.PieceAt(E4) != WhitePawn || pos.PieceAt(E2) != NoPiece {
		t.Error("Piece placement not applied")
	}
	if pos.KingSquare(White) != E1 || pos.KingSquare(Black) != E8 {
		t.Errorf("King squares %v %v, want e1 e8", pos.KingSquare(White), pos.KingSquare(Black))
	}
}

func TestFENOptionalCounters(t *testing.T) {
	tests := []struct {
		fen      string
		halfMove int
		fullMove int
	}{
		{"4k3/8/8/8/8/8/8/4K3 w - -", 0, 1},
		{"4k3/8/8/8/8/8/8/4K3 w - - 12", 12, 1},
		{"4k3/8/8/8/8/8/8/4K3 B - - 0 9", 0, 9},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN failed: %v", err)
			}
			if pos.HalfMoveClock() != tc.halfMove || pos.FullMoveNumber() != tc.fullMove {
				t.Errorf("counters %d %d, want %d %d", pos.HalfMoveClock(), pos.FullMoveNumber(), tc.halfMove, tc.fullMove)
			}
		})
	}
}

func TestFENShredderCastling(t *testing.T) {
	tests := []struct {
		fen  string
		want CastlingRights
	}{
		{"r3k2r/8/8/8/8/8/8/R3K2R w HAha - 0 1", AllCastling},
		{"r3k2r/8/8/8/8/8/8/R3K2R w H - 0 1", WhiteKingSideCastle},
		{"r3k2r/8/8/8/8/8/8/R3K2R w a - 0 1", BlackQueenSideCastle},
		{"r3k2r/8/8/8/8/8/8/4K3 w ha - 0 1", BlackQueenSideCastle | BlackKingSideCastle},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN failed: %v", err)
			}
			if pos.CastlingRights() != tc.want {
				t.Errorf("CastlingRights() = %v, want %v", pos.CastlingRights(), tc.want)
			}
			if pos.Hash() != pos.ComputeHash() {
				t.Error("Hash does not match recomputation")
			}
		})
	}
}

func TestFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"three fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq"},
		{"seven fields", StartFEN + " extra"},
		{"rank too long", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"rank too short", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"digits overflow", "rnbqkbnr/pppppppp/44p/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"too few ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"too many ranks", "rnbqkbnr/pppppppp/8/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"trailing slash", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR/ w KQkq - 0 1"},
		{"digit nine", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"digit zero", "rnbqkbnr/pppppppp/08/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"unknown piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"bad color", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"long color", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR white KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1"},
		{"file castling without king", "8/8/8/8/8/8/8/R6R w HA - 0 1"},
		{"castling without rook", "4k3/8/8/8/8/8/8/4K3 w Q - 0 1"},
		{"castling with king off its square", "r3k2r/8/8/8/8/8/8/R2K3R w K - 0 1"},
		{"castling with the wrong rook color", "r3k2r/8/8/8/8/8/8/r3K2R w Q - 0 1"},
		{"black castling without rook", "r3k3/8/8/8/8/8/8/R3K2R w k - 0 1"},
		{"inner castling file", "1r2k1r1/8/8/8/8/8/8/4K3 w bg - 0 1"},
		{"file castling without rook", "4k3/8/8/8/8/8/8/4K2R w A - 0 1"},
		{"en passant without pawn", "4k3/8/8/8/8/8/8/4K3 b - e3 0 1"},
		{"en passant with occupied origin", "4k3/8/8/8/4P3/8/4N3/4K3 b - e3 0 1"},
		{"en passant onto a piece", "4k3/8/8/8/4P3/4N3/8/4K3 b - e3 0 1"},
		{"overflowing fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 9223372036854775807"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1"},
		{"en passant wrong rank for white", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1"},
		{"en passant wrong rank for black", "rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR b KQkq e6 0 1"},
		{"negative halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1"},
		{"text halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"zero fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"text fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 one"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded: %s", tc.fen, pos.ToFEN())
			}
			if pos != nil {
				t.Error("ParseFEN returned a position along with an error")
			}
			if !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("error %v does not wrap ErrInvalidFEN", err)
			}
		})
	}
}

func TestFENFullMoveBound(t *testing.T) {
	fen := fmt.Sprintf("4k3/8/8/8/8/8/8/4K3 b - - 0 %d", MaxFullMoveNumber)
	pos := mustParseFEN(t, fen)
	if pos.FullMoveNumber() != MaxFullMoveNumber {
		t.Errorf("FullMoveNumber() = %d, want %d", pos.FullMoveNumber(), MaxFullMoveNumber)
	}
	if got := pos.ToFEN(); got != fen {
		t.Errorf("ToFEN() = %s, want %s", got, fen)
	}
}

func TestFENWithZobrist(t *testing.T) {
	z := NewZobrist(42)
	pos, err := ParseFENWithZobrist(StartFEN, z)
	if err != nil {
		t.Fatalf("ParseFENWithZobrist failed: %v", err)
	}
	if pos.Zobrist() != z {
		t.Error("Position does not use the given table")
	}
	if pos.Hash() != pos.ComputeHash() {
		t.Error("Hash does not match recomputation")
	}
	if pos.Hash() == NewPosition().Hash() {
		t.Error("Different tables produced the same hash")
	}
}
