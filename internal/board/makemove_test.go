package board

import (
	"strings"
	"testing"
)

func mustParseFEN(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return pos
}

func mustParseMove(t *testing.T, pos *Position, s string) Move {
	t.Helper()
	m, err := ParseMove(pos, s)
	if err != nil {
		t.Fatalf("ParseMove(%q) failed: %v", s, err)
	}
	return m
}

// checkConsistent fails the test if the position's derived state has
// drifted from its board.
func checkConsistent(t *testing.T, pos *Position) {
	t.Helper()
	if err := pos.Validate(); err != nil {
		t.Fatalf("Inconsistent position %s: %v", pos.ToFEN(), err)
	}
}

func TestMakeUndoMove(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		move  string
		after string
	}{
		{
			name:  "quiet",
			fen:   StartFEN,
			move:  "g1f3",
			after: "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1",
		},
		{
			name:  "double push sets en passant",
			fen:   StartFEN,
			move:  "e2e4",
			after: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			name:  "black double push",
			fen:   "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			move:  "d7d5",
			after: "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
		},
		{
			name:  "capture",
			fen:   "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
			move:  "e4d5",
			after: "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2",
		},
		{
			name:  "white en passant",
			fen:   "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
			move:  "e5f6",
			after: "rnbqkbnr/ppp1p1pp/5P2/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
		},
		{
			name:  "black en passant",
			fen:   "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1",
			move:  "d4e3",
			after: "4k3/8/8/8/8/4p3/8/4K3 w - - 0 2",
		},
		{
			name:  "white king side castling",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 3 10",
			move:  "e1g1",
			after: "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 4 10",
		},
		{
			name:  "white queen side castling",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move:  "e1c1",
			after: "r3k2r/8/8/8/8/8/8/2KR3R b kq - 1 1",
		},
		{
			name:  "black king side castling",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			move:  "e8g8",
			after: "r4rk1/8/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
		{
			name:  "black queen side castling",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			move:  "e8c8",
			after: "2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
		{
			name:  "rook move clears one right",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move:  "h1h5",
			after: "r3k2r/8/8/7R/8/8/8/R3K3 b Qkq - 1 1",
		},
		{
			name:  "king move clears both rights",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			move:  "e8d7",
			after: "r6r/3k4/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
		{
			name:  "rook captures rook",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move:  "a1a8",
			after: "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
		},
		{
			name:  "promotion",
			fen:   "8/4P3/8/8/8/8/k7/4K3 w - - 0 1",
			move:  "e7e8q",
			after: "4Q3/8/8/8/8/8/k7/4K3 b - - 0 1",
		},
		{
			name:  "underpromotion with capture of a rook",
			fen:   "r3k3/1P6/8/8/8/8/8/4K3 w q - 0 1",
			move:  "b7a8n",
			after: "N3k3/8/8/8/8/8/8/4K3 b - - 0 1",
		},
		{
			name:  "black promotion",
			fen:   "4k3/8/8/8/8/8/p7/4K3 b - - 0 1",
			move:  "a2a1r",
			after: "4k3/8/8/8/8/8/8/r3K3 w - - 0 2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			before := pos.Copy()
			m := mustParseMove(t, pos, tc.move)

			pos.MakeMove(m)
			checkConsistent(t, pos)
			if got := pos.ToFEN(); got != tc.after {
				t.Errorf("after %s: %s, want %s", tc.move, got, tc.after)
			}

			// The incremental hash must equal the hash of the same
			// position built from scratch.
			fresh := mustParseFEN(t, tc.after)
			if pos.Hash() != fresh.Hash() {
				t.Errorf("hash %016x, parsed position hash %016x", pos.Hash(), fresh.Hash())
			}
			if pos.Ply() != 1 {
				t.Errorf("Ply() = %d, want 1", pos.Ply())
			}

			pos.UndoMove(m)
			checkConsistent(t, pos)
			if !pos.Equal(before) {
				t.Errorf("undo %s: %s, want %s", tc.move, pos.ToFEN(), before.ToFEN())
			}
			if pos.Ply() != 0 {
				t.Errorf("Ply() = %d after undo, want 0", pos.Ply())
			}
		})
	}
}

func TestMoveSequenceUndo(t *testing.T) {
	pos := NewPosition()
	start := pos.Copy()

	// Covers double pushes, en passant, castling and promotion in one line
	line := strings.Fields("e2e4 d7d5 e4e5 f7f5 e5f6 g8h6 f6g7 e7e6 g7h8q d8h4 g1f3 b8c6 f1e2 c8d7 e1g1 e8c8")
	var played []Move
	for _, s := range line {
		m := mustParseMove(t, pos, s)
		pos.MakeMove(m)
		checkConsistent(t, pos)
		played = append(played, m)
	}

	if got, want := pos.ToFEN(), "2kr1b1Q/pppb3p/2n1p2n/3p4/7q/5N2/PPPPBPPP/RNBQ1RK1 w - - 7 9"; got != want {
		t.Errorf("after line: %s, want %s", got, want)
	}

	for i := len(played) - 1; i >= 0; i-- {
		pos.UndoMove(played[i])
		checkConsistent(t, pos)
	}
	if !pos.Equal(start) {
		t.Errorf("after undoing the line: %s", pos.ToFEN())
	}
}

func TestNullMove(t *testing.T) {
	pos := mustParseFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	before := pos.Copy()

	pos.MakeNullMove()
	checkConsistent(t, pos)
	if got, want := pos.ToFEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1 2"; got != want {
		t.Errorf("after null move: %s, want %s", got, want)
	}

	pos.UndoNullMove()
	if !pos.Equal(before) {
		t.Errorf("after undo: %s, want %s", pos.ToFEN(), before.ToFEN())
	}
}

func TestDebugMoveValidation(t *testing.T) {
	DebugMoveValidation = true
	defer func() { DebugMoveValidation = false }()

	pos := NewPosition()
	m := mustParseMove(t, pos, "e2e4")
	pos.MakeMove(m)
	pos.UndoMove(m)
	checkConsistent(t, pos)
}

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("%s did not panic", name)
			return
		}
		if s, ok := r.(string); !ok || !strings.HasPrefix(s, "board: ") {
			t.Errorf("%s panicked with %v, want a board: message", name, r)
		}
	}()
	f()
}

func TestContractViolationsPanic(t *testing.T) {
	expectPanic(t, "castling to f1", func() {
		pos := mustParseFEN(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
		pos.MakeMove(NewMove(Castling, E1, F1, WhiteKing, NoPiece, NoPieceType))
	})

	expectPanic(t, "promotion to king", func() {
		pos := mustParseFEN(t, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
		pos.MakeMove(NewMove(PawnPromotion, E7, E8, WhitePawn, NoPiece, King))
	})

	expectPanic(t, "undo without history", func() {
		pos := NewPosition()
		pos.UndoNullMove()
	})

	expectPanic(t, "history overflow", func() {
		pos := NewPosition()
		for i := 0; i <= MaxPlies; i++ {
			pos.MakeNullMove()
		}
	})

	expectPanic(t, "invalid piece", func() {
		NewPiece(NoPieceType, White)
	})
}

func TestMoveEncoding(t *testing.T) {
	m := NewMove(PawnPromotion, B7, A8, WhitePawn, BlackRook, Knight)

	if m.Type() != PawnPromotion || m.From() != B7 || m.To() != A8 {
		t.Errorf("decoded %v %v %v", m.Type(), m.From(), m.To())
	}
	if m.OriginPiece() != WhitePawn || m.TargetPiece() != BlackRook || m.Promotion() != Knight {
		t.Errorf("decoded pieces %v %v %v", m.OriginPiece(), m.TargetPiece(), m.Promotion())
	}
	if !m.IsPromotion() || !m.IsCapture() || m.IsCastling() || m.IsEnPassant() {
		t.Error("predicates disagree with the encoding")
	}
	if m.String() != "b7a8n" {
		t.Errorf("String() = %s, want b7a8n", m.String())
	}
	if NoMove.String() != "0000" {
		t.Errorf("NoMove.String() = %s, want 0000", NoMove.String())
	}
	if uint32(m)>>28 != 0 {
		t.Errorf("move uses more than 28 bits: %#x", uint32(m))
	}
}
