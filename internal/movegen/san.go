package movegen

import (
	"fmt"
	"strings"

	"github.com/hailam/chesscore/internal/board"
)

// ToSAN converts a legal move to Standard Algebraic Notation.
func ToSAN(pos *board.Position, m board.Move) (string, error) {
	if m == board.NoMove {
		return "-", nil
	}

	legal, err := LegalMoves(pos)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	if m.IsCastling() {
		if m.To() > m.From() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		from := m.From()
		pt := m.OriginPiece().Type()

		// Piece letter and disambiguation (not for pawns)
		if pt != board.Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(legal, m))
		}

		if m.IsCapture() {
			if pt == board.Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(m.To().String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	// Check/checkmate marker
	pos.MakeMove(m)
	switch status := GameStatus(pos); {
	case status == Checkmate:
		sb.WriteByte('#')
	case pos.IsCheck():
		sb.WriteByte('+')
	}
	pos.UndoMove(m)

	return sb.String(), nil
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from other legal moves of the same piece to the same square.
func disambiguation(legal []board.Move, m board.Move) string {
	from := m.From()

	var candidates []board.Square
	for _, other := range legal {
		if other.To() == m.To() && other.From() != from && other.OriginPiece() == m.OriginPiece() {
			candidates = append(candidates, other.From())
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN parses a SAN string and returns the matching legal move.
func ParseSAN(pos *board.Position, s string) (board.Move, error) {
	san := strings.TrimSpace(s)

	// Remove check/checkmate markers
	san = strings.TrimRight(san, "+#")

	legal, err := LegalMoves(pos)
	if err != nil {
		return board.NoMove, err
	}

	// Handle castling
	if san == "O-O" || san == "0-0" || san == "O-O-O" || san == "0-0-0" {
		kingSide := len(san) == 3
		for _, m := range legal {
			if m.IsCastling() && (m.To() > m.From()) == kingSide {
				return m, nil
			}
		}
		return board.NoMove, fmt.Errorf("illegal castling: %s", s)
	}

	// Parse promotion
	promo := board.NoPieceType
	if idx := strings.IndexByte(san, '='); idx >= 0 {
		if idx+1 >= len(san) {
			return board.NoMove, fmt.Errorf("invalid SAN: %s", s)
		}
		switch san[idx+1] {
		case 'N':
			promo = board.Knight
		case 'B':
			promo = board.Bishop
		case 'R':
			promo = board.Rook
		case 'Q':
			promo = board.Queen
		default:
			return board.NoMove, fmt.Errorf("invalid promotion in SAN: %s", s)
		}
		san = san[:idx]
	}

	isCapture := strings.Contains(san, "x")
	san = strings.ReplaceAll(san, "x", "")

	// Determine piece type
	pt := board.Pawn
	if len(san) > 0 && san[0] >= 'A' && san[0] <= 'Z' {
		switch san[0] {
		case 'N':
			pt = board.Knight
		case 'B':
			pt = board.Bishop
		case 'R':
			pt = board.Rook
		case 'Q':
			pt = board.Queen
		case 'K':
			pt = board.King
		default:
			return board.NoMove, fmt.Errorf("invalid piece in SAN: %s", s)
		}
		san = san[1:]
	}

	// Destination is the last two characters
	if len(san) < 2 {
		return board.NoMove, fmt.Errorf("invalid SAN: %s", s)
	}
	dest, err := board.ParseSquare(san[len(san)-2:])
	if err != nil {
		return board.NoMove, fmt.Errorf("invalid SAN %s: %w", s, err)
	}
	san = san[:len(san)-2]

	// Disambiguation (file, rank, or both)
	disambigFile, disambigRank := -1, -1
	for _, c := range san {
		switch {
		case c >= 'a' && c <= 'h':
			disambigFile = int(c - 'a')
		case c >= '1' && c <= '8':
			disambigRank = int(c - '1')
		default:
			return board.NoMove, fmt.Errorf("invalid SAN: %s", s)
		}
	}

	for _, m := range legal {
		if m.To() != dest || m.OriginPiece().Type() != pt || m.IsCastling() {
			continue
		}
		from := m.From()
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if m.Promotion() != promo {
			continue
		}
		return m, nil
	}

	return board.NoMove, fmt.Errorf("no legal move matches %s", s)
}

// MovesToSAN converts a sequence of moves played from pos to SAN.
// The position is restored before returning.
func MovesToSAN(pos *board.Position, moves []board.Move) ([]string, error) {
	result := make([]string, 0, len(moves))
	played := 0
	defer func() {
		for i := played - 1; i >= 0; i-- {
			pos.UndoMove(moves[i])
		}
	}()

	for _, m := range moves {
		san, err := ToSAN(pos, m)
		if err != nil {
			return nil, err
		}
		result = append(result, san)
		pos.MakeMove(m)
		played++
	}

	return result, nil
}
