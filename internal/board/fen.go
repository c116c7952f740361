package board

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MaxFullMoveNumber bounds the fullmove field so the internal halfmove
// number cannot overflow.
const MaxFullMoveNumber = math.MaxInt / 4

// ErrInvalidFEN is wrapped by every FEN parsing error.
var ErrInvalidFEN = errors.New("invalid FEN")

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// ParseFEN parses a FEN string into a Position using DefaultZobrist.
func ParseFEN(fen string) (*Position, error) {
	return ParseFENWithZobrist(fen, nil)
}

// ParseFENWithZobrist parses a FEN string into a Position hashed with z.
// The halfmove clock and fullmove number fields are optional.
func ParseFENWithZobrist(fen string, z *Zobrist) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fenError("need 4 to 6 fields, got %d", len(parts))
	}

	pos := NewEmptyPosition(z)

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	if len(parts[1]) != 1 {
		return nil, fenError("invalid side to move: %s", parts[1])
	}
	switch parts[1][0] {
	case 'w', 'W':
		pos.SetActiveColor(White)
	case 'b', 'B':
		pos.SetActiveColor(Black)
	default:
		return nil, fenError("invalid side to move: %s", parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		if err := parseEnPassant(pos, parts[3]); err != nil {
			return nil, err
		}
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, fenError("invalid half-move clock: %s", parts[4])
		}
		pos.SetHalfMoveClock(hmc)
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 || fmn > MaxFullMoveNumber {
			return nil, fenError("invalid full-move number: %s", parts[5])
		}
		pos.SetFullMoveNumber(fmn)
	}

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// Every rank must describe exactly eight files.
func parsePiecePlacement(pos *Position, placement string) error {
	file := FileA
	rank := Rank8

	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			if file != NoFile {
				return fenError("rank %d has %d files", rank+1, file)
			}
			if rank == Rank1 {
				return fenError("more than 8 ranks")
			}
			file = FileA
			rank--

		case c >= '0' && c <= '9':
			empty := int(c - '0')
			if empty < 1 || empty > 8 {
				return fenError("invalid number of empty squares: %c", c)
			}
			if file+empty > NoFile {
				return fenError("too many squares in rank %d", rank+1)
			}
			file += empty

		default:
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fenError("invalid piece character: %c", c)
			}
			if file == NoFile {
				return fenError("too many squares in rank %d", rank+1)
			}
			pos.Put(piece, NewSquare(file, rank))
			file++
		}
	}

	if rank != Rank1 || file != NoFile {
		return fenError("incomplete piece placement: %s", placement)
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
// Besides KQkq it accepts rook file letters (A-H for white, a-h for black).
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		return nil
	}

	for i := 0; i < len(castling); i++ {
		c := castling[i]
		var color Color
		var kingSide bool
		switch {
		case c == 'K' || c == 'Q':
			color, kingSide = White, c == 'K'
		case c == 'k' || c == 'q':
			color, kingSide = Black, c == 'k'
		case c >= 'A' && c <= 'H', c >= 'a' && c <= 'h':
			// Shredder notation names the rook's file
			color = White
			file := int(c - 'A')
			if c >= 'a' {
				color, file = Black, int(c-'a')
			}
			if pos.KingSquare(color) == NoSquare {
				return fenError("castling file %c without a %v king", c, color)
			}
			if file != FileA && file != FileH {
				return fenError("castling file %c is not a corner file", c)
			}
			kingSide = file == FileH
		default:
			return fenError("invalid castling character: %c", c)
		}

		if !pos.hasCastlingPieces(color, kingSide) {
			return fenError("castling right %c without king and rook on their home squares", c)
		}
		pos.SetCastlingRight(NewCastlingRight(color, kingSide))
	}

	return nil
}

// parseEnPassant checks that the en passant square was skipped by a pawn
// of the side not to move: the pawn stands in front of it and both the
// square and the pawn's origin are empty.
func parseEnPassant(pos *Position, field string) error {
	sq, err := ParseSquare(field)
	if err != nil {
		return fenError("invalid en passant square: %s", field)
	}

	us := pos.sideToMove
	if (us == White && sq.Rank() != 5) || (us == Black && sq.Rank() != 2) {
		return fenError("en passant square %s impossible with %v to move", sq, us)
	}

	forward := 1
	if us == White {
		forward = -1
	}
	pawn := NewSquare(sq.File(), sq.Rank()+forward)
	origin := NewSquare(sq.File(), sq.Rank()-forward)
	if pos.board[pawn] != NewPiece(Pawn, us.Other()) || pos.board[sq] != NoPiece || pos.board[origin] != NoPiece {
		return fenError("en passant square %s without a pawn that just moved two squares", sq)
	}

	pos.SetEnPassantSquare(sq)
	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := Rank8; rank >= Rank1; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteString(piece.String())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > Rank1 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(p.castlingRights.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber()))

	return sb.String()
}
