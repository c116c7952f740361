// Package movegen supplies legal move generation for board positions.
// Generation is delegated to dragontoothmg; its moves are converted into
// typed board.Move values by inspecting the position they apply to.
package movegen

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/chesscore/internal/board"
)

// NewBoard builds the dragontoothmg mirror of a position.
func NewBoard(pos *board.Position) dragontoothmg.Board {
	return dragontoothmg.ParseFen(pos.ToFEN())
}

// Convert types a dragontoothmg move for the given position, which must
// be the position the move was generated for.
func Convert(pos *board.Position, dm dragontoothmg.Move) (board.Move, error) {
	from := board.SquareFromIndex(int(dm.From()))
	to := board.SquareFromIndex(int(dm.To()))

	s := from.String() + to.String()
	switch dm.Promote() {
	case dragontoothmg.Knight:
		s += "n"
	case dragontoothmg.Bishop:
		s += "b"
	case dragontoothmg.Rook:
		s += "r"
	case dragontoothmg.Queen:
		s += "q"
	}

	m, err := board.ParseMove(pos, s)
	if err != nil {
		return board.NoMove, fmt.Errorf("convert %s in %s: %w", s, pos.ToFEN(), err)
	}
	return m, nil
}

// LegalMoves returns all legal moves in the position.
func LegalMoves(pos *board.Position) ([]board.Move, error) {
	db := NewBoard(pos)
	return convertAll(pos, db.GenerateLegalMoves())
}

func convertAll(pos *board.Position, dms []dragontoothmg.Move) ([]board.Move, error) {
	moves := make([]board.Move, 0, len(dms))
	for _, dm := range dms {
		m, err := Convert(pos, dm)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FindMove parses a coordinate move and returns it only if it is legal.
func FindMove(pos *board.Position, s string) (board.Move, error) {
	m, err := board.ParseMove(pos, s)
	if err != nil {
		return board.NoMove, err
	}
	moves, err := LegalMoves(pos)
	if err != nil {
		return board.NoMove, err
	}
	for _, legal := range moves {
		if legal == m {
			return m, nil
		}
	}
	return board.NoMove, fmt.Errorf("illegal move: %s", s)
}

// Status describes whether the game is over in a position.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	RepetitionDraw
	InsufficientMaterialDraw
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "draw by fifty-move rule"
	case RepetitionDraw:
		return "draw by threefold repetition"
	case InsufficientMaterialDraw:
		return "draw by insufficient material"
	default:
		return "ongoing"
	}
}

// IsDraw returns true for every drawn outcome.
func (s Status) IsDraw() bool {
	return s >= Stalemate
}

// GameStatus classifies the position. Mate and stalemate take precedence
// over the draw rules.
func GameStatus(pos *board.Position) Status {
	db := NewBoard(pos)
	if len(db.GenerateLegalMoves()) == 0 {
		if pos.IsCheck() {
			return Checkmate
		}
		return Stalemate
	}

	switch {
	case pos.IsFiftyMoveDraw():
		return FiftyMoveDraw
	case pos.IsRepetition():
		return RepetitionDraw
	case pos.HasInsufficientMaterial():
		return InsufficientMaterialDraw
	}
	return Ongoing
}

// IsCheckmate returns true if the side to move is checkmated.
func IsCheckmate(pos *board.Position) bool {
	return GameStatus(pos) == Checkmate
}

// IsStalemate returns true if the side to move has no legal move but is not in check.
func IsStalemate(pos *board.Position) bool {
	return GameStatus(pos) == Stalemate
}
