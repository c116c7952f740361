// Package diagram draws positions as SVG documents and PNG images.
package diagram

import (
	"github.com/hailam/chesscore/internal/board"
)

// DefaultSize is the board edge in pixels when Options.Size is unset.
const DefaultSize = 480

// Board colors
const (
	lightSquare     = "#f0d9b5"
	darkSquare      = "#b58863"
	highlightSquare = "#cdd26a"
	checkSquare     = "#e06c5c"
	whitePieceFill  = "#fafafa"
	blackPieceFill  = "#262421"
	pieceStroke     = "#101010"
)

// Options controls the appearance of a diagram.
type Options struct {
	Size        int            // Board edge in pixels
	Flip        bool           // Draw from black's side
	Coordinates bool           // Label files and ranks along the edges
	Highlight   []board.Square // Squares to tint, e.g. the last move
}

func (o Options) size() int {
	if o.Size <= 0 {
		return DefaultSize
	}
	return o.Size
}

// geometry maps board squares to pixel cells.
type geometry struct {
	cell int
	flip bool
}

func newGeometry(opts Options) geometry {
	return geometry{cell: opts.size() / 8, flip: opts.Flip}
}

// origin returns the top-left pixel of the square's cell.
func (g geometry) origin(sq board.Square) (x, y int) {
	col, row := sq.File(), 7-sq.Rank()
	if g.flip {
		col, row = 7-col, 7-row
	}
	return col * g.cell, row * g.cell
}

// center returns the center pixel of the square's cell.
func (g geometry) center(sq board.Square) (x, y int) {
	x, y = g.origin(sq)
	return x + g.cell/2, y + g.cell/2
}

// squareFill returns the fill of a square, accounting for highlights and
// a king in check.
func squareFill(pos *board.Position, sq board.Square, opts Options) string {
	piece := pos.PieceAt(sq)
	if piece.Type() == board.King && pos.IsCheckFor(piece.Color()) {
		return checkSquare
	}
	for _, h := range opts.Highlight {
		if h == sq {
			return highlightSquare
		}
	}
	if (sq.File()+sq.Rank())%2 == 0 {
		return darkSquare
	}
	return lightSquare
}

// coordinateLabels returns the file letters along the bottom edge and the
// rank digits along the left edge, each with the square it annotates.
func coordinateLabels(opts Options) (files, ranks []board.Square) {
	bottom, left := board.Rank1, board.FileA
	if opts.Flip {
		bottom, left = board.Rank8, board.FileH
	}
	for i := 0; i < 8; i++ {
		files = append(files, board.NewSquare(i, bottom))
		ranks = append(ranks, board.NewSquare(left, i))
	}
	return files, ranks
}

// labelColor returns a label color that contrasts with the square's fill.
func labelColor(sq board.Square) string {
	if (sq.File()+sq.Rank())%2 == 0 {
		return lightSquare
	}
	return darkSquare
}
