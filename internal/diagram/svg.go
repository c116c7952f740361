package diagram

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chesscore/internal/board"
)

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG writes the position as a standalone SVG document.
func WriteSVG(w io.Writer, pos *board.Position, opts Options) error {
	ew := &errWriter{w: w}
	writeSVG(ew, pos, opts, true)
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// writeSVG draws the board. Without text only shapes are emitted, which
// is what the rasterizer understands; labels are then drawn separately.
func writeSVG(w io.Writer, pos *board.Position, opts Options, text bool) {
	g := newGeometry(opts)
	size := g.cell * 8

	canvas := svg.New(w)
	canvas.Startview(size, size, 0, 0, size, size)

	// Squares
	for rank := board.Rank1; rank <= board.Rank8; rank++ {
		for file := board.FileA; file <= board.FileH; file++ {
			sq := board.NewSquare(file, rank)
			x, y := g.origin(sq)
			canvas.Rect(x, y, g.cell, g.cell, "fill:"+squareFill(pos, sq, opts))
		}
	}

	// Pieces: a disc in the piece's color, with its letter on top
	radius := g.cell * 38 / 100
	stroke := max(1, g.cell/24)
	fontSize := g.cell * 45 / 100
	for rank := board.Rank1; rank <= board.Rank8; rank++ {
		for file := board.FileA; file <= board.FileH; file++ {
			sq := board.NewSquare(file, rank)
			piece := pos.PieceAt(sq)
			if piece == board.NoPiece {
				continue
			}

			fill, ink := whitePieceFill, blackPieceFill
			if piece.Color() == board.Black {
				fill, ink = blackPieceFill, whitePieceFill
			}

			cx, cy := g.center(sq)
			canvas.Circle(cx, cy, radius, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", fill, pieceStroke, stroke))
			if piece.Type() == board.King {
				canvas.Circle(cx, cy, radius*3/4, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", ink, stroke))
			}

			if text {
				canvas.Text(cx, cy+fontSize/3, strings.ToUpper(piece.String()),
					fmt.Sprintf("fill:%s;font-family:sans-serif;font-weight:bold;font-size:%dpx;text-anchor:middle", ink, fontSize))
			}
		}
	}

	if text && opts.Coordinates {
		labelSize := max(8, g.cell/6)
		files, ranks := coordinateLabels(opts)
		for _, sq := range files {
			x, y := g.origin(sq)
			canvas.Text(x+g.cell-labelSize/2, y+g.cell-labelSize/3, string(rune('a'+sq.File())),
				fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:%dpx;text-anchor:end", labelColor(sq), labelSize))
		}
		for _, sq := range ranks {
			x, y := g.origin(sq)
			canvas.Text(x+labelSize/3, y+labelSize, string(rune('1'+sq.Rank())),
				fmt.Sprintf("fill:%s;font-family:sans-serif;font-size:%dpx", labelColor(sq), labelSize))
		}
	}

	canvas.End()
}
