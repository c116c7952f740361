package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chesscore/internal/board"
)

// RenderPNG rasterizes the position. Shapes come from the SVG rendering;
// letters are drawn with a bitmap font since the rasterizer has no text
// support.
func RenderPNG(pos *board.Position, opts Options) (*image.RGBA, error) {
	g := newGeometry(opts)
	size := g.cell * 8

	var buf bytes.Buffer
	writeSVG(&buf, pos, opts, false)

	// Parse SVG
	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse diagram svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	drawLabels(rgba, pos, g, opts)

	return rgba, nil
}

// WritePNG encodes the rasterized position as PNG.
func WritePNG(w io.Writer, pos *board.Position, opts Options) error {
	img, err := RenderPNG(pos, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawLabels(dst *image.RGBA, pos *board.Position, g geometry, opts Options) {
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()

	d := &font.Drawer{Dst: dst, Face: face}
	drawAt := func(s string, x, y int, c string) {
		d.Src = image.NewUniform(parseHex(c))
		d.Dot = fixed.P(x, y)
		d.DrawString(s)
	}

	for sq := board.A1; sq <= board.H8; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		ink := blackPieceFill
		if piece.Color() == board.Black {
			ink = whitePieceFill
		}
		letter := strings.ToUpper(piece.String())
		cx, cy := g.center(sq)
		width := d.MeasureString(letter).Ceil()
		drawAt(letter, cx-width/2, cy+ascent/2, ink)
	}

	if opts.Coordinates {
		files, ranks := coordinateLabels(opts)
		for _, sq := range files {
			x, y := g.origin(sq)
			drawAt(string(rune('a'+sq.File())), x+g.cell-face.Advance-2, y+g.cell-3, labelColor(sq))
		}
		for _, sq := range ranks {
			x, y := g.origin(sq)
			drawAt(string(rune('1'+sq.Rank())), x+2, y+ascent+1, labelColor(sq))
		}
	}
}

// parseHex converts a #rrggbb color.
func parseHex(s string) color.RGBA {
	var r, g, b uint8
	fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
