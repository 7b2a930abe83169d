// Package export renders the committed strokes to print formats.
package export

import (
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/sw2go/ng-whiteboard/internal/state"
)

const (
	pageW  = 297.0 // A4 landscape, mm
	pageH  = 210.0
	margin = 10.0
)

// PDF writes the strokes onto a single A4 landscape page, scaled uniformly
// so the whole drawing fits inside the margins.
func PDF(w io.Writer, strokes []state.Stroke) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()

	minX, minY, scale := fit(strokes)
	for _, s := range strokes {
		r, g, b := hexColor(s.Color)
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(s.Width * scale)
		for i := 1; i < len(s.Points); i++ {
			p.Line(
				margin+(s.Points[i-1].X-minX)*scale, margin+(s.Points[i-1].Y-minY)*scale,
				margin+(s.Points[i].X-minX)*scale, margin+(s.Points[i].Y-minY)*scale,
			)
		}
	}
	return p.Output(w)
}

// fit computes the drawing's bounding box and the uniform scale that maps
// it into the page box.
func fit(strokes []state.Stroke) (minX, minY, scale float64) {
	first := true
	var maxX, maxY float64
	for _, s := range strokes {
		for _, pt := range s.Points {
			if first {
				minX, maxX = pt.X, pt.X
				minY, maxY = pt.Y, pt.Y
				first = false
				continue
			}
			if pt.X < minX {
				minX = pt.X
			}
			if pt.X > maxX {
				maxX = pt.X
			}
			if pt.Y < minY {
				minY = pt.Y
			}
			if pt.Y > maxY {
				maxY = pt.Y
			}
		}
	}
	if first {
		return 0, 0, 1
	}
	scale = 1.0
	if dx := maxX - minX; dx > 0 {
		scale = (pageW - 2*margin) / dx
	}
	if dy := maxY - minY; dy > 0 {
		if sy := (pageH - 2*margin) / dy; sy < scale {
			scale = sy
		}
	}
	return minX, minY, scale
}

// hexColor parses #RRGGBB, falling back to black.
func hexColor(c string) (r, g, b int) {
	if len(c) != 7 || c[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
