// Package svg converts the stroke model to and from SVG. The emitted
// documents use only M/L path data, which is also the subset the importer
// understands; anything else in an incoming file is skipped.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sw2go/ng-whiteboard/internal/state"
)

// MIMEType identifies exported files as vector graphics.
const MIMEType = "image/svg+xml"

const (
	defaultColor = "#000000"
	defaultWidth = 3.0
)

// Filename returns the timestamped name for an export.
func Filename(t time.Time) string {
	return fmt.Sprintf("board_%s.svg", t.Format("20060102_150405"))
}

// PathData renders points as an absolute move/line command string:
// "M x0 y0 L x1 y1 ...".
func PathData(points []state.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	return b.String()
}

// Export emits a standalone SVG document with one path per stroke, in
// commit order. The viewBox carries the viewport window so the file opens
// framed the way the board was.
func Export(strokes []state.Stroke, viewBox [4]float64) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	fmt.Fprintf(&b,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%g %g %g %g\">\n",
		viewBox[0], viewBox[1], viewBox[2], viewBox[3])
	for _, s := range strokes {
		fmt.Fprintf(&b,
			"  <path d=\"%s\" stroke=\"%s\" stroke-width=\"%s\" fill=\"none\" stroke-linecap=\"round\" stroke-linejoin=\"round\"/>\n",
			PathData(s.Points), s.Color, strconv.FormatFloat(s.Width, 'f', -1, 64))
	}
	b.WriteString("</svg>\n")
	return b.Bytes()
}

// Import parses path elements back into strokes. Colors and widths fall
// back to black / 3 when absent, every stroke gets a fresh ID, and
// malformed or pathless input yields an empty slice rather than an error:
// a bad file leaves a blank board, not a crash.
func Import(data []byte) []state.Stroke {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var strokes []state.Stroke
	for {
		tok, err := dec.Token()
		if err != nil {
			return strokes
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "path" {
			continue
		}
		var d string
		color := defaultColor
		width := defaultWidth
		for _, a := range start.Attr {
			switch a.Name.Local {
			case "d":
				d = a.Value
			case "stroke":
				// Only #RRGGBB survives; anything else would be re-emitted
				// verbatim into an attribute on export.
				if isHexColor(a.Value) {
					color = a.Value
				}
			case "stroke-width":
				if w, err := strconv.ParseFloat(a.Value, 64); err == nil && w > 0 {
					width = w
				}
			}
		}
		points := parsePathData(d)
		if len(points) < 2 {
			continue
		}
		strokes = append(strokes, state.Stroke{
			ID:     uuid.NewString(),
			Points: points,
			Color:  color,
			Width:  width,
		})
	}
}

// isHexColor reports whether c is a #RRGGBB value, the only color form the
// board produces or renders.
func isHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(c[1:], 16, 32)
	return err == nil
}

// parsePathData pairs the consecutive numeric tokens of a move/line command
// sequence into points. Command letters act only as separators; a trailing
// unpaired number is dropped.
func parsePathData(d string) []state.Point {
	fields := strings.FieldsFunc(d, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', 'M', 'm', 'L', 'l', 'Z', 'z':
			return true
		}
		return false
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			// Unsupported command or garbage token: skip the whole path.
			return nil
		}
		nums = append(nums, v)
	}
	points := make([]state.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		points = append(points, state.Point{X: nums[i], Y: nums[i+1]})
	}
	return points
}
