package gesture

import (
	"github.com/sw2go/ng-whiteboard/internal/state"
	"github.com/sw2go/ng-whiteboard/internal/svg"
)

// StrokeRender is one polyline for the render layer: the raw points, the
// same points as an M/L command string, and the pen settings.
type StrokeRender struct {
	Points []state.Point
	Path   string
	Color  string
	Width  float64
}

// Frame is everything a passive render layer needs for one redraw: the
// viewport window descriptor and the strokes in draw order, committed
// first, then the in-progress stroke if any.
type Frame struct {
	Viewport [4]float64
	Strokes  []StrokeRender
}

// Frame snapshots the current render state.
func (d *Dispatcher) Frame() Frame {
	strokes := d.board.Strokes()
	out := Frame{
		Viewport: d.vp.Rect(),
		Strokes:  make([]StrokeRender, 0, len(strokes)+1),
	}
	for _, s := range strokes {
		out.Strokes = append(out.Strokes, renderOf(s))
	}
	if active, ok := d.board.Active(); ok {
		out.Strokes = append(out.Strokes, renderOf(active))
	}
	return out
}

func renderOf(s state.Stroke) StrokeRender {
	return StrokeRender{
		Points: s.Points,
		Path:   svg.PathData(s.Points),
		Color:  s.Color,
		Width:  s.Width,
	}
}
