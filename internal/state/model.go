package state

import (
	"math"

	"github.com/google/uuid"
)

// Point is a location in plane coordinates. Screen pixels never appear here;
// every input coordinate goes through the viewport mapping first.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one freehand line: an ordered point sequence plus pen settings.
// Points only grow by appending while the stroke is active.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
}

// NewStroke starts an empty stroke with a fresh process-unique ID.
func NewStroke(color string, width float64) Stroke {
	return Stroke{
		ID:    uuid.NewString(),
		Color: color,
		Width: width,
	}
}

// DistanceToSegment returns the Euclidean distance from p to the segment ab.
// The projection onto ab is clamped to the segment; a zero-length segment
// degrades to plain point distance.
func DistanceToSegment(p, a, b Point) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	len2 := abx*abx + aby*aby
	if len2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx := a.X + t*abx
	cy := a.Y + t*aby
	return math.Hypot(p.X-cx, p.Y-cy)
}

func (s *Stroke) hit(p Point, tol float64) bool {
	for i := 0; i < len(s.Points)-1; i++ {
		if DistanceToSegment(p, s.Points[i], s.Points[i+1]) < tol {
			return true
		}
	}
	return false
}
