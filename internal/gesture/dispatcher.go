// Package gesture routes pointer, touch and wheel input to the stroke model
// and the viewport, based on the selected tool and how many contacts are
// down. One contact draws, pans or erases; two contacts pinch-zoom.
package gesture

import (
	"math"

	"github.com/sw2go/ng-whiteboard/internal/state"
	"github.com/sw2go/ng-whiteboard/internal/view"
)

// Mode is the selected tool. It changes only by explicit user selection,
// never as a side effect of a gesture.
type Mode int

const (
	ModeDraw Mode = iota
	ModePan
	ModeErase
)

// State is the dispatcher's current gesture phase.
type State int

const (
	Idle State = iota
	Drawing
	Panning
	PinchZooming
)

// defaultEraseScale converts the current stroke width into the erase
// brush radius unless a preference overrides it.
const defaultEraseScale = 2.0

// pointerRecord tracks one live contact, keyed by pointer id in the
// dispatcher's table.
type pointerRecord struct {
	start      state.Point
	last       state.Point
	lastScreen view.ScreenPoint
}

// pinchSnapshot freezes the viewport at pinch start. All zoom math during
// the gesture is computed from this fixed reference instead of accumulating
// per-frame updates, so rounding error cannot drift.
type pinchSnapshot struct {
	frozen   view.Viewport
	initDist float64
	centroid state.Point
}

// Dispatcher owns the gesture state machine and the current pen settings.
type Dispatcher struct {
	board *state.Board
	vp    *view.Viewport

	mode  Mode
	st    State
	color string
	width float64

	eraseScale   float64
	minZoomWidth float64 // zero means unbounded
	maxZoomWidth float64

	pointers map[int]*pointerRecord
	order    []int // tracked pointer ids, oldest first; only the first two pinch
	pinch    *pinchSnapshot

	// Notify is invoked after every event that mutated the board or the
	// viewport, so the shell can redraw.
	Notify func()
}

func NewDispatcher(board *state.Board, vp *view.Viewport, color string, width float64) *Dispatcher {
	return &Dispatcher{
		board:      board,
		vp:         vp,
		mode:       ModeDraw,
		color:      color,
		width:      width,
		eraseScale: defaultEraseScale,
		pointers:   make(map[int]*pointerRecord),
	}
}

func (d *Dispatcher) Mode() Mode     { return d.mode }
func (d *Dispatcher) State() State   { return d.st }
func (d *Dispatcher) Color() string  { return d.color }
func (d *Dispatcher) Width() float64 { return d.width }

func (d *Dispatcher) SetColor(c string) { d.color = c }
func (d *Dispatcher) SetWidth(w float64) {
	if w > 0 {
		d.width = w
	}
}

// SetEraseScale overrides the multiplier applied to the stroke width when
// computing the erase brush radius.
func (d *Dispatcher) SetEraseScale(s float64) {
	if s > 0 {
		d.eraseScale = s
	}
}

// SetZoomBounds limits how small and how large the viewport width may get
// through wheel or pinch zoom. A non-positive bound means unbounded on
// that side.
func (d *Dispatcher) SetZoomBounds(min, max float64) {
	d.minZoomWidth = min
	d.maxZoomWidth = max
}

func (d *Dispatcher) zoomAllowed(width float64) bool {
	if d.minZoomWidth > 0 && width < d.minZoomWidth {
		return false
	}
	if d.maxZoomWidth > 0 && width > d.maxZoomWidth {
		return false
	}
	return true
}

// SetMode selects the tool. Whatever gesture was in flight is wound down
// first: an active stroke is finalized and any pinch reference dropped.
func (d *Dispatcher) SetMode(m Mode) {
	if d.st == Drawing {
		d.board.Finalize()
	}
	d.pinch = nil
	d.st = Idle
	d.mode = m
	d.notify()
}

func (d *Dispatcher) notify() {
	if d.Notify != nil {
		d.Notify()
	}
}

func (d *Dispatcher) track(id int, sp view.ScreenPoint, r view.ScreenRect) *pointerRecord {
	p := d.vp.ScreenToPlane(sp, r)
	rec := &pointerRecord{start: p, last: p, lastScreen: sp}
	d.pointers[id] = rec
	d.order = append(d.order, id)
	return rec
}

func (d *Dispatcher) untrack(id int) {
	delete(d.pointers, id)
	for i, pid := range d.order {
		if pid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// PointerDown handles a new contact (mouse button press or touch start).
func (d *Dispatcher) PointerDown(id int, sp view.ScreenPoint, r view.ScreenRect) {
	if _, seen := d.pointers[id]; seen {
		// A down for a pointer we already track means we missed its up.
		d.untrack(id)
	}

	if d.mode == ModeErase {
		// Erase never pinches: every contact erases independently.
		if len(d.pointers) < 2 {
			d.track(id, sp, r)
		}
		d.eraseAt(sp, r)
		return
	}

	switch len(d.pointers) {
	case 0:
		rec := d.track(id, sp, r)
		switch d.mode {
		case ModeDraw:
			d.board.Begin(rec.start, d.color, d.width)
			d.st = Drawing
			d.notify()
		case ModePan:
			d.st = Panning
		}
	case 1:
		// Second contact: the draw or pan gesture ends and a pinch begins.
		if d.st == Drawing {
			d.board.Finalize()
		}
		d.track(id, sp, r)
		d.beginPinch(r)
		d.notify()
	default:
		// Third and later contacts never participate.
	}
}

func (d *Dispatcher) beginPinch(r view.ScreenRect) {
	a, b, ok := d.pinchPair()
	if !ok {
		return
	}
	dist := screenDist(a.lastScreen, b.lastScreen)
	mid := view.ScreenPoint{
		X: (a.lastScreen.X + b.lastScreen.X) / 2,
		Y: (a.lastScreen.Y + b.lastScreen.Y) / 2,
	}
	d.pinch = &pinchSnapshot{
		frozen:   *d.vp,
		initDist: dist,
		centroid: d.vp.ScreenToPlane(mid, r),
	}
	d.st = PinchZooming
}

func (d *Dispatcher) pinchPair() (a, b *pointerRecord, ok bool) {
	if len(d.order) < 2 {
		return nil, nil, false
	}
	a, b = d.pointers[d.order[0]], d.pointers[d.order[1]]
	if a == nil || b == nil {
		return nil, nil, false
	}
	return a, b, true
}

// PointerMove handles contact motion. Moves for unknown pointer ids are
// dropped: the host runtime gives no ordering guarantees.
func (d *Dispatcher) PointerMove(id int, sp view.ScreenPoint, r view.ScreenRect) {
	rec, seen := d.pointers[id]
	if !seen {
		return
	}
	rec.lastScreen = sp

	if d.mode == ModeErase {
		rec.last = d.vp.ScreenToPlane(sp, r)
		d.eraseAt(sp, r)
		return
	}

	switch d.st {
	case Drawing:
		if id != d.order[0] {
			return
		}
		p := d.vp.ScreenToPlane(sp, r)
		rec.last = p
		d.board.Append(p)
		d.notify()
	case Panning:
		if id != d.order[0] {
			return
		}
		// After the pan the pointer sits over the same plane point again,
		// so the record's plane anchor stays valid.
		p := d.vp.ScreenToPlane(sp, r)
		d.vp.Pan(p.X-rec.last.X, p.Y-rec.last.Y)
		d.notify()
	case PinchZooming:
		d.applyPinch(r)
	}
}

// applyPinch recomputes the viewport from the frozen snapshot. Growing the
// finger gap shrinks the window (zoom in): scale = initial/current.
func (d *Dispatcher) applyPinch(r view.ScreenRect) {
	a, b, ok := d.pinchPair()
	if !ok || d.pinch == nil {
		return
	}
	cur := screenDist(a.lastScreen, b.lastScreen)
	if cur == 0 || d.pinch.initDist == 0 {
		return
	}
	scale := d.pinch.initDist / cur
	if !d.zoomAllowed(d.pinch.frozen.Width * scale) {
		return
	}
	d.vp.Width = d.pinch.frozen.Width * scale
	d.vp.Height = d.pinch.frozen.Height * scale

	mid := view.ScreenPoint{
		X: (a.lastScreen.X + b.lastScreen.X) / 2,
		Y: (a.lastScreen.Y + b.lastScreen.Y) / 2,
	}
	fx := (mid.X - r.Left) / r.Width
	fy := (mid.Y - r.Top) / r.Height
	d.vp.OriginX = d.pinch.centroid.X - fx*d.vp.Width
	d.vp.OriginY = d.pinch.centroid.Y - fy*d.vp.Height
	d.notify()
}

// PointerUp handles contact release.
func (d *Dispatcher) PointerUp(id int, sp view.ScreenPoint, r view.ScreenRect) {
	if _, seen := d.pointers[id]; !seen {
		return
	}
	d.untrack(id)
	d.endGesture()
}

// PointerCancel is a lost contact: same cleanup as an up, with whatever
// points the stroke already has.
func (d *Dispatcher) PointerCancel(id int) {
	if _, seen := d.pointers[id]; !seen {
		return
	}
	d.untrack(id)
	d.endGesture()
}

func (d *Dispatcher) endGesture() {
	switch d.st {
	case Drawing:
		d.board.Finalize()
		d.st = Idle
		d.notify()
	case Panning:
		d.st = Idle
	case PinchZooming:
		if len(d.pointers) < 2 {
			d.pinch = nil
			d.st = Idle
		}
	}
}

// Wheel zooms at the cursor: scrolling down zooms out by 1.1, up zooms in
// by 0.9. A tick that would push the window past the zoom bounds is
// dropped whole rather than clamped, so the anchor math never runs on a
// partial step.
func (d *Dispatcher) Wheel(deltaY float64, anchor view.ScreenPoint, r view.ScreenRect) {
	factor := view.WheelFactor(deltaY)
	if !d.zoomAllowed(d.vp.Width * factor) {
		return
	}
	d.vp.ZoomAt(anchor, r, factor)
	d.notify()
}

// Resize recomputes the viewport for a new widget size, preserving aspect
// against the fixed logical height.
func (d *Dispatcher) Resize(r view.ScreenRect, logicalHeight float64) {
	d.vp.ResizeToAspect(r, logicalHeight)
	d.notify()
}

func (d *Dispatcher) eraseAt(sp view.ScreenPoint, r view.ScreenRect) {
	p := d.vp.ScreenToPlane(sp, r)
	if d.board.EraseNear(p, d.eraseScale*d.width) > 0 {
		d.notify()
	}
}

func screenDist(a, b view.ScreenPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
