package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sw2go/ng-whiteboard/internal/state"
	"github.com/sw2go/ng-whiteboard/internal/view"
)

// rect and viewport are the same size, so plane coordinates equal screen
// coordinates until something zooms or pans.
var rect = view.ScreenRect{Left: 0, Top: 0, Width: 100, Height: 100}

func newTestDispatcher() (*Dispatcher, *state.Board, *view.Viewport) {
	board := state.NewBoard()
	vp := view.New(100, 100)
	return NewDispatcher(board, vp, "#000000", 3), board, vp
}

func sp(x, y float64) view.ScreenPoint { return view.ScreenPoint{X: x, Y: y} }

func TestDrawGestureCommitsStroke(t *testing.T) {
	d, board, _ := newTestDispatcher()

	d.PointerDown(1, sp(10, 10), rect)
	assert.Equal(t, Drawing, d.State())
	d.PointerMove(1, sp(20, 20), rect)
	d.PointerUp(1, sp(20, 20), rect)

	assert.Equal(t, Idle, d.State())
	strokes := board.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}, strokes[0].Points)
	assert.Equal(t, "#000000", strokes[0].Color)
	assert.Equal(t, 3.0, strokes[0].Width)
}

func TestTapLeavesNoMark(t *testing.T) {
	d, board, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerUp(1, sp(10, 10), rect)
	assert.Equal(t, 0, board.Len())
}

func TestPanGesture(t *testing.T) {
	d, _, vp := newTestDispatcher()
	d.SetMode(ModePan)

	d.PointerDown(1, sp(10, 10), rect)
	assert.Equal(t, Panning, d.State())
	d.PointerMove(1, sp(30, 10), rect)

	// Dragging 20 to the right slides the window 20 to the left.
	assert.InDelta(t, -20, vp.OriginX, 1e-9)
	assert.InDelta(t, 0, vp.OriginY, 1e-9)

	// The plane point grabbed at the start stays under the pointer.
	after := vp.ScreenToPlane(sp(30, 10), rect)
	assert.InDelta(t, 10, after.X, 1e-9)
	assert.InDelta(t, 10, after.Y, 1e-9)

	d.PointerUp(1, sp(30, 10), rect)
	assert.Equal(t, Idle, d.State())
}

func TestPinchScaleDirection(t *testing.T) {
	d, _, vp := newTestDispatcher()

	d.PointerDown(1, sp(0, 50), rect)
	d.PointerDown(2, sp(100, 50), rect)
	require.Equal(t, PinchZooming, d.State())

	// Spreading to twice the distance halves the window: zoom in.
	d.PointerMove(2, sp(200, 50), rect)
	assert.Equal(t, 50.0, vp.Width)
	assert.Equal(t, 50.0, vp.Height)

	// Closing to half the distance doubles it: zoom out.
	d.PointerMove(2, sp(50, 50), rect)
	assert.Equal(t, 200.0, vp.Width)
	assert.Equal(t, 200.0, vp.Height)
}

func TestPinchRecentersOnFrozenCentroid(t *testing.T) {
	d, _, vp := newTestDispatcher()

	d.PointerDown(1, sp(0, 50), rect)
	d.PointerDown(2, sp(100, 50), rect)
	d.PointerMove(2, sp(200, 50), rect)

	// The frozen plane centroid (50, 50) must sit under the current screen
	// midpoint (100, 50).
	under := vp.ScreenToPlane(sp(100, 50), rect)
	assert.InDelta(t, 50, under.X, 1e-9)
	assert.InDelta(t, 50, under.Y, 1e-9)
}

func TestPinchComputesFromFrozenSnapshot(t *testing.T) {
	d, _, vp := newTestDispatcher()

	d.PointerDown(1, sp(0, 50), rect)
	d.PointerDown(2, sp(100, 50), rect)

	// Many intermediate moves must not accumulate: only the latest distance
	// against the initial one counts.
	for x := 101.0; x <= 199; x++ {
		d.PointerMove(2, sp(x, 50), rect)
	}
	d.PointerMove(2, sp(200, 50), rect)
	assert.Equal(t, 50.0, vp.Width)
	assert.Equal(t, 50.0, vp.Height)
}

func TestSecondPointerFinalizesActiveStroke(t *testing.T) {
	d, board, _ := newTestDispatcher()

	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(20, 20), rect)
	d.PointerDown(2, sp(50, 50), rect)

	assert.Equal(t, PinchZooming, d.State())
	assert.Equal(t, 1, board.Len())
	_, active := board.Active()
	assert.False(t, active)
}

func TestSecondPointerDiscardsSinglePointStroke(t *testing.T) {
	d, board, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerDown(2, sp(50, 50), rect)
	assert.Equal(t, 0, board.Len())
}

func TestPinchEndsWhenPointerLifts(t *testing.T) {
	d, _, vp := newTestDispatcher()

	d.PointerDown(1, sp(0, 50), rect)
	d.PointerDown(2, sp(100, 50), rect)
	d.PointerUp(2, sp(100, 50), rect)

	assert.Equal(t, Idle, d.State())
	width := vp.Width

	// The remaining contact no longer drives anything.
	d.PointerMove(1, sp(50, 50), rect)
	assert.Equal(t, width, vp.Width)
}

func TestThirdPointerIgnored(t *testing.T) {
	d, _, vp := newTestDispatcher()

	d.PointerDown(1, sp(0, 50), rect)
	d.PointerDown(2, sp(100, 50), rect)
	d.PointerDown(3, sp(50, 0), rect)
	d.PointerMove(3, sp(50, 100), rect)

	assert.Equal(t, 100.0, vp.Width)
	assert.Equal(t, 100.0, vp.Height)

	// The original pair still works.
	d.PointerMove(2, sp(200, 50), rect)
	assert.Equal(t, 50.0, vp.Width)
}

func TestZeroPinchDistanceSkipsFrame(t *testing.T) {
	d, _, vp := newTestDispatcher()

	d.PointerDown(1, sp(0, 50), rect)
	d.PointerDown(2, sp(100, 50), rect)
	d.PointerMove(2, sp(0, 50), rect) // both contacts coincide

	assert.Equal(t, 100.0, vp.Width)
	assert.False(t, vp.Width != vp.Width, "width must not be NaN")
}

func TestEraseModeNeverPinches(t *testing.T) {
	d, board, vp := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(90, 10), rect)
	d.PointerUp(1, sp(90, 10), rect)
	require.Equal(t, 1, board.Len())

	d.SetMode(ModeErase)
	d.PointerDown(1, sp(0, 90), rect)
	d.PointerDown(2, sp(100, 90), rect)
	assert.NotEqual(t, PinchZooming, d.State())
	d.PointerMove(2, sp(200, 90), rect)

	assert.Equal(t, 100.0, vp.Width)
	assert.Equal(t, 100.0, vp.Height)
	assert.Equal(t, 0.0, vp.OriginX)
}

func TestEraseRemovesStrokeWithinTolerance(t *testing.T) {
	d, board, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(90, 10), rect)
	d.PointerUp(1, sp(90, 10), rect)
	require.Equal(t, 1, board.Len())

	d.SetMode(ModeErase)
	// Tolerance is 2 x width = 6; five units above the stroke is inside.
	d.PointerDown(1, sp(50, 15), rect)
	assert.Equal(t, 0, board.Len())
}

func TestEraseToleranceTracksWidth(t *testing.T) {
	d, board, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(90, 10), rect)
	d.PointerUp(1, sp(90, 10), rect)

	d.SetMode(ModeErase)
	d.SetWidth(1)
	// Tolerance 2: five units away misses.
	d.PointerDown(1, sp(50, 15), rect)
	assert.Equal(t, 1, board.Len())
	d.PointerUp(1, sp(50, 15), rect)

	d.SetWidth(10)
	// Tolerance 20: same spot hits.
	d.PointerDown(1, sp(50, 15), rect)
	assert.Equal(t, 0, board.Len())
}

func TestUnknownPointerMoveIsNoop(t *testing.T) {
	d, board, vp := newTestDispatcher()
	d.PointerMove(7, sp(10, 10), rect)
	d.PointerUp(7, sp(10, 10), rect)
	assert.Equal(t, Idle, d.State())
	assert.Equal(t, 0, board.Len())
	assert.Equal(t, 100.0, vp.Width)
}

func TestCancelFinalizesDraw(t *testing.T) {
	d, board, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(20, 20), rect)
	d.PointerCancel(1)

	assert.Equal(t, Idle, d.State())
	assert.Equal(t, 1, board.Len())

	// The record is gone; further moves do nothing.
	d.PointerMove(1, sp(30, 30), rect)
	assert.Equal(t, 1, board.Len())
}

func TestRedundantDownReplacesStaleRecord(t *testing.T) {
	d, board, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	// A second down for the same id means its up was lost.
	d.PointerDown(1, sp(40, 40), rect)
	d.PointerMove(1, sp(50, 50), rect)
	d.PointerUp(1, sp(50, 50), rect)

	strokes := board.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, state.Point{X: 40, Y: 40}, strokes[0].Points[0])
}

func TestSetModeFinalizesActiveStroke(t *testing.T) {
	d, board, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(20, 20), rect)
	d.SetMode(ModePan)
	assert.Equal(t, 1, board.Len())
}

func TestWheelZoom(t *testing.T) {
	d, _, vp := newTestDispatcher()
	anchor := sp(50, 50)

	before := vp.ScreenToPlane(anchor, rect)
	d.Wheel(1, anchor, rect) // scroll down: zoom out
	assert.InDelta(t, 110, vp.Width, 1e-9)

	after := vp.PlaneToScreen(before, rect)
	assert.InDelta(t, anchor.X, after.X, 1e-9)
	assert.InDelta(t, anchor.Y, after.Y, 1e-9)

	d.Wheel(-1, anchor, rect) // scroll up: zoom in
	assert.InDelta(t, 99, vp.Width, 1e-9)
}

func TestWheelZoomRespectsBounds(t *testing.T) {
	d, _, vp := newTestDispatcher()
	d.SetZoomBounds(95, 120)
	anchor := sp(50, 50)

	// Zooming in would land at 90, below the floor: the tick is dropped.
	d.Wheel(-1, anchor, rect)
	assert.Equal(t, 100.0, vp.Width)

	d.Wheel(1, anchor, rect)
	assert.InDelta(t, 110, vp.Width, 1e-9)

	// 110 * 1.1 = 121 exceeds the ceiling: dropped again.
	d.Wheel(1, anchor, rect)
	assert.InDelta(t, 110, vp.Width, 1e-9)
}

func TestWheelZoomUnboundedByDefault(t *testing.T) {
	d, _, vp := newTestDispatcher()
	for i := 0; i < 50; i++ {
		d.Wheel(-1, sp(50, 50), rect)
	}
	assert.Less(t, vp.Width, 1.0)
}

func TestPinchZoomRespectsBounds(t *testing.T) {
	d, _, vp := newTestDispatcher()
	d.SetZoomBounds(60, 150)

	d.PointerDown(1, sp(0, 50), rect)
	d.PointerDown(2, sp(100, 50), rect)

	// Scale 0.5 would give width 50, below the floor: frame skipped.
	d.PointerMove(2, sp(200, 50), rect)
	assert.Equal(t, 100.0, vp.Width)

	// Scale 0.8 gives 80, inside the bounds.
	d.PointerMove(2, sp(125, 50), rect)
	assert.InDelta(t, 80, vp.Width, 1e-9)

	// Scale 2 would give 200, above the ceiling: skipped, 80 stands.
	d.PointerMove(2, sp(50, 50), rect)
	assert.InDelta(t, 80, vp.Width, 1e-9)
}

func TestEraseScaleOverride(t *testing.T) {
	d, board, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(90, 10), rect)
	d.PointerUp(1, sp(90, 10), rect)
	require.Equal(t, 1, board.Len())

	d.SetMode(ModeErase)
	d.SetEraseScale(1)
	// Radius is now 1 x width = 3; four units away misses.
	d.PointerDown(1, sp(50, 14), rect)
	assert.Equal(t, 1, board.Len())
	d.PointerUp(1, sp(50, 14), rect)

	d.SetEraseScale(2)
	// Back to the default 2 x width = 6; the same spot hits.
	d.PointerDown(1, sp(50, 14), rect)
	assert.Equal(t, 0, board.Len())
}

func TestNotifyFiresOnMutation(t *testing.T) {
	d, _, _ := newTestDispatcher()
	count := 0
	d.Notify = func() { count++ }

	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(20, 20), rect)
	d.PointerUp(1, sp(20, 20), rect)
	assert.Equal(t, 3, count)
}

func TestFrameDescriptor(t *testing.T) {
	d, _, _ := newTestDispatcher()
	d.PointerDown(1, sp(10, 10), rect)
	d.PointerMove(1, sp(20, 20), rect)

	frame := d.Frame()
	assert.Equal(t, [4]float64{0, 0, 100, 100}, frame.Viewport)
	require.Len(t, frame.Strokes, 1) // the active stroke renders too
	assert.Equal(t, "M 10 10 L 20 20", frame.Strokes[0].Path)
	assert.Equal(t, "#000000", frame.Strokes[0].Color)

	d.PointerUp(1, sp(20, 20), rect)
	frame = d.Frame()
	require.Len(t, frame.Strokes, 1)
	assert.Len(t, frame.Strokes[0].Points, 2)
}
