package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/sw2go/ng-whiteboard/internal/gesture"
	"github.com/sw2go/ng-whiteboard/internal/view"
)

// mouseID is the pointer id used for the single mouse contact. Touch
// contacts would carry their platform ids; the dispatcher does not care.
const mouseID = 0

// BoardWidget is the interactive drawing surface. All input is forwarded
// to the gesture dispatcher; the widget itself holds no drawing state.
type BoardWidget struct {
	widget.BaseWidget
	dispatcher    *gesture.Dispatcher
	logicalHeight float64
	dragging      bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(d *gesture.Dispatcher, logicalHeight float64) *BoardWidget {
	b := &BoardWidget{dispatcher: d, logicalHeight: logicalHeight}
	b.ExtendBaseWidget(b)
	// Input events arrive on the UI thread, so the redraw can be direct.
	d.Notify = func() { b.Refresh() }
	return b
}

func (b *BoardWidget) screenRect() view.ScreenRect {
	sz := b.Size()
	return view.ScreenRect{Width: float64(sz.Width), Height: float64(sz.Height)}
}

func screenPoint(pos fyne.Position) view.ScreenPoint {
	return view.ScreenPoint{X: float64(pos.X), Y: float64(pos.Y)}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.dragging = true
	b.dispatcher.PointerDown(mouseID, screenPoint(e.Position), b.screenRect())
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.dragging {
		return
	}
	b.dragging = false
	b.dispatcher.PointerUp(mouseID, screenPoint(e.Position), b.screenRect())
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.dragging {
		return
	}
	b.dispatcher.PointerMove(mouseID, screenPoint(e.Position), b.screenRect())
}

func (b *BoardWidget) DragEnd() {}

// Scrolled zooms at the cursor. Fyne's DY is positive when scrolling up,
// the opposite sign convention of the wheel delta the dispatcher expects.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.dispatcher.Wheel(-float64(e.Scrolled.DY), screenPoint(e.Position), b.screenRect())
}

func (b *BoardWidget) Resize(size fyne.Size) {
	b.BaseWidget.Resize(size)
	b.dispatcher.Resize(
		view.ScreenRect{Width: float64(size.Width), Height: float64(size.Height)},
		b.logicalHeight,
	)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

// Objects rebuilds the scene from the dispatcher's frame descriptor, one
// line per stroke segment, mapped plane to screen.
func (r *boardRenderer) Objects() []fyne.CanvasObject {
	frame := r.board.dispatcher.Frame()
	rect := r.board.screenRect()
	vp := view.Viewport{
		OriginX: frame.Viewport[0],
		OriginY: frame.Viewport[1],
		Width:   frame.Viewport[2],
		Height:  frame.Viewport[3],
	}
	// Line widths are stored in plane units; scale them with the zoom.
	widthScale := 1.0
	if vp.Width > 0 && rect.Width > 0 {
		widthScale = rect.Width / vp.Width
	}

	objects := []fyne.CanvasObject{r.background}
	for _, s := range frame.Strokes {
		col := colorFromHex(s.Color)
		for i := 1; i < len(s.Points); i++ {
			p1 := vp.PlaneToScreen(s.Points[i-1], rect)
			p2 := vp.PlaneToScreen(s.Points[i], rect)
			segment := canvas.NewLine(col)
			segment.StrokeWidth = float32(s.Width * widthScale)
			segment.Position1 = fyne.NewPos(float32(p1.X), float32(p1.Y))
			segment.Position2 = fyne.NewPos(float32(p2.X), float32(p2.Y))
			objects = append(objects, segment)
		}
	}
	return objects
}

func (r *boardRenderer) Refresh()              { canvas.Refresh(r.board) }
func (r *boardRenderer) Destroy()              {}
func (r *boardRenderer) Layout(size fyne.Size) { r.background.Resize(size) }
func (r *boardRenderer) MinSize() fyne.Size    { return fyne.NewSize(300, 300) }

// colorFromHex parses #RRGGBB; anything else renders black, matching the
// import default.
func colorFromHex(c string) color.Color {
	if len(c) != 7 || c[0] != '#' {
		return color.Black
	}
	v, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return color.Black
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
