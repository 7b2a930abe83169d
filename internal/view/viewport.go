// Package view maps the infinite drawing plane onto the widget's screen
// rectangle. The viewport is the plane-coordinate window currently visible:
// growing it zooms out, shrinking it zooms in.
package view

import "github.com/sw2go/ng-whiteboard/internal/state"

// ScreenPoint is a pixel position on the rendering surface.
type ScreenPoint struct {
	X float64
	Y float64
}

// ScreenRect is the pixel rectangle the widget occupies.
type ScreenRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Viewport is the plane rectangle mapped onto the screen rectangle.
// Width and Height are always positive.
type Viewport struct {
	OriginX float64
	OriginY float64
	Width   float64
	Height  float64
}

// New returns a viewport at the plane origin with the given logical size.
func New(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// ScreenToPlane maps a screen point into plane coordinates. Every input
// coordinate passes through here before it reaches the stroke model.
func (v *Viewport) ScreenToPlane(s ScreenPoint, r ScreenRect) state.Point {
	return state.Point{
		X: v.OriginX + (s.X-r.Left)/r.Width*v.Width,
		Y: v.OriginY + (s.Y-r.Top)/r.Height*v.Height,
	}
}

// PlaneToScreen is the inverse mapping, used by the render layer.
func (v *Viewport) PlaneToScreen(p state.Point, r ScreenRect) ScreenPoint {
	return ScreenPoint{
		X: r.Left + (p.X-v.OriginX)/v.Width*r.Width,
		Y: r.Top + (p.Y-v.OriginY)/v.Height*r.Height,
	}
}

// Pan moves the window opposite to the pointer motion: dragging the canvas
// right slides the visible window left.
func (v *Viewport) Pan(dx, dy float64) {
	v.OriginX -= dx
	v.OriginY -= dy
}

// ZoomAt scales the window by factor while keeping the plane point under
// anchor fixed on screen. Factor > 1 zooms out. The origin is recomputed
// from the anchor's pre-zoom screen fraction; that fraction does not change
// within one zoom step, so the anchor invariant holds.
func (v *Viewport) ZoomAt(anchor ScreenPoint, r ScreenRect, factor float64) {
	if factor <= 0 || r.Width <= 0 || r.Height <= 0 {
		return
	}
	fx := (anchor.X - r.Left) / r.Width
	fy := (anchor.Y - r.Top) / r.Height
	px := v.OriginX + fx*v.Width
	py := v.OriginY + fy*v.Height
	v.Width *= factor
	v.Height *= factor
	v.OriginX = px - fx*v.Width
	v.OriginY = py - fy*v.Height
}

// WheelFactor maps a scroll delta to a zoom factor: scrolling down zooms
// out, up zooms in.
func WheelFactor(deltaY float64) float64 {
	if deltaY > 0 {
		return 1.1
	}
	return 0.9
}

// ResizeToAspect recomputes the window against a fixed logical height so
// the plane is never distorted when the widget's pixel size changes. The
// origin is preserved.
func (v *Viewport) ResizeToAspect(r ScreenRect, logicalHeight float64) {
	if r.Width <= 0 || r.Height <= 0 || logicalHeight <= 0 {
		return
	}
	v.Height = logicalHeight
	v.Width = logicalHeight * r.Width / r.Height
}

// Rect returns the window as the 4-number descriptor handed to the render
// layer: origin x, origin y, width, height.
func (v *Viewport) Rect() [4]float64 {
	return [4]float64{v.OriginX, v.OriginY, v.Width, v.Height}
}
