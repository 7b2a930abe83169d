package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/sw2go/ng-whiteboard/internal/gesture"
)

// Actions are the file operations the toolbar triggers; the app shell wires
// them to dialogs.
type Actions struct {
	OnClear     func()
	OnSave      func()
	OnOpen      func()
	OnExportPDF func()
}

// palette is the swatch row; values are what strokes carry and what the
// SVG files contain.
var palette = []string{
	"#000000", // black
	"#ff0000", // red
	"#00ff00", // green
	"#0000ff", // blue
	"#ffff00", // yellow
}

// --- Custom widget for color swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(colorFromHex(s.Hex))
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// NewToolbar builds the tool row: mode selection, file actions, colors and
// the width slider, all driving the dispatcher.
func NewToolbar(d *gesture.Dispatcher, actions Actions) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			d.SetMode(gesture.ModeDraw)
		}), // Pen
		widget.NewToolbarAction(theme.ZoomFitIcon(), func() {
			d.SetMode(gesture.ModePan)
		}), // Pan
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			d.SetMode(gesture.ModeErase)
		}), // Eraser
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			if actions.OnClear != nil {
				actions.OnClear()
			}
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			if actions.OnSave != nil {
				actions.OnSave()
			}
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			if actions.OnOpen != nil {
				actions.OnOpen()
			}
		}),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			if actions.OnExportPDF != nil {
				actions.OnExportPDF()
			}
		}),
	)

	colorBox := container.NewHBox()
	for _, hex := range palette {
		colorBox.Add(newColorSwatch(hex, d.SetColor))
	}

	widthSlider := widget.NewSlider(1.0, 50.0)
	widthSlider.SetValue(d.Width())
	widthSlider.OnChanged = func(val float64) {
		d.SetWidth(val)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), widthSlider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}
