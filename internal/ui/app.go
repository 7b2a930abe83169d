package ui

import (
	"fmt"
	"io"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/sw2go/ng-whiteboard/internal/config"
	"github.com/sw2go/ng-whiteboard/internal/export"
	"github.com/sw2go/ng-whiteboard/internal/gesture"
	"github.com/sw2go/ng-whiteboard/internal/state"
	"github.com/sw2go/ng-whiteboard/internal/svg"
	"github.com/sw2go/ng-whiteboard/internal/view"
)

// RunApp builds the whiteboard window and blocks until it closes. initial
// is the stroke set to preload, usually from a file given on the command
// line.
func RunApp(cfg config.Config, initial []state.Stroke) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Whiteboard")
	myWindow.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))

	board := state.NewBoard()
	if len(initial) > 0 {
		board.Replace(initial)
	}
	vp := view.New(cfg.LogicalHeight*float64(cfg.WindowWidth)/float64(cfg.WindowHeight), cfg.LogicalHeight)
	disp := gesture.NewDispatcher(board, vp, cfg.Color, cfg.StrokeWidth)
	disp.SetEraseScale(cfg.EraserScale)
	disp.SetZoomBounds(cfg.MinZoomWidth, cfg.MaxZoomWidth)
	boardWidget := NewBoardWidget(disp, cfg.LogicalHeight)

	status := widget.NewLabel("Ready")
	setStatus := func(format string, args ...any) {
		status.SetText(fmt.Sprintf(format, args...))
	}

	actions := Actions{
		OnClear: func() {
			dialog.ShowConfirm("Clear", "Remove all strokes?", func(ok bool) {
				if !ok {
					return
				}
				board.Clear()
				boardWidget.Refresh()
				setStatus("Cleared")
			}, myWindow)
		},
		OnSave: func() {
			fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, myWindow)
					return
				}
				if writer == nil {
					return
				}
				saveSVG(writer, board, vp, setStatus)
			}, myWindow)
			fd.SetFileName(svg.Filename(time.Now()))
			fd.SetFilter(storage.NewExtensionFileFilter([]string{".svg"}))
			fd.Show()
		},
		OnOpen: func() {
			fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil {
					dialog.ShowError(err, myWindow)
					return
				}
				if reader == nil {
					return
				}
				loadSVG(reader, board, setStatus)
				boardWidget.Refresh()
			}, myWindow)
			fd.SetFilter(storage.NewMimeTypeFileFilter([]string{svg.MIMEType}))
			fd.Show()
		},
		OnExportPDF: func() {
			fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, myWindow)
					return
				}
				if writer == nil {
					return
				}
				defer writer.Close()
				if err := export.PDF(writer, board.Strokes()); err != nil {
					log.Printf("pdf export: %v", err)
					setStatus("PDF export failed")
					return
				}
				setStatus("Exported PDF")
			}, myWindow)
			fd.SetFileName(fmt.Sprintf("board_%s.pdf", time.Now().Format("20060102_150405")))
			fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
			fd.Show()
		},
	}

	toolbar := NewToolbar(disp, actions)
	content := container.NewBorder(toolbar, status, nil, nil, boardWidget)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}

func saveSVG(writer fyne.URIWriteCloser, board *state.Board, vp *view.Viewport, setStatus func(string, ...any)) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("save: closing writer: %v", err)
		}
	}()
	strokes := board.Strokes()
	if _, err := writer.Write(svg.Export(strokes, vp.Rect())); err != nil {
		log.Printf("save: %v", err)
		setStatus("Error writing file")
		return
	}
	setStatus("Saved %d strokes", len(strokes))
}

func loadSVG(reader fyne.URIReadCloser, board *state.Board, setStatus func(string, ...any)) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("open: closing reader: %v", err)
		}
	}()
	data, err := io.ReadAll(reader)
	if err != nil {
		log.Printf("open: %v", err)
		setStatus("Error reading file")
		return
	}
	strokes := svg.Import(data)
	board.Replace(strokes)
	setStatus("Loaded %d strokes", len(strokes))
}
