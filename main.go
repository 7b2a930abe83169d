package main

import (
	"log"
	"os"

	"github.com/sw2go/ng-whiteboard/internal/config"
	"github.com/sw2go/ng-whiteboard/internal/state"
	"github.com/sw2go/ng-whiteboard/internal/svg"
	"github.com/sw2go/ng-whiteboard/internal/ui"
)

func main() {
	cfg := config.Load(config.Path())

	var initial []state.Stroke
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Printf("open %s: %v", os.Args[1], err)
		} else {
			initial = svg.Import(data)
			log.Printf("loaded %d strokes from %s", len(initial), os.Args[1])
		}
	}

	ui.RunApp(cfg, initial)
}
