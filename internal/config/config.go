// Package config loads user preferences from a TOML file. A missing or
// broken file never stops the app; it just means defaults.
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the adjustable knobs of the board.
type Config struct {
	Color         string  `toml:"color"`
	StrokeWidth   float64 `toml:"stroke_width"`
	EraserScale   float64 `toml:"eraser_scale"`
	LogicalHeight float64 `toml:"logical_height"`
	WindowWidth   float32 `toml:"window_width"`
	WindowHeight  float32 `toml:"window_height"`
	MinZoomWidth  float64 `toml:"min_zoom_width"`
	MaxZoomWidth  float64 `toml:"max_zoom_width"`
}

// Default returns the built-in preferences.
func Default() Config {
	return Config{
		Color:         "#000000",
		StrokeWidth:   3,
		EraserScale:   2,
		LogicalHeight: 600,
		WindowWidth:   1024,
		WindowHeight:  768,
		MinZoomWidth:  10,
		MaxZoomWidth:  100000,
	}
}

// Path returns the preferences file location under the user config dir.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ng-whiteboard.toml"
	}
	return filepath.Join(dir, "ng-whiteboard", "config.toml")
}

// Load reads path, filling any unset field from the defaults. A missing
// file is normal; a malformed one is logged and ignored.
func Load(path string) Config {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.Printf("config: ignoring %s: %v", path, err)
		return Default()
	}
	if cfg.StrokeWidth <= 0 {
		cfg.StrokeWidth = Default().StrokeWidth
	}
	if cfg.EraserScale <= 0 {
		cfg.EraserScale = Default().EraserScale
	}
	if cfg.LogicalHeight <= 0 {
		cfg.LogicalHeight = Default().LogicalHeight
	}
	if cfg.Color == "" {
		cfg.Color = Default().Color
	}
	return cfg
}
