// Package config provides YAML-based puzzle configuration loading and
// size presets for the fifteen platform.
package config

import (
	"fmt"

	"github.com/vovakirdan/fifteen/internal/puzzle"
)

// FifteenConfig contains all configuration for the sliding-tile puzzle.
type FifteenConfig struct {
	Board BoardConfig `yaml:"board"`
	Play  PlayConfig  `yaml:"play"`
}

// BoardConfig defines the board geometry in pixels.
// The terminal renderer treats one cell as one pixel; web clients use canvas
// pixels.
type BoardConfig struct {
	OffsetX  int `yaml:"offset_x"`
	OffsetY  int `yaml:"offset_y"`
	Width    int `yaml:"width"`  // Tiles per row
	Height   int `yaml:"height"` // Tiles per column
	TileSize int `yaml:"tile_size"`
	Border   int `yaml:"border"`
	Margin   int `yaml:"margin"`
	FontSize int `yaml:"font_size"` // -1 tracks 60% of the tile size
}

// PlayConfig defines how a round is set up.
type PlayConfig struct {
	Shuffle      bool `yaml:"shuffle"`       // Shuffle when a round starts
	Solvable     bool `yaml:"solvable"`      // Fix shuffle parity so the board can be solved
	HistoryLimit int  `yaml:"history_limit"` // 0 keeps every slide
}

// Geometry builds a validated puzzle geometry from the board section.
func (c BoardConfig) Geometry() (puzzle.Geometry, error) {
	g, err := puzzle.NewGeometry(
		puzzle.C(c.OffsetX, c.OffsetY),
		puzzle.C(c.Width, c.Height),
		c.TileSize, c.Border, c.Margin,
	)
	if err != nil {
		return puzzle.Geometry{}, err
	}
	if err := g.SetFontSize(c.FontSize); err != nil {
		return puzzle.Geometry{}, err
	}
	return g, nil
}

// Validate checks the configuration against geometry bounds.
func (c FifteenConfig) Validate() error {
	if _, err := c.Board.Geometry(); err != nil {
		return fmt.Errorf("config: board: %w", err)
	}
	if c.Play.HistoryLimit < 0 {
		return fmt.Errorf("config: play: history_limit %d is negative", c.Play.HistoryLimit)
	}
	return nil
}

// Preset represents a named board size.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
	PresetExpert Preset = "expert"
)

// Presets lists the presets from smallest to largest board.
var Presets = []Preset{PresetEasy, PresetNormal, PresetHard, PresetExpert}

// GridForPreset returns the board side for a preset, 0 if unknown.
func GridForPreset(preset Preset) int {
	switch preset {
	case PresetEasy:
		return 3
	case PresetNormal:
		return 4
	case PresetHard:
		return 5
	case PresetExpert:
		return 6
	default:
		return 0
	}
}

// ApplyPreset modifies the config for a preset. An empty preset leaves the
// config alone.
func ApplyPreset(cfg *FifteenConfig, preset Preset) error {
	if preset == "" {
		return nil
	}
	side := GridForPreset(preset)
	if side == 0 {
		return fmt.Errorf("config: unknown preset %q", preset)
	}
	cfg.Board.Width = side
	cfg.Board.Height = side

	// Larger boards keep roughly the same footprint.
	cfg.Board.TileSize = 400 / side
	return nil
}
