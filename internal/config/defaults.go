package config

import (
	_ "embed"

	"github.com/vovakirdan/fifteen/internal/puzzle"
)

//go:embed defaults/fifteen.yaml
var defaultFifteenYAML []byte

// DefaultFifteenConfig returns the default puzzle configuration.
func DefaultFifteenConfig() FifteenConfig {
	return FifteenConfig{
		Board: BoardConfig{
			OffsetX:  250,
			OffsetY:  100,
			Width:    4,
			Height:   4,
			TileSize: 100,
			Border:   4,
			Margin:   2,
			FontSize: puzzle.DefaultFontSize,
		},
		Play: PlayConfig{
			Shuffle:      true,
			Solvable:     true,
			HistoryLimit: 0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFifteenYAML
}
