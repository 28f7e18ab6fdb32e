package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fifteen/internal/config"
	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/games/fifteen"
	"github.com/vovakirdan/fifteen/internal/platform/tui"
	"github.com/vovakirdan/fifteen/internal/registry"
	"github.com/vovakirdan/fifteen/internal/storage"
)

var flagPreset string

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the specified board (default: fifteen).

Controls:
  Mouse click      - Slide the clicked tile and everything between it and the gap
  Arrows/WASD      - Slide the tile next to the gap
  U / Ctrl+Z       - Undo
  Y / Ctrl+Y       - Redo
  X                - Shuffle
  P                - Pause
  R                - Restart
  ?                - Full help
  Q/Ctrl+C         - Quit

Presets (resize the configurable board):
  easy   - 3x3
  normal - 4x4
  hard   - 5x5
  expert - 6x6

Examples:
  fifteen play
  fifteen play eight
  fifteen play --preset hard
  fifteen play --config ./my-fifteen.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Board preset: easy, normal, hard, expert")
}

// terminalConfig sizes the runtime to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the solves database. A failure is logged and play goes on
// without records.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open solves database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open solves database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "fifteen"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q, run 'fifteen list' to see available boards", gameID)
	}

	cfg, logger, err := setup(true)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&cfg, config.Preset(flagPreset)); err != nil {
		return err
	}
	fifteen.SetConfig(cfg)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "preset", flagPreset)
	return tui.Run(game, store, terminalConfig(), logger)
}
