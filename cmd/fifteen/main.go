// fifteen is a sliding-tile puzzle for the terminal, SSH and the browser.
//
// Usage:
//
//	fifteen list              - List available boards
//	fifteen play [board]      - Play a board (default: fifteen)
//	fifteen menu              - Start menu to pick boards interactively
//	fifteen serve             - Start SSH server for remote play
//	fifteen web               - Start HTTP server with websocket pushes
//	fifteen scores [board]    - Show best solves for a board
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible shuffles
//	--db <path>           - Set database path (default: ~/.fifteen/solves.db)
//	--config <path>       - Load puzzle config from a YAML file
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/config"
	"github.com/vovakirdan/fifteen/internal/games/fifteen"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// logFile is closed when the command finishes.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fifteen",
	Short: "Fifteen - the sliding-tile puzzle in your terminal",
	Long: `Fifteen is the classic sliding-tile puzzle. Click a tile in line with
the gap and every tile between them slides over.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker menu
  serve    - Start SSH server for remote play
  web      - Start HTTP server for browser clients
  scores   - View best solves

Examples:
  fifteen list
  fifteen play
  fifteen play eight
  fifteen menu
  fifteen serve --ssh :2222
  fifteen web --http :8080
  fifteen scores fifteen`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fifteen/solves.db", "Path to solves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom puzzle config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger. The terminal UI owns stdout, so
// interactive commands log only to --log-file; servers fall back to stderr.
func newLogger(interactive bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case interactive:
		w = io.Discard
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "fifteen",
	}), nil
}

// setup loads the puzzle config and hands it, with the logger, to the game
// package. It returns the loaded config for callers that build boards
// themselves.
func setup(interactive bool) (config.FifteenConfig, *log.Logger, error) {
	logger, err := newLogger(interactive)
	if err != nil {
		return config.FifteenConfig{}, nil, err
	}

	cfg, err := config.LoadFifteen(flagConfig)
	if err != nil {
		return cfg, logger, err
	}
	logger.Debug("config loaded", "grid", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"shuffle", cfg.Play.Shuffle, "solvable", cfg.Play.Solvable)

	fifteen.SetConfig(cfg)
	fifteen.SetLogger(logger.With("component", "board"))
	return cfg, logger, nil
}
