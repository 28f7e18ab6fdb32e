package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/registry"
	"github.com/vovakirdan/fifteen/internal/storage"
)

// helpRows is the number of terminal rows kept below the game for the help bar.
const helpRows = 1

// solveInfo is implemented by games that can describe a finished round.
type solveInfo interface {
	GridSize() (w, h int)
	Elapsed() int
}

// Model is the Bubble Tea model for running a puzzle game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	tickGen    uint64
	err        error
	quitting   bool
	backToMenu bool
	solveSaved bool // Whether the current solve has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		tickGen:    nextTickGen(),
	}
}

// gameHeight returns the rows left for the game once the help bar is placed.
func gameHeight(screenH int) int {
	return max(screenH-helpRows, 0)
}

// gameConfig returns the runtime config as the game sees it.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns a left click into a pointer press for the next tick.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.Press(msg.X, msg.Y)
	}
	return m, nil
}

// handleResize refits the game to the new window. Games that cannot refit
// start a new round.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick advances the game by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if result.Err != nil {
		m.err = result.Err
		m.logger.Error("game stopped", "game", m.game.ID(), "error", result.Err)
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameState.Solved && !m.solveSaved {
		m.recordSolve()
	}
	if !m.gameState.GameOver {
		m.solveSaved = false
	}

	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// recordSolve stores the finished round. Storage failures are logged and the
// game carries on.
func (m *Model) recordSolve() {
	m.solveSaved = true
	if m.store == nil {
		return
	}

	var w, h, secs int
	if info, ok := m.game.(solveInfo); ok {
		w, h = info.GridSize()
		secs = info.Elapsed()
	} else if m.config.TickRate > 0 {
		secs = int(m.gameState.Ticks) / m.config.TickRate
	}

	id, err := m.store.SaveSolve(m.game.ID(), m.gameState.Moves, secs, w, h)
	if err != nil {
		m.logger.Warn("could not save solve", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Info("solve saved", "game", m.game.ID(), "id", id, "moves", m.gameState.Moves, "secs", secs)
}

// saveScreenshot writes the current screen to ~/.fifteen/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".fifteen", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game above the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	board := RenderScreen(m.screen)

	helpView := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(m.help.View(m.keys))

	// The full help view is taller than its reserved row; it covers the
	// bottom of the board instead of pushing the frame off screen.
	if extra := lipgloss.Height(helpView) - helpRows; extra > 0 {
		lines := strings.Split(board, "\n")
		if extra < len(lines) {
			lines = lines[:len(lines)-extra]
		}
		board = strings.Join(lines, "\n")
	}

	return board + "\n" + helpView
}

// Err returns the fault that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game until the user quits or goes back. It returns the fault
// that stopped the game, if any.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return fmt.Errorf("%s: %w", game.ID(), m.Err())
	}
	return nil
}
