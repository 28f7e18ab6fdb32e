package fifteen

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fifteen/internal/config"
	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/puzzle"
	"github.com/vovakirdan/fifteen/internal/registry"
)

// Package-level settings shared by every game instance. They are set once by
// the CLI before any game is created.
var (
	gameConfig = config.DefaultFifteenConfig()
	logger     = log.New(io.Discard)
)

// SetConfig sets the configuration used by new rounds.
func SetConfig(cfg config.FifteenConfig) {
	gameConfig = cfg
}

// GetConfig returns the configuration used by new rounds.
func GetConfig() config.FifteenConfig {
	return gameConfig
}

// SetLogger sets the logger handed to each board.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the sliding-tile puzzle.
type Game struct {
	variant Variant
	cfg     config.FifteenConfig
	rng     *rand.Rand
	board   *puzzle.Board

	tick      uint64
	playTicks uint64 // Ticks since the first slide, frozen once solved
	tickRate  int

	// Screen dimensions
	screenW int
	screenH int
	layout  layout
	buttons []Button

	// Game state flags
	started   bool // A slide has been made this round
	scrambled bool // Round began from a shuffled board; only these can be solved
	solved    bool
	paused    bool
	tooSmall  bool
	err       error
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.cfg = gameConfig
	if g.variant.Side > 0 {
		g.cfg.Board.Width = g.variant.Side
		g.cfg.Board.Height = g.variant.Side
	}

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.err = nil

	g.newRound()
}

// newRound builds a fresh board and scrambles it.
func (g *Game) newRound() {
	g.playTicks = 0
	g.started = false
	g.scrambled = false
	g.solved = false

	geom, err := g.cfg.Board.Geometry()
	if err != nil {
		g.err = err
		return
	}

	board, err := puzzle.NewBoard(geom,
		puzzle.WithRand(rand.New(rand.NewSource(g.rng.Int63()))),
		puzzle.WithHistoryLimit(g.cfg.Play.HistoryLimit),
		puzzle.WithLogger(logger.With("game", g.variant.ID)),
	)
	if err != nil {
		g.err = err
		return
	}
	g.board = board

	if g.cfg.Play.Shuffle {
		g.scramble()
	}
	g.relayout()
}

// scramble shuffles until the board is not already solved and restarts the
// round clock.
func (g *Game) scramble() {
	for {
		if g.cfg.Play.Solvable {
			g.board.ShuffleSolvable()
		} else {
			g.board.Shuffle()
		}
		if !g.board.CheckWin() {
			break
		}
	}
	g.scrambled = true
	g.started = false
	g.playTicks = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.err != nil {
		return core.StepResult{State: g.State(), Err: g.err}
	}

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.paused = false
		g.newRound()
		return g.result()
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.solved {
		g.paused = !g.paused
	}
	if g.paused || g.solved {
		return core.StepResult{State: g.State()}
	}

	slides := 0
	for _, a := range []core.Action{core.ActionUndo, core.ActionRedo, core.ActionShuffle, core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if !in.Has(a) {
			continue
		}
		slides += g.apply(a)
		if a == core.ActionShuffle {
			slides = 0
		}
	}
	if in.Pointer != nil {
		slides += g.press(*in.Pointer)
	}
	if g.err != nil {
		return g.result()
	}

	if slides > 0 {
		g.started = true
		if g.scrambled && g.board.CheckWin() {
			g.solved = true
			logger.Info("puzzle solved", "game", g.variant.ID, "moves", g.board.Moves(), "ticks", g.playTicks)
			return g.result()
		}
	}
	if g.started {
		g.playTicks++
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Err: g.err}
}

// apply runs one action and returns the number of slides it made.
func (g *Game) apply(a core.Action) int {
	switch a {
	case core.ActionUndo:
		return g.check(g.board.Undo())
	case core.ActionRedo:
		return g.check(g.board.Redo())
	case core.ActionShuffle:
		g.scramble()
		return 0
	case core.ActionRestart:
		g.newRound()
		return 0
	case core.ActionUp:
		return g.slideToward(puzzle.Down)
	case core.ActionDown:
		return g.slideToward(puzzle.Up)
	case core.ActionLeft:
		return g.slideToward(puzzle.Right)
	case core.ActionRight:
		return g.slideToward(puzzle.Left)
	}
	return 0
}

// slideToward touches the neighbor of the empty cell in direction dir, so an
// arrow moves the tile the arrow points at the gap from.
func (g *Game) slideToward(dir puzzle.Coord) int {
	empty, err := g.board.EmptyCell()
	if err != nil {
		g.err = err
		return 0
	}

	cell := empty.Add(dir)
	size := g.board.Geometry().GridSize()
	if cell.X < 0 || cell.X >= size.X || cell.Y < 0 || cell.Y >= size.Y {
		return 0
	}

	n, err := g.board.Touch(cell)
	if err != nil {
		g.err = err
	}
	return n
}

// press routes a pointer press to a button or the board.
func (g *Game) press(p core.Pointer) int {
	for _, b := range g.buttons {
		if b.Rect.Contains(p.X, p.Y) {
			return g.apply(b.Action)
		}
	}

	n, err := g.board.TouchPoint(toPixel(p))
	if err != nil {
		g.err = err
	}
	return n
}

// check converts an undo/redo result into a slide count.
func (g *Game) check(ok bool, err error) int {
	if err != nil {
		g.err = err
		return 0
	}
	if ok {
		return 1
	}
	return 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	moves := 0
	if g.board != nil {
		moves = g.board.Moves()
	}
	return core.GameState{
		Moves:    moves,
		Ticks:    g.playTicks,
		Solved:   g.solved,
		GameOver: g.solved || g.err != nil,
		Paused:   g.paused || g.tooSmall,
	}
}

// Resize refits the board to a new screen size without starting a new round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.relayout()
}

// GridSize returns the current board dimensions.
func (g *Game) GridSize() (w, h int) {
	return g.cfg.Board.Width, g.cfg.Board.Height
}

// Elapsed returns the play time in whole seconds.
func (g *Game) Elapsed() int {
	if g.tickRate <= 0 {
		return 0
	}
	return int(g.playTicks) / g.tickRate
}
