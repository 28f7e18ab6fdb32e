package fifteen

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateSolved      GameStateType = "solved"
	StatePaused      GameStateType = "paused"
	StateError       GameStateType = "error"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Variant       string
	Tiles         [][]int
	Moves         int
	HistoryLen    int
	HistoryCursor int
	PlayTicks     uint64
	State         GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.err != nil:
		state = StateError
	case g.tooSmall:
		state = StatePausedSmall
	case g.solved:
		state = StateSolved
	case g.paused:
		state = StatePaused
	}

	s := Snapshot{
		Tick:      g.tick,
		Variant:   g.variant.ID,
		PlayTicks: g.playTicks,
		State:     state,
	}
	if g.board != nil {
		s.Tiles = g.board.Tiles()
		s.Moves = g.board.Moves()
		s.HistoryLen = g.board.HistoryLen()
		s.HistoryCursor = g.board.HistoryCursor()
	}
	return s
}
