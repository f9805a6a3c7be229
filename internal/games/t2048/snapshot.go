package t2048

import "github.com/vovakirdan/tui-2048/internal/board"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateWinOverlay  GameStateType = "win"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Score     int
	BestScore int
	WinTarget int
	Board     [][]int
	MaxTile   int
	Won       bool        // Target reached at some point this game
	Spawned   *board.Cell // Tile placed by the last move
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.Status() == board.StatusLost:
		state = StateGameOver
	case g.showWin:
		state = StateWinOverlay
	case g.paused:
		state = StatePaused
	}

	es := g.engine.Snapshot()
	return Snapshot{
		Tick:      g.tick,
		Variant:   g.variant.ID,
		Score:     es.Score,
		BestScore: es.BestScore,
		WinTarget: es.WinTarget,
		Board:     es.Rows,
		MaxTile:   es.MaxTile,
		Won:       g.engine.HasWon(),
		Spawned:   g.lastSpawn,
		State:     state,
	}
}
