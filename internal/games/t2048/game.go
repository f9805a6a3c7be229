package t2048

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Settings are the player-tunable board options.
// Zero Size and WinTarget keep the variant's own values.
type Settings struct {
	Size        int     // Overrides the classic variant's board size
	WinTarget   int     // Overrides the classic variant's win target
	Spawn4Prob  float64 // Probability that a spawned tile is a 4
	AutoRestart bool    // Start a new game as soon as one is lost
}

// DefaultSettings returns the settings of the classic game.
func DefaultSettings() Settings {
	return Settings{Spawn4Prob: board.DefaultSpawn4Prob}
}

// Package-level settings shared by every game instance
var (
	settingsMu sync.RWMutex
	settings   = DefaultSettings()
)

// Configure replaces the settings used by games created or reset afterwards.
func Configure(s Settings) error {
	if s.Size != 0 && s.Size < board.MinSize {
		return fmt.Errorf("t2048: board size %d below %d", s.Size, board.MinSize)
	}
	if s.WinTarget != 0 && (s.WinTarget < 4 || !board.IsTileValue(s.WinTarget)) {
		return fmt.Errorf("t2048: win target %d is not a power of two >= 4", s.WinTarget)
	}
	if s.Spawn4Prob < 0 || s.Spawn4Prob > 1 {
		return fmt.Errorf("t2048: spawn4 probability %v outside [0, 1]", s.Spawn4Prob)
	}

	settingsMu.Lock()
	settings = s
	settingsMu.Unlock()
	return nil
}

// CurrentSettings returns the settings in effect.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// Game implements registry.Game on top of a board engine.
type Game struct {
	variant Variant
	engine  *board.Engine
	tick    uint64
	best    int // Best score seeded from storage

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused    bool
	tooSmall  bool
	showWin   bool        // Win overlay visible until dismissed
	lastSpawn *board.Cell // Most recently spawned tile
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

// Description returns a one-line summary of the variant.
func (g *Game) Description() string {
	return g.variant.Description
}

// SeedBestScore sets the best score carried into the next Reset.
func (g *Game) SeedBestScore(best int) {
	if best > g.best {
		g.best = best
	}
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.engine != nil && g.engine.BestScore() > g.best {
		g.best = g.engine.BestScore()
	}

	size, target := g.boardShape()
	s := CurrentSettings()

	engine, err := board.New(size,
		board.WithSeed(cfg.Seed),
		board.WithWinTarget(target),
		board.WithSpawn4Prob(s.Spawn4Prob),
		board.WithAutoRestart(s.AutoRestart),
		board.WithBestScore(g.best),
	)
	if err != nil {
		// Variants are static and Configure validates the rest
		panic(fmt.Sprintf("t2048: variant %q: %v", g.variant.ID, err))
	}

	g.engine = engine
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.showWin = false
	g.lastSpawn = nil

	g.checkScreenSize()
}

// boardShape returns the board size and win target after settings overrides.
func (g *Game) boardShape() (size, target int) {
	size, target = g.variant.Size, g.variant.WinTarget
	if g.variant.ID != ClassicID {
		return size, target
	}

	s := CurrentSettings()
	if s.Size != 0 {
		size = s.Size
	}
	if s.WinTarget != 0 {
		target = s.WinTarget
	}
	return size, target
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := boardDims(g.engine.Size())
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+2
}

// Resize adapts to a new screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.engine != nil {
		g.checkScreenSize()
	}
}

// MaxTile returns the highest tile on the board.
func (g *Game) MaxTile() int {
	if g.engine == nil {
		return 0
	}
	return g.engine.MaxTile()
}

// HasWon reports whether the win target was reached this game.
func (g *Game) HasWon() bool {
	return g.engine != nil && g.engine.HasWon()
}

// Engine exposes the underlying board engine.
func (g *Game) Engine() *board.Engine {
	return g.engine
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{BestScore: g.best}
	}
	return core.GameState{
		Score:     g.engine.Score(),
		BestScore: g.engine.BestScore(),
		GameOver:  g.engine.Status() == board.StatusLost,
		Paused:    g.paused || g.tooSmall || g.showWin,
	}
}
