// Package board implements the 2048 board engine: an N×N grid of tiles,
// directional slide-and-merge moves, random tile spawning, scoring and
// win/loss detection. It has no knowledge of rendering or input devices.
//
// A caller drives one turn per input event:
//
//	res, err := e.Move(board.DirLeft)
//	if err == nil && res.Changed {
//		e.SpawnTile()
//	}
//	status := e.Status()
//
// Play bundles that cycle into a single call.
package board

import (
	"fmt"
	"math/rand"
	"time"
)

// Defaults for the classic game.
const (
	DefaultSize       = 4
	DefaultWinTarget  = 2048
	DefaultSpawn4Prob = 0.10
	InitialTiles      = 2
)

// Status is the game status derived from the board.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// MoveResult reports the outcome of a single directional move.
type MoveResult struct {
	Changed    bool
	ScoreDelta int
}

// Turn is the outcome of a full move → spawn → check cycle.
type Turn struct {
	MoveResult

	Spawned   *Cell // Tile placed after the move, nil when nothing spawned
	Won       bool  // Threshold reached for the first time this game
	Lost      bool  // No move remains after this turn
	Restarted bool  // Lost triggered an automatic new game
	Final     int   // Score of the finished game when Lost
	FinalTile int   // Highest tile of the finished game when Lost
	FinalWon  bool  // Whether the finished game reached the target
}

// Engine owns the board, score and game flags.
// It is not safe for concurrent use.
type Engine struct {
	grid        Grid
	score       int
	best        int
	won         bool
	rng         *rand.Rand
	winTarget   int
	spawn4Prob  float64
	autoRestart bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source used for spawning.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithSeed seeds a private random source. Seed 0 keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithWinTarget sets the tile value that wins the game.
func WithWinTarget(target int) Option {
	return func(e *Engine) {
		e.winTarget = target
	}
}

// WithSpawn4Prob sets the probability of spawning a 4 instead of a 2.
func WithSpawn4Prob(p float64) Option {
	return func(e *Engine) {
		e.spawn4Prob = p
	}
}

// WithAutoRestart starts a new game automatically when no move remains.
func WithAutoRestart(on bool) Option {
	return func(e *Engine) {
		e.autoRestart = on
	}
}

// WithBestScore seeds the best score, e.g. from a score store.
func WithBestScore(best int) Option {
	return func(e *Engine) {
		e.best = best
	}
}

// New creates an engine with a size×size board and starts a new game.
func New(size int, opts ...Option) (*Engine, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		grid:       grid,
		winTarget:  DefaultWinTarget,
		spawn4Prob: DefaultSpawn4Prob,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.validate(); err != nil {
		return nil, err
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.NewGame()
	return e, nil
}

func (e *Engine) validate() error {
	if e.winTarget < 4 || !IsTileValue(e.winTarget) {
		return fmt.Errorf("%w: win target %d must be a power of two >= 4", ErrInvalidConfig, e.winTarget)
	}
	if e.spawn4Prob < 0 || e.spawn4Prob > 1 {
		return fmt.Errorf("%w: spawn-4 probability %v outside [0, 1]", ErrInvalidConfig, e.spawn4Prob)
	}
	if e.best < 0 {
		return fmt.Errorf("%w: negative best score %d", ErrInvalidConfig, e.best)
	}
	return nil
}

// NewGame clears the board, resets score and win flag, and spawns the
// initial tiles. The best score is kept.
func (e *Engine) NewGame() {
	for i := range e.grid.cells {
		e.grid.cells[i] = 0
	}
	e.score = 0
	e.won = false

	for range InitialTiles {
		e.SpawnTile()
	}
}

// Move slides the board in dir. Score increases by the merged values.
// It never spawns a tile.
func (e *Engine) Move(dir Direction) (MoveResult, error) {
	next, delta, changed, err := Slide(e.grid, dir)
	if err != nil {
		return MoveResult{}, err
	}
	if !changed {
		return MoveResult{}, nil
	}

	e.grid = next
	e.addScore(delta)
	e.checkWin()

	return MoveResult{Changed: true, ScoreDelta: delta}, nil
}

// SpawnTile places a 2 (or a 4 with the configured probability) in a
// uniformly chosen empty cell. Returns false when the board is full.
func (e *Engine) SpawnTile() (Cell, bool) {
	empty := e.grid.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, false
	}

	cell := empty[e.rng.Intn(len(empty))]

	cell.Value = 2
	if e.rng.Float64() < e.spawn4Prob {
		cell.Value = 4
	}

	e.grid.cells[cell.Row*e.grid.size+cell.Col] = cell.Value
	e.checkWin()
	return cell, true
}

// Play runs one full turn: move, spawn when the board changed, then check
// for win and loss.
func (e *Engine) Play(dir Direction) (Turn, error) {
	wasWon := e.won

	res, err := e.Move(dir)
	if err != nil {
		return Turn{}, err
	}

	turn := Turn{MoveResult: res}
	if !res.Changed {
		return turn, nil
	}

	if cell, ok := e.SpawnTile(); ok {
		turn.Spawned = &cell
	}
	turn.Won = !wasWon && e.won

	if !e.grid.CanMove() {
		turn.Lost = true
		turn.Final = e.score
		turn.FinalTile = e.grid.MaxTile()
		turn.FinalWon = e.won
		if e.autoRestart {
			e.NewGame()
			turn.Restarted = true
		}
	}

	return turn, nil
}

func (e *Engine) addScore(delta int) {
	e.score += delta
	if e.score > e.best {
		e.best = e.score
	}
}

func (e *Engine) checkWin() {
	if !e.won && e.grid.MaxTile() >= e.winTarget {
		e.won = true
	}
}

// Load replaces the board and score, e.g. to restore a position.
// The win flag is recomputed from the new board.
func (e *Engine) Load(rows [][]int, score int) error {
	g, err := GridFromRows(rows)
	if err != nil {
		return err
	}
	if g.size != e.grid.size {
		return fmt.Errorf("%w: %dx%d board loaded into %dx%d engine", ErrInvalidConfig, g.size, g.size, e.grid.size, e.grid.size)
	}
	if score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidConfig, score)
	}

	e.grid = g
	e.score = 0
	e.won = false
	e.addScore(score)
	e.checkWin()
	return nil
}

// Cell returns the tile value at (row, col).
func (e *Engine) Cell(row, col int) (int, error) {
	return e.grid.Get(row, col)
}

// Size returns the board dimension.
func (e *Engine) Size() int {
	return e.grid.size
}

// Grid returns a copy of the board.
func (e *Engine) Grid() Grid {
	return e.grid.Clone()
}

// Score returns the current game's score.
func (e *Engine) Score() int {
	return e.score
}

// BestScore returns the highest score seen by this engine.
func (e *Engine) BestScore() int {
	return e.best
}

// WinTarget returns the tile value that wins the game.
func (e *Engine) WinTarget() int {
	return e.winTarget
}

// CanMove reports whether any legal move remains.
func (e *Engine) CanMove() bool {
	return e.grid.CanMove()
}

// HasWon reports whether the win threshold was reached this game.
func (e *Engine) HasWon() bool {
	return e.won
}

// MaxTile returns the highest tile on the board.
func (e *Engine) MaxTile() int {
	return e.grid.MaxTile()
}

// Status returns Lost when no move remains, otherwise Won once the
// threshold has been reached, otherwise InProgress.
func (e *Engine) Status() Status {
	switch {
	case !e.grid.CanMove():
		return StatusLost
	case e.won:
		return StatusWon
	default:
		return StatusInProgress
	}
}

// Snapshot captures the engine state for determinism testing and display.
type Snapshot struct {
	Size      int
	Score     int
	BestScore int
	WinTarget int
	MaxTile   int
	Status    Status
	Rows      [][]int
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Size:      e.grid.size,
		Score:     e.score,
		BestScore: e.best,
		WinTarget: e.winTarget,
		MaxTile:   e.grid.MaxTile(),
		Status:    e.Status(),
		Rows:      e.grid.Rows(),
	}
}
