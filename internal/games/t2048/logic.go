package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// directionFor maps the first directional action in the frame to a board direction.
func directionFor(in core.InputFrame) (board.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return board.DirUp, true
	case in.Has(core.ActionDown):
		return board.DirDown, true
	case in.Has(core.ActionLeft):
		return board.DirLeft, true
	case in.Has(core.ActionRight):
		return board.DirRight, true
	}
	return 0, false
}

// Step advances the game by one tick.
// At most one move is applied per tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.engine.Status() == board.StatusLost {
		// Restart is handled by the platform
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// The win overlay swallows input until dismissed
	if g.showWin {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) {
			g.showWin = false
		}
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	return g.processMove(dir)
}

// processMove plays one full turn in the given direction.
func (g *Game) processMove(dir board.Direction) core.StepResult {
	turn, err := g.engine.Play(dir)
	if err != nil || !turn.Changed {
		// Board didn't change, nothing spawned
		return core.StepResult{State: g.State()}
	}

	g.lastSpawn = turn.Spawned
	if turn.Won {
		g.showWin = true
	}

	res := core.StepResult{State: g.State()}
	if turn.Restarted {
		res.Finished = turn.Final
		res.FinishedTile = turn.FinalTile
		res.FinishedWon = turn.FinalWon
		g.showWin = false
	}
	return res
}
