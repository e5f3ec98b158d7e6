package game

import (
	"fmt"

	"memo-go/internal/game/modes"
)

// MoveBudget returns the moves allowed on a level: every cell once (twice in easy
// mode), plus one extra move after the first level to cover the turn that
// cleared the previous grid.
func MoveBudget(level int, sizes []int, d modes.Difficulty) int {
	if level < 0 || level >= len(sizes) {
		return 0
	}
	size := sizes[level]
	budget := size * size * modes.BudgetMultiplier(d)
	if level > 0 {
		budget++
	}
	return budget
}

// AdvanceLevel moves the player to the next level with a fresh board and budget.
// Clearing the last level of the table marks the game completed instead.
func (g *Game) AdvanceLevel() error {
	next, err := g.prepareNextLevel()
	if err != nil {
		return err
	}
	g.advanceTo(next)
	return nil
}

// prepareNextLevel generates the board of the level after the current one, or
// returns nil when the current level is the last.
func (g *Game) prepareNextLevel() (*Board, error) {
	level := g.Player.Level + 1
	if level >= len(g.settings.LevelSizes) {
		return nil, nil
	}
	size, err := g.settings.SizeOf(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	board, err := g.gen.Generate(size, g.settings.Alphabet, g.settings.Hidden)
	if err != nil {
		return nil, fmt.Errorf("failed to generate board: %w", err)
	}
	return &board, nil
}

// advanceTo installs next as the new level, or completes the game when next is nil.
func (g *Game) advanceTo(next *Board) {
	if next == nil {
		g.Completed = true
		return
	}
	g.Player.Level++
	g.Player.LevelScore = 0
	g.LeveledUp = true
	g.Board = *next
	g.MovesRemaining = MoveBudget(g.Player.Level, g.settings.LevelSizes, g.Player.Difficulty)
}
