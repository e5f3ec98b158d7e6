package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-go/internal/game/modes"
)

func TestMoveBudget(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		sizes    []int
		mode     modes.Difficulty
		expected int
	}{
		{"Level 0 size 1 easy", 0, []int{1}, modes.Easy, 2},
		{"Level 1 size 3 hard", 1, []int{2, 3}, modes.Hard, 10},
		{"Level 0 size 2 hard", 0, []int{2, 4}, modes.Hard, 4},
		{"Level 2 size 6 easy", 2, []int{2, 4, 6}, modes.Easy, 73},
		{"Outside the table", 3, []int{2, 4, 6}, modes.Easy, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MoveBudget(tt.level, tt.sizes, tt.mode))
		})
	}
}

func TestAdvanceLevel(t *testing.T) {
	g, err := NewGame(Player{Name: "bob", Difficulty: modes.Hard}, testSettings(), NewBoardGenerator(3))
	require.NoError(t, err)
	g.Player.LevelScore = 5
	g.Player.TotalScore = 5

	require.NoError(t, g.AdvanceLevel())
	assert.Equal(t, 1, g.Player.Level)
	assert.Equal(t, 0, g.Player.LevelScore)
	assert.Equal(t, 5, g.Player.TotalScore)
	assert.True(t, g.LeveledUp)
	assert.Equal(t, 4, g.LevelSize())
	assert.Equal(t, 16, g.Board.Overlay.Count(hidden))
	assert.Equal(t, 17, g.MovesRemaining)

	require.NoError(t, g.AdvanceLevel())
	require.NoError(t, g.AdvanceLevel())
	assert.True(t, g.Completed)
	assert.Equal(t, 2, g.Player.Level)
}
