package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memo-go/internal/game/modes"
)

func TestServiceNewGame(t *testing.T) {
	mockStore := new(MockSaveStore)
	service := NewGameService(mockStore, testSettings(), NewBoardGenerator(1), discardLogger())
	ctx := context.Background()

	g, err := service.NewGame(ctx, "  alice ", modes.Hard)
	require.NoError(t, err)
	assert.Equal(t, "alice", g.Player.Name)
	assert.Equal(t, modes.Hard, g.Player.Difficulty)
	assert.Equal(t, 4, g.MovesRemaining)

	_, err = service.NewGame(ctx, "   ", modes.Easy)
	assert.ErrorIs(t, err, ErrEmptyName)

	mockStore.AssertExpectations(t)
}

func TestServiceSaveGame(t *testing.T) {
	mockStore := new(MockSaveStore)
	service := NewGameService(mockStore, testSettings(), NewBoardGenerator(1), discardLogger())
	ctx := context.Background()
	g := restoredGame(t, testSettings(), modes.Easy)

	mockStore.On("Upsert", ctx, Encode(g)).Return(nil).Once()
	require.NoError(t, service.SaveGame(ctx, g))

	mockStore.On("Upsert", ctx, mock.AnythingOfType("game.Snapshot")).Return(errors.New("disk full")).Once()
	err := service.SaveGame(ctx, g)
	assert.ErrorContains(t, err, "disk full")

	mockStore.AssertExpectations(t)
}

func TestServiceLoadGame(t *testing.T) {
	mockStore := new(MockSaveStore)
	service := NewGameService(mockStore, testSettings(), NewBoardGenerator(1), discardLogger())
	ctx := context.Background()

	saved := Snapshot{Joueur: "bob", Mode: "Facile", Points: 3, LevelPoints: 3, Tables: symbols("A**A"), Solution: symbols("ABBA")}
	mockStore.On("GetByIndex", ctx, 0).Return(saved, nil)
	mockStore.On("GetByIndex", ctx, 4).Return(Snapshot{}, ErrSaveNotFound)
	mockStore.On("GetByIndex", ctx, 1).Return(Snapshot{}, errors.New("connection reset"))

	g, err := service.LoadGame(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "bob", g.Player.Name)
	assert.Equal(t, 3, g.Player.TotalScore)
	assert.Equal(t, 8, g.MovesRemaining)

	_, err = service.LoadGame(ctx, 5)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	assert.ErrorIs(t, err, ErrSaveNotFound)

	_, err = service.LoadGame(ctx, 2)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptSnapshot)

	mockStore.AssertExpectations(t)
}

func TestServiceListSaves(t *testing.T) {
	mockStore := new(MockSaveStore)
	service := NewGameService(mockStore, testSettings(), NewBoardGenerator(1), discardLogger())
	ctx := context.Background()

	saves := []Snapshot{{Joueur: "a"}, {Joueur: "b"}}
	mockStore.On("List", ctx).Return(saves, nil)

	got, err := service.ListSaves(ctx)
	require.NoError(t, err)
	assert.Equal(t, saves, got)
	mockStore.AssertExpectations(t)
}

func TestServicePlayTurn(t *testing.T) {
	mockStore := new(MockSaveStore)
	service := NewGameService(mockStore, testSettings(), NewBoardGenerator(1), discardLogger())
	ctx := context.Background()
	g := restoredGame(t, testSettings(), modes.Easy)

	turn, err := g.BeginTurn()
	require.NoError(t, err)
	_, err = service.PlayTurn(ctx, g, turn)
	assert.ErrorIs(t, err, ErrTurnState)

	_, err = turn.Pick(Coord{0, 0})
	require.NoError(t, err)
	_, err = turn.Pick(Coord{1, 1})
	require.NoError(t, err)

	out, err := service.PlayTurn(ctx, g, turn)
	require.NoError(t, err)
	assert.Equal(t, Match, out.Kind)
	assert.Equal(t, 7, g.MovesRemaining)
}
