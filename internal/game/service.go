package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"memo-go/internal/game/modes"
	"memo-go/internal/game/ranking"
)

var ErrEmptyName = errors.New("player name is required")

type GameService interface {
	NewGame(ctx context.Context, name string, difficulty modes.Difficulty) (*Game, error)
	ListSaves(ctx context.Context) ([]Snapshot, error)
	LoadGame(ctx context.Context, index int) (*Game, error)
	SaveGame(ctx context.Context, g *Game) error
	PlayTurn(ctx context.Context, g *Game, t *Turn) (Outcome, error)
}

type gameService struct {
	store    SaveStore
	settings Settings
	gen      *BoardGenerator
	logger   *slog.Logger
}

func NewGameService(store SaveStore, settings Settings, gen *BoardGenerator, logger *slog.Logger) GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &gameService{
		store:    store,
		settings: settings,
		gen:      gen,
		logger:   logger,
	}
}

func (s *gameService) NewGame(ctx context.Context, name string, difficulty modes.Difficulty) (*Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	g, err := NewGame(Player{Name: name, Difficulty: difficulty}, s.settings, s.gen)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	s.emitEvent(ctx, EventTypeGameCreated, g,
		slog.String("mode", string(difficulty)),
		slog.Int("size", g.LevelSize()),
	)
	return g, nil
}

func (s *gameService) ListSaves(ctx context.Context) ([]Snapshot, error) {
	saves, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	return saves, nil
}

// LoadGame restores the save at a 1-based position of ListSaves.
func (s *gameService) LoadGame(ctx context.Context, index int) (*Game, error) {
	snap, err := s.store.GetByIndex(ctx, index-1)
	if err != nil {
		if errors.Is(err, ErrSaveNotFound) {
			return nil, fmt.Errorf("%w: no save at position %d: %w", ErrCorruptSnapshot, index, err)
		}
		return nil, fmt.Errorf("failed to load save %d: %w", index, err)
	}
	g, err := Decode(snap, s.settings, s.gen)
	if err != nil {
		return nil, err
	}
	s.emitEvent(ctx, EventTypeGameLoaded, g, slog.Int("index", index))
	return g, nil
}

func (s *gameService) SaveGame(ctx context.Context, g *Game) error {
	if err := s.store.Upsert(ctx, Encode(g)); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	s.emitEvent(ctx, EventTypeGameSaved, g)
	return nil
}

func (s *gameService) PlayTurn(ctx context.Context, g *Game, t *Turn) (Outcome, error) {
	out, err := t.Resolve()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to resolve turn: %w", err)
	}

	s.emitEvent(ctx, EventTypeTurnResolved, g,
		slog.String("outcome", out.Kind.String()),
		slog.String("first", FormatCoord(out.First)),
		slog.String("second", FormatCoord(out.Second)),
	)
	if out.Kind == MatchAndLevelClear {
		s.emitEvent(ctx, EventTypeLevelCleared, g,
			slog.Int("cleared", out.ClearedLevel),
			slog.Int("turns", out.LevelTurns),
			slog.String("rank", ranking.GetRank(out.LevelTurns, out.LevelPairs).Title),
			slog.Bool("complete", out.GameComplete),
		)
	}
	if g.MovesRemaining == 0 || g.Completed {
		s.emitEvent(ctx, EventTypeGameOver, g, slog.Bool("complete", g.Completed))
	}
	return out, nil
}

func (s *gameService) emitEvent(ctx context.Context, eventType EventType, g *Game, attrs ...slog.Attr) {
	base := []slog.Attr{
		slog.String("event", string(eventType)),
		slog.String("player", g.Player.Name),
		slog.Int("level", g.Player.Level),
		slog.Int("points", g.Player.TotalScore),
		slog.Int("level_points", g.Player.LevelScore),
		slog.Int("moves_left", g.MovesRemaining),
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "game event", append(base, attrs...)...)
}
