package game

import (
	"errors"
	"fmt"

	"memo-go/internal/game/modes"
)

var (
	ErrConfig          = errors.New("invalid configuration")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	ErrInvalidMove     = errors.New("invalid move")
	ErrSaveNotFound    = errors.New("save not found")
	ErrNoMovesLeft     = errors.New("no moves left")
	ErrGameComplete    = errors.New("all levels cleared")
	ErrTurnState       = errors.New("action not allowed in the current turn state")
)

// Game is the authoritative state of one session. It is not safe for
// concurrent use.
type Game struct {
	Player         Player
	Board          Board
	MovesRemaining int
	// LeveledUp is set by the turn that cleared a level and reset when the next
	// turn begins.
	LeveledUp bool
	// Completed is set once the last level of the table has been cleared.
	Completed bool

	settings Settings
	gen      *BoardGenerator
}

// NewGame starts player at level 0 on a freshly generated board.
func NewGame(player Player, settings Settings, gen *BoardGenerator) (*Game, error) {
	if err := modes.Validate(player.Difficulty); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	player.Level = 0
	player.LevelScore = 0
	g := &Game{Player: player, settings: settings, gen: gen}
	if err := g.startLevel(nil); err != nil {
		return nil, err
	}
	return g, nil
}

// Restore rebuilds a game around a board that was already in play. The move
// budget restarts for the player's level.
func Restore(player Player, board Board, settings Settings, gen *BoardGenerator) (*Game, error) {
	if err := modes.Validate(player.Difficulty); err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}
	g := &Game{Player: player, settings: settings, gen: gen}
	if err := g.startLevel(&board); err != nil {
		return nil, err
	}
	if g.Board.Overlay.Count(settings.Hidden) == 0 {
		if player.Level != len(settings.LevelSizes)-1 {
			return nil, fmt.Errorf("%w: level %d is fully revealed but %d levels remain",
				ErrCorruptSnapshot, player.Level, len(settings.LevelSizes)-1-player.Level)
		}
		g.Completed = true
	}
	return g, nil
}

// Settings returns the configuration the game was built with.
func (g *Game) Settings() Settings {
	return g.settings
}

// LevelSize returns the grid size of the current level.
func (g *Game) LevelSize() int {
	return g.Board.Solution.Size()
}

// startLevel installs board, or generates one when board is nil, and resets the
// move budget for the current level.
func (g *Game) startLevel(board *Board) error {
	size, err := g.settings.SizeOf(g.Player.Level)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if board == nil {
		generated, err := g.gen.Generate(size, g.settings.Alphabet, g.settings.Hidden)
		if err != nil {
			return fmt.Errorf("failed to generate board: %w", err)
		}
		board = &generated
	}
	g.Board = *board
	g.MovesRemaining = MoveBudget(g.Player.Level, g.settings.LevelSizes, g.Player.Difficulty)
	return nil
}

// BeginTurn opens a new turn. It fails without touching the state when the
// session is over.
func (g *Game) BeginTurn() (*Turn, error) {
	if err := g.checkPlayable(); err != nil {
		return nil, err
	}
	g.LeveledUp = false
	return &Turn{game: g, state: AwaitingFirstPick, view: g.Board.Overlay.Clone()}, nil
}

func (g *Game) checkPlayable() error {
	if g.Completed {
		return ErrGameComplete
	}
	if g.MovesRemaining <= 0 {
		return ErrNoMovesLeft
	}
	return nil
}

// ValidatePick checks that c can be revealed this turn.
func (g *Game) ValidatePick(c Coord) error {
	if !g.Board.Overlay.Contains(c) {
		return fmt.Errorf("%w: cell (%d,%d) is outside the %dx%d grid",
			ErrInvalidMove, c.Row, c.Col, g.LevelSize(), g.LevelSize())
	}
	if g.Board.Overlay.At(c) != g.settings.Hidden {
		return fmt.Errorf("%w: cell %s is already revealed", ErrInvalidMove, FormatCoord(c))
	}
	return nil
}

// Classify returns the outcome first and second would produce without
// changing anything.
func (g *Game) Classify(first, second Coord) OutcomeKind {
	if first == second {
		return SameCell
	}
	if g.Board.Solution.At(first) != g.Board.Solution.At(second) {
		return Mismatch
	}
	hidden := g.Board.Overlay.Count(g.settings.Hidden)
	for _, c := range []Coord{first, second} {
		if g.Board.Overlay.At(c) == g.settings.Hidden {
			hidden--
		}
	}
	if hidden == 0 {
		return MatchAndLevelClear
	}
	return Match
}

// ResolveTurn applies a pair of picks. Every resolved turn costs one move and
// scores one point, same-cell picks included. A cleared level advances the game
// before the turn is charged, so the new level starts with a level score of 0.
func (g *Game) ResolveTurn(first, second Coord) (Outcome, error) {
	if err := g.checkPlayable(); err != nil {
		return Outcome{}, err
	}
	for _, c := range []Coord{first, second} {
		if err := g.ValidatePick(c); err != nil {
			return Outcome{}, err
		}
	}

	out := Outcome{Kind: g.Classify(first, second), First: first, Second: second}

	// The next board is built before anything changes so a failure leaves the
	// game as it was.
	var next *Board
	if out.Kind == MatchAndLevelClear {
		var err error
		if next, err = g.prepareNextLevel(); err != nil {
			return Outcome{}, fmt.Errorf("failed to advance level: %w", err)
		}
	}

	if out.Kind == Match || out.Kind == MatchAndLevelClear {
		g.Board.Overlay.Set(first, g.Board.Solution.At(first))
		g.Board.Overlay.Set(second, g.Board.Solution.At(second))
	}

	advanced := false
	if out.Kind == MatchAndLevelClear {
		out.ClearedLevel = g.Player.Level
		out.LevelTurns = g.Player.LevelScore + 1
		out.LevelPairs = g.LevelSize() * g.LevelSize() / 2
		g.advanceTo(next)
		out.NewLevel = g.Player.Level
		out.GameComplete = g.Completed
		advanced = !g.Completed
	}

	g.Player.TotalScore++
	if !advanced {
		g.Player.LevelScore++
	}
	g.MovesRemaining--
	return out, nil
}
