package game

import (
	"errors"
	"fmt"

	"memo-go/internal/game/modes"
)

// Snapshot is the flat, persisted form of a game. Field names follow the save
// record layout shared by every store.
type Snapshot struct {
	Joueur      string   `json:"Joueur"`
	Level       int      `json:"Level"`
	Mode        string   `json:"Mode"`
	Points      int      `json:"Points"`
	LevelPoints int      `json:"Level_points"`
	Tables      []Symbol `json:"Tables"`
	// Solution is empty on records written before solutions were persisted.
	Solution []Symbol `json:"Solution,omitempty"`
}

// Encode flattens g row by row.
func Encode(g *Game) Snapshot {
	return Snapshot{
		Joueur:      g.Player.Name,
		Level:       g.Player.Level,
		Mode:        string(g.Player.Difficulty),
		Points:      g.Player.TotalScore,
		LevelPoints: g.Player.LevelScore,
		Tables:      g.Board.Overlay.Flatten(),
		Solution:    g.Board.Solution.Flatten(),
	}
}

// Decode rebuilds a game from snap. Snapshots without a solution get one
// reconstructed around their revealed cells.
func Decode(snap Snapshot, settings Settings, gen *BoardGenerator) (*Game, error) {
	board, err := decodeBoard(snap, settings, gen)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, snap.Joueur, err)
	}
	mode, err := modes.Parse(snap.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, snap.Joueur, err)
	}
	if snap.Points < 0 {
		return nil, fmt.Errorf("%w: %s: negative points %d", ErrCorruptSnapshot, snap.Joueur, snap.Points)
	}

	player := Player{
		Name:       snap.Joueur,
		Level:      snap.Level,
		Difficulty: mode,
		TotalScore: snap.Points,
		// Records written right after a level-up hold the old -1 marker.
		LevelScore: max(snap.LevelPoints, 0),
	}
	g, err := Restore(player, board, settings, gen)
	if errors.Is(err, ErrCorruptSnapshot) {
		return nil, fmt.Errorf("%s: %w", snap.Joueur, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, snap.Joueur, err)
	}
	return g, nil
}

func decodeBoard(snap Snapshot, settings Settings, gen *BoardGenerator) (Board, error) {
	size, err := settings.SizeOf(snap.Level)
	if err != nil {
		return Board{}, err
	}
	overlay, err := GridFromFlat(snap.Tables)
	if err != nil {
		return Board{}, fmt.Errorf("overlay: %v", err)
	}
	if overlay.Size() != size {
		return Board{}, fmt.Errorf("overlay is %dx%d, level %d is %dx%d",
			overlay.Size(), overlay.Size(), snap.Level, size, size)
	}
	for _, s := range snap.Tables {
		if !settings.knows(s) {
			return Board{}, fmt.Errorf("unknown symbol %q", s)
		}
	}

	if len(snap.Solution) == 0 {
		solution, err := gen.complete(overlay, settings.Alphabet, settings.Hidden)
		if err != nil {
			return Board{}, fmt.Errorf("rebuild solution: %v", err)
		}
		return Board{Solution: solution, Overlay: overlay}, nil
	}

	solution, err := GridFromFlat(snap.Solution)
	if err != nil {
		return Board{}, fmt.Errorf("solution: %v", err)
	}
	if solution.Size() != size {
		return Board{}, fmt.Errorf("solution is %dx%d, level %d is %dx%d",
			solution.Size(), solution.Size(), snap.Level, size, size)
	}
	for i, s := range snap.Solution {
		if s == settings.Hidden || !settings.knows(s) {
			return Board{}, fmt.Errorf("solution holds invalid symbol %q", s)
		}
		if o := snap.Tables[i]; o != settings.Hidden && o != s {
			return Board{}, fmt.Errorf("cell %d shows %q but holds %q", i, o, s)
		}
	}
	counts := make(map[Symbol]int)
	shown := make(map[Symbol]int)
	for i, s := range snap.Solution {
		counts[s]++
		if snap.Tables[i] != settings.Hidden {
			shown[s]++
		}
	}
	singles := 0
	for s, n := range counts {
		switch n {
		case 2:
			if shown[s] == 1 {
				return Board{}, fmt.Errorf("only one card of pair %q is revealed", s)
			}
		case 1:
			singles++
			if shown[s] == 0 {
				return Board{}, fmt.Errorf("filler %q is hidden", s)
			}
		default:
			return Board{}, fmt.Errorf("symbol %q appears %d times in the solution", s, n)
		}
	}
	if singles != size%2 {
		return Board{}, fmt.Errorf("solution has %d unpaired symbols", singles)
	}
	return Board{Solution: solution, Overlay: overlay}, nil
}
