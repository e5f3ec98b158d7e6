package game

import (
	"fmt"

	"memo-go/internal/game/modes"
)

// EventType represents the game events written to the log
type EventType string

const (
	EventTypeGameCreated  EventType = "game_created"
	EventTypeGameLoaded   EventType = "game_loaded"
	EventTypeGameSaved    EventType = "game_saved"
	EventTypeTurnResolved EventType = "turn_resolved"
	EventTypeLevelCleared EventType = "level_cleared"
	EventTypeGameOver     EventType = "game_over"
)

// OutcomeKind classifies a resolved turn
type OutcomeKind int

const (
	SameCell OutcomeKind = iota
	Mismatch
	Match
	MatchAndLevelClear
)

func (k OutcomeKind) String() string {
	switch k {
	case SameCell:
		return "same_cell"
	case Mismatch:
		return "mismatch"
	case Match:
		return "match"
	case MatchAndLevelClear:
		return "match_and_level_clear"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of one resolved turn. Formatting it for the player is
// left to the presentation layer.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	First  Coord       `json:"first"`
	Second Coord       `json:"second"`
	// ClearedLevel is the level that was just finished, set on MatchAndLevelClear.
	ClearedLevel int `json:"cleared_level,omitempty"`
	// NewLevel is the level now being played, set on MatchAndLevelClear unless the
	// table ran out.
	NewLevel     int  `json:"new_level,omitempty"`
	GameComplete bool `json:"game_complete,omitempty"`
	// LevelTurns and LevelPairs describe the cleared level: turns spent on it,
	// this one included, and the number of pairs it held.
	LevelTurns int `json:"level_turns,omitempty"`
	LevelPairs int `json:"level_pairs,omitempty"`
}

// Player represents the person playing and their progress
type Player struct {
	Name       string           `json:"name"`
	Level      int              `json:"level"`
	Difficulty modes.Difficulty `json:"difficulty"`
	TotalScore int              `json:"total_score"`
	LevelScore int              `json:"level_score"`
}

// Settings is the static configuration the engine consumes
type Settings struct {
	LevelSizes []int    `json:"level_sizes"`
	Alphabet   []Symbol `json:"alphabet"`
	Hidden     Symbol   `json:"hidden"`
}

// Validate checks the level table against the alphabet
func (s Settings) Validate() error {
	if len(s.LevelSizes) == 0 {
		return fmt.Errorf("%w: level table is empty", ErrConfig)
	}
	if s.Hidden == "" {
		return fmt.Errorf("%w: hidden symbol is empty", ErrConfig)
	}
	largest := 0
	for i, size := range s.LevelSizes {
		if size < 2 || size > MaxGridSize {
			return fmt.Errorf("%w: level %d size %d out of range 2..%d", ErrConfig, i, size, MaxGridSize)
		}
		largest = max(largest, size)
	}
	seen := make(map[Symbol]struct{}, len(s.Alphabet))
	for _, sym := range s.Alphabet {
		if sym == "" {
			return fmt.Errorf("%w: alphabet contains an empty symbol", ErrConfig)
		}
		if sym == s.Hidden {
			return fmt.Errorf("%w: hidden symbol %q is part of the alphabet", ErrConfig, s.Hidden)
		}
		if _, dup := seen[sym]; dup {
			return fmt.Errorf("%w: symbol %q appears twice in the alphabet", ErrConfig, sym)
		}
		seen[sym] = struct{}{}
	}
	if need := RequiredSymbols(largest); len(s.Alphabet) < need {
		return fmt.Errorf("%w: level size %d needs %d symbols, alphabet has %d",
			ErrConfig, largest, need, len(s.Alphabet))
	}
	return nil
}

// SizeOf returns the grid size of a level.
func (s Settings) SizeOf(level int) (int, error) {
	if level < 0 || level >= len(s.LevelSizes) {
		return 0, fmt.Errorf("level %d outside table of %d levels", level, len(s.LevelSizes))
	}
	return s.LevelSizes[level], nil
}

func (s Settings) knows(sym Symbol) bool {
	if sym == s.Hidden {
		return true
	}
	for _, a := range s.Alphabet {
		if a == sym {
			return true
		}
	}
	return false
}
