package modes

import (
	"fmt"
	"strings"
)

// Difficulty represents the two game modes. The values are the labels stored in
// save records.
type Difficulty string

const (
	Easy Difficulty = "Facile"
	Hard Difficulty = "Difficile"
)

// All lists the modes in menu order.
var All = []Difficulty{Easy, Hard}

// Settings describes how a mode shapes a level
type Settings struct {
	Difficulty       Difficulty `json:"difficulty"`
	Title            string     `json:"title"`
	BudgetMultiplier int        `json:"budget_multiplier"`
}

// DefaultSettings returns the settings for each mode
func DefaultSettings(d Difficulty) Settings {
	switch d {
	case Easy:
		return Settings{Difficulty: Easy, Title: "Easy", BudgetMultiplier: 2}
	default:
		return Settings{Difficulty: Hard, Title: "Hard", BudgetMultiplier: 1}
	}
}

// Validate reports whether d is a known mode
func Validate(d Difficulty) error {
	switch d {
	case Easy, Hard:
		return nil
	default:
		return fmt.Errorf("unknown mode %q", string(d))
	}
}

// Parse accepts a stored label or an English name, case-insensitively.
func Parse(label string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "facile", "easy":
		return Easy, nil
	case "difficile", "hard":
		return Hard, nil
	default:
		return "", fmt.Errorf("unknown mode %q", label)
	}
}

// ParseChoice maps a 1-based menu choice to a mode.
func ParseChoice(choice string) (Difficulty, error) {
	switch strings.TrimSpace(choice) {
	case "1":
		return Easy, nil
	case "2":
		return Hard, nil
	default:
		return "", fmt.Errorf("mode choice must be 1-%d", len(All))
	}
}

// BudgetMultiplier returns the factor applied to a level's cell count
func BudgetMultiplier(d Difficulty) int {
	return DefaultSettings(d).BudgetMultiplier
}

// IsEasy returns whether d doubles the move budget
func IsEasy(d Difficulty) bool {
	return d == Easy
}
