package game

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	columnLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	quitToken     = "quit"
)

// ColumnLetters returns the letters labelling the columns of a size-wide grid.
func ColumnLetters(size int) string {
	size = min(max(size, 0), len(columnLetters))
	return columnLetters[:size]
}

// IsQuit reports whether input is the quit command, ignoring case and spaces.
func IsQuit(input string) bool {
	return cases.Fold().String(strings.TrimSpace(input)) == quitToken
}

// ParseCoord reads "<letter><row>" where the letter picks the column and the row
// is 1-indexed, e.g. "B3" is row 2, column 1.
func ParseCoord(input string, size int) (Coord, error) {
	s := cases.Upper(language.Und).String(strings.TrimSpace(input))
	if len(s) < 2 {
		return Coord{}, fmt.Errorf("%w: %q is not a cell like B1", ErrInvalidMove, input)
	}
	col := strings.IndexByte(ColumnLetters(size), s[0])
	if col < 0 {
		return Coord{}, fmt.Errorf("%w: column %q is not one of %s", ErrInvalidMove, s[:1], ColumnLetters(size))
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || s[1] == '+' || s[1] == '-' {
		return Coord{}, fmt.Errorf("%w: row %q is not a number", ErrInvalidMove, s[1:])
	}
	if row < 1 || row > size {
		return Coord{}, fmt.Errorf("%w: row %d is not between 1 and %d", ErrInvalidMove, row, size)
	}
	return Coord{Row: row - 1, Col: col}, nil
}

// FormatCoord is the inverse of ParseCoord.
func FormatCoord(c Coord) string {
	if c.Col < 0 || c.Col >= len(columnLetters) {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", columnLetters[c.Col], c.Row+1)
}
