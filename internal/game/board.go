package game

import (
	"fmt"
	"math"
	"math/rand"
)

// MaxGridSize is bounded by the column letters A..Z.
const MaxGridSize = 26

// Symbol is a single card face.
type Symbol string

// Coord identifies a cell on a grid, 0-indexed.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is a square, row-major grid of symbols.
type Grid struct {
	size  int
	cells []Symbol
}

// NewGrid returns a size×size grid with every cell set to fill.
func NewGrid(size int, fill Symbol) Grid {
	cells := make([]Symbol, size*size)
	for i := range cells {
		cells[i] = fill
	}
	return Grid{size: size, cells: cells}
}

// GridFromFlat reshapes a row-major sequence into a square grid.
func GridFromFlat(flat []Symbol) (Grid, error) {
	size := int(math.Sqrt(float64(len(flat))))
	if size == 0 || size*size != len(flat) {
		return Grid{}, fmt.Errorf("grid of %d cells is not a non-empty square", len(flat))
	}
	cells := make([]Symbol, len(flat))
	copy(cells, flat)
	return Grid{size: size, cells: cells}, nil
}

func (g Grid) Size() int { return g.size }

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c Coord) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

func (g Grid) At(c Coord) Symbol {
	return g.cells[c.Row*g.size+c.Col]
}

func (g Grid) Set(c Coord, s Symbol) {
	g.cells[c.Row*g.size+c.Col] = s
}

// Clone returns a grid that shares no storage with g.
func (g Grid) Clone() Grid {
	cells := make([]Symbol, len(g.cells))
	copy(cells, g.cells)
	return Grid{size: g.size, cells: cells}
}

// Flatten returns the cells in row-major order.
func (g Grid) Flatten() []Symbol {
	out := make([]Symbol, len(g.cells))
	copy(out, g.cells)
	return out
}

// Rows returns a copy of the grid as a slice of rows.
func (g Grid) Rows() [][]Symbol {
	rows := make([][]Symbol, g.size)
	for r := 0; r < g.size; r++ {
		rows[r] = make([]Symbol, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// Count returns how many cells hold s.
func (g Grid) Count(s Symbol) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Board pairs the hidden solution with what the player currently sees.
type Board struct {
	Solution Grid
	Overlay  Grid
}

// BoardGenerator shuffles pair grids for a level.
type BoardGenerator struct {
	rng *rand.Rand
}

// NewBoardGenerator seeds a generator. Equal seeds produce equal boards.
func NewBoardGenerator(seed int64) *BoardGenerator {
	return &BoardGenerator{rng: rand.New(rand.NewSource(seed))}
}

// RequiredSymbols is the alphabet length a level of the given size consumes.
// Odd sizes need one filler symbol on top of the pairs.
func RequiredSymbols(size int) int {
	return size*size/2 + size*size%2
}

// Generate builds a shuffled solution for size and a fully hidden overlay. On odd
// sizes the single unpaired filler cell is revealed from the start so the level
// can still be cleared.
func (b *BoardGenerator) Generate(size int, alphabet []Symbol, hidden Symbol) (Board, error) {
	if size <= 0 || size > MaxGridSize {
		return Board{}, fmt.Errorf("%w: level size %d out of range 1..%d", ErrConfig, size, MaxGridSize)
	}
	if len(alphabet) < RequiredSymbols(size) {
		return Board{}, fmt.Errorf("%w: level size %d needs %d symbols, alphabet has %d",
			ErrConfig, size, RequiredSymbols(size), len(alphabet))
	}
	for _, s := range alphabet {
		if s == hidden {
			return Board{}, fmt.Errorf("%w: hidden symbol %q is part of the alphabet", ErrConfig, hidden)
		}
	}

	pairs := size * size / 2
	flat := make([]Symbol, 0, size*size)
	flat = append(flat, alphabet[:pairs]...)
	flat = append(flat, alphabet[:pairs]...)
	var filler Symbol
	if size%2 == 1 {
		filler = alphabet[pairs]
		flat = append(flat, filler)
	}
	b.rng.Shuffle(len(flat), func(i, j int) { flat[i], flat[j] = flat[j], flat[i] })

	solution := Grid{size: size, cells: flat}
	overlay := NewGrid(size, hidden)
	if size%2 == 1 {
		for i, s := range flat {
			if s == filler {
				overlay.cells[i] = filler
			}
		}
	}
	return Board{Solution: solution, Overlay: overlay}, nil
}

// complete fills the hidden cells of overlay with the symbols a fresh board of the
// same size would still need, keeping every revealed cell as-is. It is used for saves
// that predate persisting the solution.
func (b *BoardGenerator) complete(overlay Grid, alphabet []Symbol, hidden Symbol) (Grid, error) {
	size := overlay.Size()
	if len(alphabet) < RequiredSymbols(size) {
		return Grid{}, fmt.Errorf("alphabet too short for size %d", size)
	}
	remaining := make(map[Symbol]int)
	pairs := size * size / 2
	for _, s := range alphabet[:pairs] {
		remaining[s] += 2
	}
	if size%2 == 1 {
		remaining[alphabet[pairs]]++
	}

	var hiddenCells []int
	for i, s := range overlay.cells {
		if s == hidden {
			hiddenCells = append(hiddenCells, i)
			continue
		}
		if remaining[s] == 0 {
			return Grid{}, fmt.Errorf("revealed symbol %q does not fit a size %d board", s, size)
		}
		remaining[s]--
	}
	for _, s := range alphabet[:pairs] {
		if remaining[s] == 1 {
			return Grid{}, fmt.Errorf("symbol %q is revealed without its pair", s)
		}
	}
	if size%2 == 1 && remaining[alphabet[pairs]] != 0 {
		return Grid{}, fmt.Errorf("filler %q is not revealed", alphabet[pairs])
	}

	// Keep alphabet order so a seeded generator stays deterministic.
	var pool []Symbol
	for _, s := range alphabet[:RequiredSymbols(size)] {
		for remaining[s] > 0 {
			pool = append(pool, s)
			remaining[s]--
		}
	}
	if len(pool) != len(hiddenCells) {
		return Grid{}, fmt.Errorf("%d hidden cells but %d symbols left", len(hiddenCells), len(pool))
	}
	b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	solution := overlay.Clone()
	for i, idx := range hiddenCells {
		solution.cells[idx] = pool[i]
	}
	return solution, nil
}
