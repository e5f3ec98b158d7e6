package game

import "fmt"

// TurnState is the position of a turn in its pick sequence.
type TurnState int

const (
	AwaitingFirstPick TurnState = iota
	AwaitingSecondPick
	Resolved
)

func (s TurnState) String() string {
	switch s {
	case AwaitingFirstPick:
		return "awaiting_first_pick"
	case AwaitingSecondPick:
		return "awaiting_second_pick"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("turn_state(%d)", int(s))
	}
}

// PickResult describes one accepted pick.
type PickResult struct {
	Coord  Coord
	Symbol Symbol
	State  TurnState
}

// Turn collects the two picks of one move. Picks are only shown on the turn's
// own view; the game's overlay changes when the turn is resolved.
type Turn struct {
	game    *Game
	state   TurnState
	picks   []Coord
	view    Grid
	applied bool
}

func (t *Turn) State() TurnState { return t.state }

// View is the overlay with this turn's picks face up.
func (t *Turn) View() Grid { return t.view }

// Picks returns the coordinates accepted so far.
func (t *Turn) Picks() []Coord {
	out := make([]Coord, len(t.picks))
	copy(out, t.picks)
	return out
}

// Pick reveals c on the turn's view. A rejected pick leaves the turn where it was
// and costs nothing.
func (t *Turn) Pick(c Coord) (PickResult, error) {
	if t.state == Resolved {
		return PickResult{}, fmt.Errorf("%w: turn already resolved", ErrTurnState)
	}
	if err := t.game.ValidatePick(c); err != nil {
		return PickResult{}, err
	}
	sym := t.game.Board.Solution.At(c)
	t.view.Set(c, sym)
	t.picks = append(t.picks, c)
	if t.state == AwaitingFirstPick {
		t.state = AwaitingSecondPick
	} else {
		t.state = Resolved
	}
	return PickResult{Coord: c, Symbol: sym, State: t.state}, nil
}

// PickInput parses a coordinate typed by the player and picks it.
func (t *Turn) PickInput(input string) (PickResult, error) {
	c, err := ParseCoord(input, t.game.LevelSize())
	if err != nil {
		return PickResult{}, err
	}
	return t.Pick(c)
}

// Resolve applies the two picks to the game. It may only be called once, after
// the second pick.
func (t *Turn) Resolve() (Outcome, error) {
	if t.state != Resolved || len(t.picks) != 2 {
		return Outcome{}, fmt.Errorf("%w: turn has %d of 2 picks", ErrTurnState, len(t.picks))
	}
	if t.applied {
		return Outcome{}, fmt.Errorf("%w: turn already applied", ErrTurnState)
	}
	out, err := t.game.ResolveTurn(t.picks[0], t.picks[1])
	if err != nil {
		return Outcome{}, err
	}
	t.applied = true
	return out, nil
}
