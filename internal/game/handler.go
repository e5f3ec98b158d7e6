package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"memo-go/internal/game/modes"
	"memo-go/internal/game/ranking"
)

const (
	msgMenu      = "\nWelcome to Memory!\n1) New game\n2) Load\nYour choice: "
	msgName      = "\nYour name: "
	msgMode      = "Mode:\n1) Easy\n2) Hard\nYour choice: "
	msgLoad      = "Type the number of the game to load: "
	msgNoSaves   = "\nThere is no game to load."
	msgPick      = "Save and quit -> quit\nPick a card to turn over (e.g. B1): "
	msgSameCell  = "You can't turn the same card over twice!"
	msgMatch     = "You found a pair, well done!"
	msgMismatch  = "Not a match, remember where they are and try again."
	msgLevelDone = "\nWell done! You finished level %d"
	msgRating    = "\nRating: %s (%d%% efficiency)"
	msgComplete  = "\nYou cleared every level!"
	msgContinue  = "Press enter to continue"
	msgNoMoves   = "No moves left, the game is over!"
	msgSaved     = "Game saved for %s."
	clearScreen  = "\033[H\033[2J"
)

// errQuit ends a session after the game has been saved.
var errQuit = errors.New("player quit")

// Handler runs the text menu and turn loop on a terminal.
type Handler struct {
	service GameService
	in      *bufio.Scanner
	out     io.Writer
	clear   bool
}

func NewHandler(service GameService, in io.Reader, out io.Writer) *Handler {
	return &Handler{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// WithScreenClearing makes the handler clear the terminal before each board.
func (h *Handler) WithScreenClearing(enabled bool) *Handler {
	h.clear = enabled
	return h
}

// Run plays one session until the moves run out, every level is cleared or
// the player quits.
func (h *Handler) Run(ctx context.Context) error {
	g, err := h.menu(ctx)
	if err != nil {
		if errors.Is(err, errQuit) {
			return nil
		}
		return err
	}

	for {
		turn, err := g.BeginTurn()
		switch {
		case errors.Is(err, ErrNoMovesLeft):
			h.println(msgNoMoves)
			return nil
		case errors.Is(err, ErrGameComplete):
			h.println(msgComplete)
			return h.save(ctx, g)
		case err != nil:
			return err
		}

		if err := h.playTurn(ctx, g, turn); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

func (h *Handler) playTurn(ctx context.Context, g *Game, turn *Turn) error {
	h.render(g, turn.View())
	for turn.State() != Resolved {
		line, err := h.prompt(msgPick)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if err != nil || IsQuit(line) {
			if saveErr := h.save(ctx, g); saveErr != nil {
				return saveErr
			}
			return errQuit
		}
		if _, err := turn.PickInput(line); err != nil {
			if errors.Is(err, ErrInvalidMove) {
				continue
			}
			return err
		}
		h.render(g, turn.View())
	}

	out, err := h.service.PlayTurn(ctx, g, turn)
	if err != nil {
		return err
	}
	h.println(describe(out))
	if _, err := h.prompt(msgContinue); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func describe(out Outcome) string {
	switch out.Kind {
	case SameCell:
		return msgSameCell
	case Mismatch:
		return msgMismatch
	case MatchAndLevelClear:
		rank := ranking.GetRank(out.LevelTurns, out.LevelPairs)
		return msgMatch + fmt.Sprintf(msgLevelDone, out.ClearedLevel) +
			fmt.Sprintf(msgRating, rank.Title, ranking.Efficiency(out.LevelTurns, out.LevelPairs))
	default:
		return msgMatch
	}
}

func (h *Handler) menu(ctx context.Context) (*Game, error) {
	for {
		choice, err := h.promptInt(msgMenu, 1, 2)
		if err != nil {
			return nil, err
		}
		if choice == 2 {
			g, err := h.load(ctx)
			if err != nil && !errors.Is(err, ErrCorruptSnapshot) {
				return nil, err
			}
			if err != nil {
				h.println(err.Error())
				continue
			}
			if g != nil {
				return g, nil
			}
			h.println(msgNoSaves)
		}
		return h.newGame(ctx)
	}
}

func (h *Handler) load(ctx context.Context) (*Game, error) {
	saves, err := h.service.ListSaves(ctx)
	if err != nil {
		return nil, err
	}
	if len(saves) == 0 {
		return nil, nil
	}
	var b strings.Builder
	for i, s := range saves {
		fmt.Fprintf(&b, "%d) Player: %s, level %d, mode: %s, points: %d, level points: %d\n",
			i+1, s.Joueur, s.Level, s.Mode, s.Points, s.LevelPoints)
	}
	h.print(b.String())
	index, err := h.promptInt(msgLoad, 1, len(saves))
	if err != nil {
		return nil, err
	}
	return h.service.LoadGame(ctx, index)
}

func (h *Handler) newGame(ctx context.Context) (*Game, error) {
	var name string
	for name == "" {
		line, err := h.prompt(msgName)
		if err != nil {
			return nil, endOfInput(err)
		}
		name = line
	}

	for {
		line, err := h.prompt(msgMode)
		if err != nil {
			return nil, endOfInput(err)
		}
		difficulty, err := modes.ParseChoice(line)
		if err != nil {
			continue
		}
		return h.service.NewGame(ctx, name, difficulty)
	}
}

func (h *Handler) save(ctx context.Context, g *Game) error {
	if err := h.service.SaveGame(ctx, g); err != nil {
		return err
	}
	h.println(fmt.Sprintf(msgSaved, g.Player.Name))
	return nil
}

func (h *Handler) render(g *Game, view Grid) {
	var b strings.Builder
	if h.clear {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "%s - Total points: %d\nLevel: %d | Level points: %d\nMode: %s\nMoves left: %d\n\n\n",
		g.Player.Name, g.Player.TotalScore, g.Player.Level, g.Player.LevelScore,
		modes.DefaultSettings(g.Player.Difficulty).Title, g.MovesRemaining)

	letters := strings.Split(ColumnLetters(view.Size()), "")
	fmt.Fprintf(&b, "    %s\n\n", strings.Join(letters, "  "))
	for i, row := range view.Rows() {
		cells := make([]string, len(row))
		for j, s := range row {
			cells[j] = string(s)
		}
		fmt.Fprintf(&b, "%2d %s\n\n", i+1, strings.Join(cells, " "))
	}
	h.print(b.String())
}

// prompt writes msg and reads one line. It returns io.EOF once input is exhausted.
func (h *Handler) prompt(msg string) (string, error) {
	h.print(msg)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(h.in.Text()), nil
}

// endOfInput turns io.EOF into errQuit and passes read failures through.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return errQuit
	}
	return err
}

// promptInt re-prompts until the answer is a number in [lo, hi].
func (h *Handler) promptInt(msg string, lo, hi int) (int, error) {
	for {
		line, err := h.prompt(msg)
		if err != nil {
			return 0, endOfInput(err)
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
	}
}

func (h *Handler) print(s string) {
	fmt.Fprint(h.out, s)
}

func (h *Handler) println(s string) {
	fmt.Fprintln(h.out, s)
}
