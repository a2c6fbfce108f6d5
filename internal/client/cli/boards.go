package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
)

// Boards lists the boards with their progress and the remaining capacity.
func (a *App) Boards(ctx context.Context, _ []string) error {
	st := a.session.Snapshot()
	if len(st.Boards) == 0 {
		fmt.Fprintln(a.out, "No boards yet. Create one with: new <3|4|5> <name>")
	}
	for i, b := range st.Boards {
		marker := " "
		if b.ID == st.CurrentBoardID {
			marker = "*"
		}
		p, err := b.Progress()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s %d. %s (%dx%d) %s\n", marker, i+1, b.Name, b.Size, b.Size, progressLine(p))
	}
	fmt.Fprintf(a.out, "Remaining slots: %d\n", a.session.RemainingSlots())
	return nil
}

// New creates a board: new <size> <name...>
func (a *App) New(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: new <3|4|5> <name>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("board size must be a number: %q", args[0])
	}

	b, err := a.session.CreateBoard(strings.Join(args[1:], " "), bingo.BoardSize(n))
	if errors.Is(err, common.ErrBoardLimitReached) {
		return fmt.Errorf("you already have %d boards, delete one first", a.config.MaxBoards)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %q.\n", b.Name)
	return nil
}

// Use selects the current board: use <n|id>
func (a *App) Use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: use <n|id>")
	}
	b, err := a.resolveBoard(args)
	if err != nil {
		return err
	}
	if err := a.session.SetCurrentBoard(b.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Now on %q.\n", b.Name)
	return nil
}

// Show prints a board grid with its progress: show [n|id]
func (a *App) Show(ctx context.Context, args []string) error {
	b, err := a.resolveBoard(args)
	if err != nil {
		return err
	}
	return renderBoard(a.out, b)
}

// Goal sets the goal of a cell on the current board: goal <row> <col> [text...]
// Without text the goal is asked for; an empty answer clears it.
func (a *App) Goal(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: goal <row> <col> [text]")
	}
	b, err := a.resolveBoard(nil)
	if err != nil {
		return err
	}
	pos, err := cellArg(b, args[0], args[1])
	if err != nil {
		return err
	}

	text := strings.Join(args[2:], " ")
	if len(args) == 2 {
		if text, err = ask(a.reader, a.out, "Goal (empty to clear)"); err != nil {
			return err
		}
	}
	return a.session.UpdateGoal(b.ID, pos, text)
}

// Toggle flips the achieved flag of a cell: toggle <row> <col>
func (a *App) Toggle(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: toggle <row> <col>")
	}
	b, err := a.resolveBoard(nil)
	if err != nil {
		return err
	}
	pos, err := cellArg(b, args[0], args[1])
	if err != nil {
		return err
	}
	if err := a.session.ToggleAchieved(b.ID, pos); err != nil {
		return err
	}

	p, err := a.session.Progress(b.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, progressLine(p))
	return nil
}

// Rename renames the current board: rename <name...>
func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: rename <name>")
	}
	b, err := a.resolveBoard(nil)
	if err != nil {
		return err
	}
	return a.session.RenameBoard(b.ID, strings.Join(args, " "))
}

// Delete removes a board, the current one by default: delete [n|id]
func (a *App) Delete(ctx context.Context, args []string) error {
	b, err := a.resolveBoard(args)
	if err != nil {
		return err
	}
	if err := a.session.DeleteBoard(ctx, b.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q.\n", b.Name)
	return nil
}

// resolveBoard finds the board named by args[0] (1-based list number, id
// or id prefix) or, without args, the current board.
func (a *App) resolveBoard(args []string) (bingo.Board, error) {
	st := a.session.Snapshot()

	if len(args) == 0 {
		b, ok := st.Current()
		if !ok {
			return bingo.Board{}, errors.New("no board selected, pick one with: use <n>")
		}
		return b, nil
	}

	ref := args[0]
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(st.Boards) {
			return bingo.Board{}, fmt.Errorf("board %d: %w", n, common.ErrorNotFound)
		}
		return st.Boards[n-1], nil
	}

	var found []bingo.Board
	for _, b := range st.Boards {
		if b.ID == ref {
			return b, nil
		}
		if strings.HasPrefix(b.ID, ref) {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return bingo.Board{}, fmt.Errorf("board %s: %w", ref, common.ErrorNotFound)
	default:
		return bingo.Board{}, fmt.Errorf("board id prefix %q is ambiguous", ref)
	}
}

// cellArg converts 1-based row and column arguments to a position on b.
func cellArg(b bingo.Board, row, col string) (bingo.Position, error) {
	r, err1 := strconv.Atoi(row)
	c, err2 := strconv.Atoi(col)
	if err1 != nil || err2 != nil {
		return "", fmt.Errorf("row and column must be numbers, got %q %q", row, col)
	}
	pos, err := bingo.ValidatePosition(string(bingo.PositionOf(r-1, c-1)))
	if err != nil || !pos.Within(b.Size) {
		return "", fmt.Errorf("row and column must be between 1 and %d", b.Size)
	}
	return pos, nil
}
