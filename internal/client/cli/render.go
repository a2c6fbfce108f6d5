package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
)

const goalWidth = 18

func progressLine(p bingo.ProgressSummary) string {
	s := fmt.Sprintf("%d/%d achieved, %d bingo", p.Achieved, p.Total, p.BingoCount)
	if p.BingoCount != 1 {
		s += "s"
	}
	if p.IsPerfect {
		s += ", perfect board!"
	}
	if p.Hint != nil {
		s += " - " + *p.Hint
	}
	return s
}

// cellMark: x achieved, * achieved and on a completed line, ! the missing
// cell of a near-bingo line.
func cellMark(c bingo.Cell, inBingo, near map[bingo.Position]bool) string {
	switch {
	case inBingo[c.Position]:
		return "[*]"
	case c.IsAchieved:
		return "[x]"
	case near[c.Position]:
		return "[!]"
	default:
		return "[ ]"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func renderBoard(w io.Writer, b bingo.Board) error {
	lines, err := b.Lines()
	if err != nil {
		return err
	}

	inBingo := map[bingo.Position]bool{}
	for _, p := range bingo.BingoLinePositions(b.Cells, lines) {
		inBingo[p] = true
	}
	near := map[bingo.Position]bool{}
	for _, p := range bingo.NearBingoPositions(b.Cells, lines) {
		near[p] = true
	}

	fmt.Fprintf(w, "%s (%dx%d)\n", b.Name, b.Size, b.Size)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{""}
	for c := 1; c <= int(b.Size); c++ {
		header = append(header, fmt.Sprint(c))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for r := 0; r < int(b.Size); r++ {
		row := []string{fmt.Sprint(r + 1)}
		for c := 0; c < int(b.Size); c++ {
			cell, _ := b.Cell(bingo.PositionOf(r, c))
			goal := cell.Goal
			if goal == "" {
				goal = "-"
			}
			row = append(row, cellMark(cell, inBingo, near)+" "+truncate(goal, goalWidth))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	p, err := b.Progress()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, progressLine(p))
	return err
}
