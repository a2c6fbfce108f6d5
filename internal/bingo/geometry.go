// Package bingo holds the goal-board model: grid geometry, bingo line
// evaluation, board lifecycle helpers and input validation.
//
// Everything in this package is pure. Functions read the values they are
// given and never mutate shared state, so they are safe to call from any
// goroutine.
package bingo

import (
	"fmt"
	"regexp"
	"strconv"
)

// BoardSize is the edge length of a square board.
type BoardSize int

const (
	Size3 BoardSize = 3
	Size4 BoardSize = 4
	Size5 BoardSize = 5
)

// DefaultSize is used when persisted data does not carry a size.
const DefaultSize = Size3

// SupportedSizes lists every board size the application accepts.
var SupportedSizes = []BoardSize{Size3, Size4, Size5}

// Valid reports whether s is one of SupportedSizes.
func (s BoardSize) Valid() bool {
	for _, v := range SupportedSizes {
		if v == s {
			return true
		}
	}
	return false
}

// CellCount is size².
func (s BoardSize) CellCount() int { return int(s) * int(s) }

// LineCount is the number of bingo lines: size rows, size columns, 2 diagonals.
func (s BoardSize) LineCount() int { return 2*int(s) + 2 }

func (s BoardSize) check() error {
	if !s.Valid() {
		return &ConfigurationError{Size: s}
	}
	return nil
}

// Position identifies a cell as "cell_{row}_{col}".
type Position string

var positionPattern = regexp.MustCompile(`^cell_(\d+)_(\d+)$`)

// PositionOf encodes a (row, col) pair.
func PositionOf(row, col int) Position {
	return Position("cell_" + strconv.Itoa(row) + "_" + strconv.Itoa(col))
}

// Coords decodes the row and column. ok is false when p does not match the
// cell_R_C pattern or is not in the form PositionOf produces, so aliases
// such as "cell_00_0" are rejected.
func (p Position) Coords() (row, col int, ok bool) {
	m := positionPattern.FindStringSubmatch(string(p))
	if m == nil {
		return 0, 0, false
	}
	row, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	col, err = strconv.Atoi(m[2])
	if err != nil || PositionOf(row, col) != p {
		return 0, 0, false
	}
	return row, col, true
}

// Within reports whether p addresses a cell of a board of the given size.
func (p Position) Within(size BoardSize) bool {
	row, col, ok := p.Coords()
	return ok && row < int(size) && col < int(size)
}

// AllPositions returns the positions of a board in row-major order.
func AllPositions(size BoardSize) ([]Position, error) {
	if err := size.check(); err != nil {
		return nil, err
	}

	n := int(size)
	positions := make([]Position, 0, size.CellCount())
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			positions = append(positions, PositionOf(row, col))
		}
	}
	return positions, nil
}

// LineKind classifies a bingo line.
type LineKind string

const (
	LineRow      LineKind = "row"
	LineColumn   LineKind = "column"
	LineDiagonal LineKind = "diagonal"
)

// Line is one row, column or diagonal of a board.
type Line struct {
	Kind      LineKind
	Positions []Position
}

func (l Line) String() string {
	return fmt.Sprintf("%s%v", l.Kind, l.Positions)
}

// LinesFor returns every bingo line of a board: rows top to bottom, columns
// left to right, then the main diagonal and the anti-diagonal. Callers may
// rely on this order.
func LinesFor(size BoardSize) ([]Line, error) {
	if err := size.check(); err != nil {
		return nil, err
	}

	n := int(size)
	lines := make([]Line, 0, size.LineCount())

	for row := 0; row < n; row++ {
		positions := make([]Position, n)
		for col := 0; col < n; col++ {
			positions[col] = PositionOf(row, col)
		}
		lines = append(lines, Line{Kind: LineRow, Positions: positions})
	}

	for col := 0; col < n; col++ {
		positions := make([]Position, n)
		for row := 0; row < n; row++ {
			positions[row] = PositionOf(row, col)
		}
		lines = append(lines, Line{Kind: LineColumn, Positions: positions})
	}

	main := make([]Position, n)
	anti := make([]Position, n)
	for i := 0; i < n; i++ {
		main[i] = PositionOf(i, i)
		anti[i] = PositionOf(i, n-1-i)
	}
	lines = append(lines,
		Line{Kind: LineDiagonal, Positions: main},
		Line{Kind: LineDiagonal, Positions: anti},
	)

	return lines, nil
}
