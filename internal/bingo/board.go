package bingo

import (
	"time"

	"github.com/google/uuid"
)

// MaxBoards is the default cap on the number of boards a user may hold.
const MaxBoards = 3

// Cell is one grid slot.
type Cell struct {
	Position   Position
	Goal       string
	IsAchieved bool
}

// Board is a goal grid. UpdatedAt orders boards during merge and must move
// forward on every cell mutation.
type Board struct {
	ID        string
	Name      string
	Size      BoardSize
	Cells     []Cell
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppState is a board collection. CurrentBoardID is empty when no board is
// selected. IsSaving is transient and never persisted.
type AppState struct {
	Boards         []Board
	CurrentBoardID string
	IsSaving       bool
}

// NewBoard creates an empty board: every cell blank and not achieved.
func NewBoard(name string, size BoardSize, now time.Time) (Board, error) {
	positions, err := AllPositions(size)
	if err != nil {
		return Board{}, err
	}

	cells := make([]Cell, len(positions))
	for i, p := range positions {
		cells[i] = Cell{Position: p}
	}

	return Board{
		ID:        uuid.NewString(),
		Name:      name,
		Size:      size,
		Cells:     cells,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Clone returns a deep copy of b.
func (b Board) Clone() Board {
	c := b
	c.Cells = append([]Cell(nil), b.Cells...)
	return c
}

// Cell returns the cell at p.
func (b Board) Cell(p Position) (Cell, bool) {
	if i := b.cellIndex(p); i >= 0 {
		return b.Cells[i], true
	}
	return Cell{}, false
}

func (b Board) cellIndex(p Position) int {
	for i, c := range b.Cells {
		if c.Position == p {
			return i
		}
	}
	return -1
}

// SetGoal replaces the goal text at p and bumps UpdatedAt. It returns false
// when the board has no such cell.
func (b *Board) SetGoal(p Position, goal string, now time.Time) bool {
	i := b.cellIndex(p)
	if i < 0 {
		return false
	}
	b.Cells[i].Goal = goal
	b.touch(now)
	return true
}

// ToggleAchieved flips the achieved flag at p and bumps UpdatedAt.
func (b *Board) ToggleAchieved(p Position, now time.Time) bool {
	i := b.cellIndex(p)
	if i < 0 {
		return false
	}
	b.Cells[i].IsAchieved = !b.Cells[i].IsAchieved
	b.touch(now)
	return true
}

// SetAchieved sets the achieved flag at p and bumps UpdatedAt.
func (b *Board) SetAchieved(p Position, achieved bool, now time.Time) bool {
	i := b.cellIndex(p)
	if i < 0 {
		return false
	}
	b.Cells[i].IsAchieved = achieved
	b.touch(now)
	return true
}

// Rename replaces the board name and bumps UpdatedAt.
func (b *Board) Rename(name string, now time.Time) {
	b.Name = name
	b.touch(now)
}

// touch never moves UpdatedAt backwards, even if the clock does.
func (b *Board) touch(now time.Time) {
	if now.After(b.UpdatedAt) {
		b.UpdatedAt = now
	}
}

// Lines returns the bingo lines for the board size.
func (b Board) Lines() ([]Line, error) {
	return LinesFor(b.Size)
}

// Progress evaluates the board.
func (b Board) Progress() (ProgressSummary, error) {
	lines, err := b.Lines()
	if err != nil {
		return ProgressSummary{}, err
	}
	return Summarize(b.Cells, lines), nil
}

// Clone returns a deep copy of s.
func (s AppState) Clone() AppState {
	c := s
	if s.Boards != nil {
		c.Boards = make([]Board, len(s.Boards))
		for i, b := range s.Boards {
			c.Boards[i] = b.Clone()
		}
	}
	return c
}

// IndexOf returns the index of the board with the given id, or -1.
func (s AppState) IndexOf(id string) int {
	for i, b := range s.Boards {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Board returns the board with the given id.
func (s AppState) Board(id string) (Board, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.Boards[i], true
	}
	return Board{}, false
}

// Current returns the selected board.
func (s AppState) Current() (Board, bool) {
	if s.CurrentBoardID == "" {
		return Board{}, false
	}
	return s.Board(s.CurrentBoardID)
}
