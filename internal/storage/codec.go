package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
)

// StateKey is the key the serialized collection is stored under on a device.
const StateKey = "bingo-goal-app-state"

// untitledBoardName names legacy boards that carried neither name nor year.
const untitledBoardName = "Untitled Board"

var errNotCurrentShape = errors.New("not a current-shape board")

// StoredCell is the persisted shape of a cell.
type StoredCell struct {
	Position   string `json:"position"`
	Goal       string `json:"goal"`
	IsAchieved bool   `json:"isAchieved"`
}

// StoredBoard is the persisted and transported shape of a board. Timestamps
// are ISO-8601 strings.
type StoredBoard struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Size      int          `json:"size"`
	Cells     []StoredCell `json:"cells"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
}

// legacyStoredBoard is the year-based shape written by early releases. Size
// may be missing (boards were always 3x3) and positions may use corner and
// edge names.
type legacyStoredBoard struct {
	ID        string       `json:"id"`
	Year      *int         `json:"year"`
	Name      *string      `json:"name"`
	Size      *int         `json:"size"`
	Cells     []StoredCell `json:"cells"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
}

// StoredState is the persisted shape of a collection. Boards are kept raw so
// that each one can be decoded, migrated or dropped on its own.
type StoredState struct {
	Boards         []json.RawMessage `json:"boards"`
	CurrentBoardID *string           `json:"currentBoardId"`
	IsSaving       bool              `json:"isSaving"`
}

var legacyPositions = map[string]bingo.Position{
	"topLeft":      bingo.PositionOf(0, 0),
	"topCenter":    bingo.PositionOf(0, 1),
	"topRight":     bingo.PositionOf(0, 2),
	"middleLeft":   bingo.PositionOf(1, 0),
	"middleCenter": bingo.PositionOf(1, 1),
	"middleRight":  bingo.PositionOf(1, 2),
	"bottomLeft":   bingo.PositionOf(2, 0),
	"bottomCenter": bingo.PositionOf(2, 1),
	"bottomRight":  bingo.PositionOf(2, 2),
}

// FormatTime renders t the way boards store timestamps.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime parses an ISO-8601 timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// EncodeBoard converts a board to its stored shape.
func EncodeBoard(b bingo.Board) StoredBoard {
	cells := make([]StoredCell, len(b.Cells))
	for i, c := range b.Cells {
		cells[i] = StoredCell{Position: string(c.Position), Goal: c.Goal, IsAchieved: c.IsAchieved}
	}
	return StoredBoard{
		ID:        b.ID,
		Name:      b.Name,
		Size:      int(b.Size),
		Cells:     cells,
		CreatedAt: FormatTime(b.CreatedAt),
		UpdatedAt: FormatTime(b.UpdatedAt),
	}
}

// EncodeState serializes a collection. IsSaving is always written as false.
func EncodeState(s bingo.AppState) ([]byte, error) {
	boards := make([]json.RawMessage, len(s.Boards))
	for i, b := range s.Boards {
		raw, err := json.Marshal(EncodeBoard(b))
		if err != nil {
			return nil, fmt.Errorf("encode board %s: %w", b.ID, err)
		}
		boards[i] = raw
	}

	var current *string
	if s.CurrentBoardID != "" {
		id := s.CurrentBoardID
		current = &id
	}

	return json.Marshal(StoredState{Boards: boards, CurrentBoardID: current})
}

// Decoded is the outcome of DecodeState. Dropped lists one error per board
// that could neither be decoded nor migrated.
type Decoded struct {
	State   bingo.AppState
	Dropped []error
}

// DecodeState parses a serialized collection, migrating legacy boards.
// Malformed boards are dropped instead of failing the whole collection; an
// error is returned only when the envelope itself is unreadable.
func DecodeState(data []byte) (Decoded, error) {
	var stored StoredState
	if err := json.Unmarshal(data, &stored); err != nil {
		return Decoded{}, fmt.Errorf("decode state: %w", err)
	}

	var res Decoded
	res.State.Boards = make([]bingo.Board, 0, len(stored.Boards))
	seen := make(map[string]struct{}, len(stored.Boards))

	for i, raw := range stored.Boards {
		b, err := DecodeBoard(raw)
		if err != nil {
			res.Dropped = append(res.Dropped, fmt.Errorf("board #%d: %w", i, err))
			continue
		}
		if _, dup := seen[b.ID]; dup {
			res.Dropped = append(res.Dropped, fmt.Errorf("board #%d: duplicate id %s", i, b.ID))
			continue
		}
		seen[b.ID] = struct{}{}
		res.State.Boards = append(res.State.Boards, b)
	}

	if stored.CurrentBoardID != nil {
		id := bingo.CanonicalBoardID(*stored.CurrentBoardID)
		if _, ok := seen[id]; ok {
			res.State.CurrentBoardID = id
		}
	}

	return res, nil
}

// DecodeBoard decodes one board, trying the current shape first and falling
// back to the legacy shape.
func DecodeBoard(raw []byte) (bingo.Board, error) {
	b, err := decodeCurrentBoard(raw)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, errNotCurrentShape) {
		return bingo.Board{}, err
	}
	return decodeLegacyBoard(raw)
}

// FromStored converts a current-shape board.
func FromStored(sb StoredBoard) (bingo.Board, error) {
	b := bingo.Board{
		ID:    sb.ID,
		Name:  sb.Name,
		Size:  bingo.BoardSize(sb.Size),
		Cells: make([]bingo.Cell, len(sb.Cells)),
	}
	for i, c := range sb.Cells {
		b.Cells[i] = bingo.Cell{Position: bingo.Position(c.Position), Goal: c.Goal, IsAchieved: c.IsAchieved}
	}
	return finishBoard(b, sb.CreatedAt, sb.UpdatedAt)
}

func decodeCurrentBoard(raw []byte) (bingo.Board, error) {
	var sb StoredBoard
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sb); err != nil {
		return bingo.Board{}, fmt.Errorf("%w: %v", errNotCurrentShape, err)
	}
	if sb.Name == "" || sb.Size == 0 {
		return bingo.Board{}, errNotCurrentShape
	}
	for _, c := range sb.Cells {
		if _, _, ok := bingo.Position(c.Position).Coords(); !ok {
			return bingo.Board{}, errNotCurrentShape
		}
	}
	return FromStored(sb)
}

func decodeLegacyBoard(raw []byte) (bingo.Board, error) {
	var lb legacyStoredBoard
	if err := json.Unmarshal(raw, &lb); err != nil {
		return bingo.Board{}, fmt.Errorf("decode legacy board: %w", err)
	}

	name := untitledBoardName
	switch {
	case lb.Name != nil && *lb.Name != "":
		name = *lb.Name
	case lb.Year != nil && *lb.Year != 0:
		name = strconv.Itoa(*lb.Year) + " Goals"
	}

	size := bingo.DefaultSize
	if lb.Size != nil {
		size = bingo.BoardSize(*lb.Size)
	}

	b := bingo.Board{
		ID:    lb.ID,
		Name:  name,
		Size:  size,
		Cells: make([]bingo.Cell, len(lb.Cells)),
	}
	for i, c := range lb.Cells {
		b.Cells[i] = bingo.Cell{Position: migratePosition(c.Position), Goal: c.Goal, IsAchieved: c.IsAchieved}
	}
	return finishBoard(b, lb.CreatedAt, lb.UpdatedAt)
}

func migratePosition(p string) bingo.Position {
	if mapped, ok := legacyPositions[p]; ok {
		return mapped
	}
	return bingo.Position(p)
}

func finishBoard(b bingo.Board, createdAt, updatedAt string) (bingo.Board, error) {
	var err error
	if b.CreatedAt, err = ParseTime(createdAt); err != nil {
		return bingo.Board{}, err
	}
	if b.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return bingo.Board{}, err
	}
	if err := bingo.ValidateBoard(b); err != nil {
		return bingo.Board{}, err
	}

	b.ID = bingo.CanonicalBoardID(b.ID)
	// validated lengths are those of the trimmed text; store it that way
	b.Name = strings.TrimSpace(b.Name)
	for i := range b.Cells {
		b.Cells[i].Goal = strings.TrimSpace(b.Cells[i].Goal)
	}
	return b, nil
}
