package bingo

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	GoalMaxLength      = 50
	BoardNameMaxLength = 100
	boardNameMinLength = 1

	// maxPositionIndex bounds row and column of any position regardless of
	// the board it belongs to.
	maxPositionIndex = int(Size5)
)

// ValidateGoal checks the length of a goal and returns it trimmed.
func ValidateGoal(goal string) (string, error) {
	var v violations
	if utf8.RuneCountInString(goal) > GoalMaxLength {
		v.add("goal", "must be at most %d characters", GoalMaxLength)
	}
	if err := v.err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(goal), nil
}

// ValidateBoardName trims the name and checks it is 1..100 characters long.
func ValidateBoardName(name string) (string, error) {
	name = strings.TrimSpace(name)

	var v violations
	n := utf8.RuneCountInString(name)
	switch {
	case n < boardNameMinLength:
		v.add("name", "must not be empty")
	case n > BoardNameMaxLength:
		v.add("name", "must be at most %d characters", BoardNameMaxLength)
	}
	if err := v.err(); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateBoardSize rejects sizes outside SupportedSizes.
func ValidateBoardSize(size BoardSize) error {
	var v violations
	if !size.Valid() {
		v.add("size", "must be one of %v", SupportedSizes)
	}
	return v.err()
}

// ValidatePosition parses s as a cell_R_C position with R and C below 5.
func ValidatePosition(s string) (Position, error) {
	var v violations
	p := Position(s)
	row, col, ok := p.Coords()
	if !ok || row >= maxPositionIndex || col >= maxPositionIndex {
		v.add("position", "invalid cell position %q", s)
	}
	if err := v.err(); err != nil {
		return "", err
	}
	return p, nil
}

// ValidateBoardID requires a UUID.
func ValidateBoardID(id string) error {
	var v violations
	if _, err := uuid.Parse(id); err != nil {
		v.add("id", "invalid board id %q", id)
	}
	return v.err()
}

// legacyIDSpace namespaces the UUIDs derived from pre-UUID board ids.
var legacyIDSpace = uuid.MustParse("5f0c7c52-8a5e-4c36-9d43-0b6f1a3e2d71")

// CanonicalBoardID returns id unchanged when it is a UUID or blank. Any other
// id is mapped to a name-based UUID, so the same legacy id always yields the
// same board id.
func CanonicalBoardID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return id
	}
	if _, err := uuid.Parse(id); err == nil {
		return id
	}
	return uuid.NewSHA1(legacyIDSpace, []byte(id)).String()
}

// ValidateBoard checks a board received from storage or the network. Ids are
// treated as opaque non-empty strings here since older clients did not use
// UUIDs.
func ValidateBoard(b Board) error {
	var v violations

	if strings.TrimSpace(b.ID) == "" {
		v.add("id", "must not be empty")
	}
	if strings.TrimSpace(b.Name) == "" {
		v.add("name", "must not be empty")
	} else if utf8.RuneCountInString(strings.TrimSpace(b.Name)) > BoardNameMaxLength {
		v.add("name", "must be at most %d characters", BoardNameMaxLength)
	}

	if !b.Size.Valid() {
		v.add("size", "must be one of %v", SupportedSizes)
		return v.err()
	}

	if len(b.Cells) != b.Size.CellCount() {
		v.add("cells", "expected %d cells, got %d", b.Size.CellCount(), len(b.Cells))
	}

	seen := make(positionSet, len(b.Cells))
	for _, c := range b.Cells {
		if !c.Position.Within(b.Size) {
			v.add("cells", "invalid cell position %q", c.Position)
			continue
		}
		if seen.has(c.Position) {
			v.add("cells", "duplicate cell position %q", c.Position)
			continue
		}
		seen[c.Position] = struct{}{}
		if utf8.RuneCountInString(c.Goal) > GoalMaxLength {
			v.add("cells", "goal at %q must be at most %d characters", c.Position, GoalMaxLength)
		}
	}

	return v.err()
}
