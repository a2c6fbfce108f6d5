package bingo

import "fmt"

// ProgressSummary is the compact progress view of a board.
//
// Hint is nil unless the board is not perfect, has no bingo yet, and at
// least one line is a single cell away from completion.
type ProgressSummary struct {
	Achieved   int
	Total      int
	BingoCount int
	IsPerfect  bool
	Hint       *string
}

type positionSet map[Position]struct{}

func achievedSet(cells []Cell) positionSet {
	set := make(positionSet, len(cells))
	for _, c := range cells {
		if c.IsAchieved {
			set[c.Position] = struct{}{}
		}
	}
	return set
}

func (s positionSet) has(p Position) bool {
	_, ok := s[p]
	return ok
}

func (s positionSet) countIn(line Line) int {
	n := 0
	for _, p := range line.Positions {
		if s.has(p) {
			n++
		}
	}
	return n
}

// CompletedLines returns the lines whose every position is achieved, in the
// order they appear in lines.
func CompletedLines(cells []Cell, lines []Line) []Line {
	achieved := achievedSet(cells)

	var completed []Line
	for _, line := range lines {
		if achieved.countIn(line) == len(line.Positions) {
			completed = append(completed, line)
		}
	}
	return completed
}

// BingoCount is len(CompletedLines(cells, lines)).
func BingoCount(cells []Cell, lines []Line) int {
	return len(CompletedLines(cells, lines))
}

// AchievedCount counts achieved cells.
func AchievedCount(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if c.IsAchieved {
			n++
		}
	}
	return n
}

// NearBingoLines returns the lines exactly one achieved cell short of
// completion.
func NearBingoLines(cells []Cell, lines []Line) []Line {
	achieved := achievedSet(cells)

	var near []Line
	for _, line := range lines {
		if achieved.countIn(line) == len(line.Positions)-1 {
			near = append(near, line)
		}
	}
	return near
}

// NearBingoPositions returns the missing cell of every near-bingo line,
// de-duplicated, in first-seen order.
func NearBingoPositions(cells []Cell, lines []Line) []Position {
	achieved := achievedSet(cells)
	seen := make(positionSet)

	var result []Position
	for _, line := range NearBingoLines(cells, lines) {
		for _, p := range line.Positions {
			if achieved.has(p) {
				continue
			}
			if !seen.has(p) {
				seen[p] = struct{}{}
				result = append(result, p)
			}
			break
		}
	}
	return result
}

// BingoLinePositions returns the union of positions belonging to any
// completed line, de-duplicated, in first-seen order.
func BingoLinePositions(cells []Cell, lines []Line) []Position {
	seen := make(positionSet)

	var result []Position
	for _, line := range CompletedLines(cells, lines) {
		for _, p := range line.Positions {
			if !seen.has(p) {
				seen[p] = struct{}{}
				result = append(result, p)
			}
		}
	}
	return result
}

// IsPerfect reports whether every cell is achieved.
func IsPerfect(cells []Cell) bool {
	return AchievedCount(cells) == len(cells)
}

// NearBingoHint is the hint shown for n near-bingo lines.
func NearBingoHint(n int) string {
	if n == 1 {
		return "One cell away from bingo! (1 line)"
	}
	return fmt.Sprintf("One cell away from bingo! (%d lines)", n)
}

// Summarize builds the ProgressSummary of cells evaluated against lines.
func Summarize(cells []Cell, lines []Line) ProgressSummary {
	summary := ProgressSummary{
		Achieved:   AchievedCount(cells),
		Total:      len(cells),
		BingoCount: BingoCount(cells, lines),
		IsPerfect:  IsPerfect(cells),
	}

	if summary.IsPerfect || summary.BingoCount > 0 {
		return summary
	}

	if near := NearBingoLines(cells, lines); len(near) > 0 {
		hint := NearBingoHint(len(near))
		summary.Hint = &hint
	}
	return summary
}
