package bingo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardWith(t *testing.T, size BoardSize, achieved ...Position) Board {
	t.Helper()
	b, err := NewBoard("test", size, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	for _, p := range achieved {
		require.True(t, b.SetAchieved(p, true, b.UpdatedAt))
	}
	return b
}

func linesOf(t *testing.T, size BoardSize) []Line {
	t.Helper()
	lines, err := LinesFor(size)
	require.NoError(t, err)
	return lines
}

func TestSummarize_TopRowBingo(t *testing.T) {
	b := boardWith(t, Size3, PositionOf(0, 0), PositionOf(0, 1), PositionOf(0, 2))

	s := Summarize(b.Cells, linesOf(t, Size3))
	assert.Equal(t, 3, s.Achieved)
	assert.Equal(t, 9, s.Total)
	assert.Equal(t, 1, s.BingoCount)
	assert.False(t, s.IsPerfect)
	assert.Nil(t, s.Hint)
}

func TestSummarize_NearBingoHint(t *testing.T) {
	b := boardWith(t, Size3, PositionOf(0, 0), PositionOf(0, 1))
	lines := linesOf(t, Size3)

	assert.Equal(t, []Position{PositionOf(0, 2)}, NearBingoPositions(b.Cells, lines))

	s := Summarize(b.Cells, lines)
	require.NotNil(t, s.Hint)
	assert.Contains(t, *s.Hint, "1")
	assert.Equal(t, NearBingoHint(1), *s.Hint)
}

func TestSummarize_HintCountsLines(t *testing.T) {
	b := boardWith(t, Size3, PositionOf(0, 0), PositionOf(1, 1), PositionOf(0, 2))
	lines := linesOf(t, Size3)

	near := NearBingoLines(b.Cells, lines)
	// top row (0,1 missing), main diagonal (2,2 missing), anti diagonal (2,0 missing)
	require.Len(t, near, 3)

	s := Summarize(b.Cells, lines)
	require.NotNil(t, s.Hint)
	assert.Equal(t, NearBingoHint(3), *s.Hint)
}

func TestSummarize_PerfectBoard(t *testing.T) {
	positions, err := AllPositions(Size4)
	require.NoError(t, err)
	b := boardWith(t, Size4, positions...)

	s := Summarize(b.Cells, linesOf(t, Size4))
	assert.True(t, s.IsPerfect)
	assert.Equal(t, 10, s.BingoCount)
	assert.Nil(t, s.Hint)
	assert.True(t, IsPerfect(b.Cells))
}

func TestSummarize_EmptyBoard(t *testing.T) {
	b := boardWith(t, Size5)
	s := Summarize(b.Cells, linesOf(t, Size5))
	assert.Equal(t, ProgressSummary{Total: 25}, s)
}

func TestCompletedLines_KeepsInputOrder(t *testing.T) {
	b := boardWith(t, Size3,
		PositionOf(0, 0), PositionOf(1, 1), PositionOf(2, 2),
		PositionOf(0, 1), PositionOf(0, 2))
	lines := linesOf(t, Size3)

	completed := CompletedLines(b.Cells, lines)
	require.Len(t, completed, 2)
	assert.Equal(t, LineRow, completed[0].Kind)
	assert.Equal(t, LineDiagonal, completed[1].Kind)
	assert.Equal(t, len(completed), BingoCount(b.Cells, lines))
}

func TestCompletedLines_Monotonic(t *testing.T) {
	lines := linesOf(t, Size4)
	positions, err := AllPositions(Size4)
	require.NoError(t, err)

	b := boardWith(t, Size4)
	prev := 0
	// achieve cells in a scrambled but deterministic order
	for i := 0; i < len(positions); i++ {
		p := positions[(i*7)%len(positions)]
		require.True(t, b.SetAchieved(p, true, b.UpdatedAt))

		completed := CompletedLines(b.Cells, lines)
		assert.GreaterOrEqual(t, len(completed), prev)
		prev = len(completed)
	}
	assert.Equal(t, Size4.LineCount(), prev)
}

func TestBingoLinePositions_Deduplicated(t *testing.T) {
	b := boardWith(t, Size3,
		PositionOf(0, 0), PositionOf(0, 1), PositionOf(0, 2),
		PositionOf(1, 0), PositionOf(2, 0))
	lines := linesOf(t, Size3)

	got := BingoLinePositions(b.Cells, lines)
	assert.ElementsMatch(t, []Position{
		PositionOf(0, 0), PositionOf(0, 1), PositionOf(0, 2),
		PositionOf(1, 0), PositionOf(2, 0),
	}, got)
}

func TestNearBingoPositions_Deduplicated(t *testing.T) {
	// (1,1) is missing from both the middle row and the middle column.
	b := boardWith(t, Size3, PositionOf(1, 0), PositionOf(1, 2), PositionOf(0, 1), PositionOf(2, 1))
	got := NearBingoPositions(b.Cells, linesOf(t, Size3))
	assert.Equal(t, []Position{PositionOf(1, 1)}, got)
}

func TestAchievedCount(t *testing.T) {
	cells := []Cell{{IsAchieved: true}, {}, {IsAchieved: true}}
	assert.Equal(t, 2, AchievedCount(cells))
	assert.False(t, IsPerfect(cells))
	assert.True(t, IsPerfect(nil))
}
