package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAdapter struct {
	mu        sync.Mutex
	loaded    *bingo.AppState
	loadErr   error
	saveErr   error
	deleteErr error
	saves     []bingo.AppState
	deleted   []string
}

func (r *recordingAdapter) Load(context.Context) (*bingo.AppState, error) {
	return r.loaded, r.loadErr
}

func (r *recordingAdapter) Save(_ context.Context, s bingo.AppState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, s.Clone())
	return r.saveErr
}

func (r *recordingAdapter) SaveBoard(context.Context, bingo.Board) error { return nil }

func (r *recordingAdapter) DeleteBoard(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return r.deleteErr
}

func (r *recordingAdapter) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newSession(t *testing.T, a *recordingAdapter, opts ...SessionOption) (*BoardSession, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts = append([]SessionOption{WithClock(clock.now), WithSaveDelay(time.Hour)}, opts...)
	s := NewBoardSession(a, opts...)
	t.Cleanup(s.saver.Stop)
	return s, clock
}

func TestSession_InitLoadsOnce(t *testing.T) {
	b, err := bingo.NewBoard("Stored", bingo.Size3, time.Now())
	require.NoError(t, err)
	a := &recordingAdapter{loaded: &bingo.AppState{Boards: []bingo.Board{b}, CurrentBoardID: b.ID, IsSaving: true}}
	s, _ := newSession(t, a)

	s.Init(context.Background())
	snap := s.Snapshot()
	require.Len(t, snap.Boards, 1)
	assert.Equal(t, b.ID, snap.CurrentBoardID)
	assert.False(t, snap.IsSaving)

	a.loaded = nil
	s.Init(context.Background())
	assert.Len(t, s.Snapshot().Boards, 1)
}

func TestSession_InitLoadFailureStartsEmpty(t *testing.T) {
	s, _ := newSession(t, &recordingAdapter{loadErr: errors.New("corrupt")})
	s.Init(context.Background())
	assert.Empty(t, s.Snapshot().Boards)
}

func TestSession_CreateBoard(t *testing.T) {
	a := &recordingAdapter{}
	s, _ := newSession(t, a)

	b, err := s.CreateBoard("  Fitness  ", bingo.Size4)
	require.NoError(t, err)
	assert.Equal(t, "Fitness", b.Name)
	assert.Len(t, b.Cells, 16)

	snap := s.Snapshot()
	assert.Equal(t, b.ID, snap.CurrentBoardID)
	assert.True(t, snap.IsSaving, "save is pending")
	assert.Equal(t, 2, s.RemainingSlots())

	_, err = s.CreateBoard("", bingo.Size3)
	require.ErrorIs(t, err, bingo.ErrValidation)
	_, err = s.CreateBoard("x", 6)
	require.ErrorIs(t, err, bingo.ErrValidation)
}

func TestSession_CreateBoardRespectsLimit(t *testing.T) {
	s, _ := newSession(t, &recordingAdapter{}, WithMaxBoards(2))

	for i := 0; i < 2; i++ {
		_, err := s.CreateBoard("b", bingo.Size3)
		require.NoError(t, err)
	}
	_, err := s.CreateBoard("one too many", bingo.Size3)
	require.ErrorIs(t, err, common.ErrBoardLimitReached)
	assert.Equal(t, 0, s.RemainingSlots())
}

func TestSession_MutationsBumpUpdatedAtAndDebounce(t *testing.T) {
	a := &recordingAdapter{}
	s, _ := newSession(t, a)

	b, err := s.CreateBoard("Year", bingo.Size3)
	require.NoError(t, err)

	p := bingo.PositionOf(0, 0)
	require.NoError(t, s.UpdateGoal(b.ID, p, "  run 5k "))
	require.NoError(t, s.ToggleAchieved(b.ID, p))
	require.NoError(t, s.SetAchieved(b.ID, bingo.PositionOf(0, 1), true))
	require.NoError(t, s.RenameBoard(b.ID, "Year 2"))

	cur, ok := s.CurrentBoard()
	require.True(t, ok)
	assert.Equal(t, "Year 2", cur.Name)
	assert.True(t, cur.UpdatedAt.After(b.UpdatedAt))
	c, _ := cur.Cell(p)
	assert.Equal(t, "run 5k", c.Goal)
	assert.True(t, c.IsAchieved)

	assert.Equal(t, 0, a.saveCount(), "nothing saved before the quiet period")
	require.True(t, s.Flush())
	require.Equal(t, 1, a.saveCount())
	assert.Equal(t, "Year 2", a.saves[0].Boards[0].Name)
	assert.False(t, s.Snapshot().IsSaving)
	assert.False(t, s.Flush())
}

func TestSession_DebouncedSaveFiresOnce(t *testing.T) {
	a := &recordingAdapter{}
	s, _ := newSession(t, a, WithSaveDelay(20*time.Millisecond))

	b, err := s.CreateBoard("b", bingo.Size3)
	require.NoError(t, err)
	for col := 0; col < 3; col++ {
		require.NoError(t, s.ToggleAchieved(b.ID, bingo.PositionOf(1, col)))
	}

	require.Eventually(t, func() bool { return a.saveCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, a.saveCount())

	p, err := s.Progress(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.BingoCount)
}

func TestSession_UnknownTargets(t *testing.T) {
	s, _ := newSession(t, &recordingAdapter{})
	b, err := s.CreateBoard("b", bingo.Size3)
	require.NoError(t, err)

	missing := uuid.NewString()
	assert.ErrorIs(t, s.UpdateGoal(missing, bingo.PositionOf(0, 0), "x"), common.ErrorNotFound)
	assert.ErrorIs(t, s.ToggleAchieved(b.ID, bingo.PositionOf(4, 4)), common.ErrorNotFound)
	assert.ErrorIs(t, s.SetCurrentBoard(missing), common.ErrorNotFound)
	_, err = s.Progress(missing)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.DeleteBoard(context.Background(), missing), common.ErrorNotFound)
	assert.ErrorIs(t, s.UpdateGoal(b.ID, bingo.PositionOf(0, 0), strings.Repeat("x", 51)), bingo.ErrValidation)
}

func TestSession_RejectsMalformedTargets(t *testing.T) {
	a := &recordingAdapter{}
	s, _ := newSession(t, a)
	b, err := s.CreateBoard("b", bingo.Size5)
	require.NoError(t, err)

	for _, id := range []string{"missing", "", b.ID[:8]} {
		assert.ErrorIs(t, s.UpdateGoal(id, bingo.PositionOf(0, 0), "x"), bingo.ErrValidation, id)
		assert.ErrorIs(t, s.ToggleAchieved(id, bingo.PositionOf(0, 0)), bingo.ErrValidation, id)
		assert.ErrorIs(t, s.SetAchieved(id, bingo.PositionOf(0, 0), true), bingo.ErrValidation, id)
		assert.ErrorIs(t, s.RenameBoard(id, "n"), bingo.ErrValidation, id)
		assert.ErrorIs(t, s.DeleteBoard(context.Background(), id), bingo.ErrValidation, id)
		_, err = s.Progress(id)
		assert.ErrorIs(t, err, bingo.ErrValidation, id)
	}
	assert.ErrorIs(t, s.SetCurrentBoard("missing"), bingo.ErrValidation)

	for _, pos := range []bingo.Position{"cell_00_0", "cell_5_0", "topLeft", ""} {
		assert.ErrorIs(t, s.UpdateGoal(b.ID, pos, "x"), bingo.ErrValidation, pos)
		assert.ErrorIs(t, s.ToggleAchieved(b.ID, pos), bingo.ErrValidation, pos)
		assert.ErrorIs(t, s.SetAchieved(b.ID, pos, true), bingo.ErrValidation, pos)
	}

	got, ok := s.CurrentBoard()
	require.True(t, ok)
	assert.Equal(t, b, got, "rejected calls leave the board untouched")
	assert.Empty(t, a.deleted)
}

func TestSession_DeleteBoardIsImmediate(t *testing.T) {
	a := &recordingAdapter{deleteErr: errors.New("offline")}
	s, _ := newSession(t, a)

	b1, err := s.CreateBoard("one", bingo.Size3)
	require.NoError(t, err)
	b2, err := s.CreateBoard("two", bingo.Size3)
	require.NoError(t, err)

	require.NoError(t, s.DeleteBoard(context.Background(), b2.ID), "adapter failures are logged only")
	assert.Equal(t, []string{b2.ID}, a.deleted)
	assert.Equal(t, 0, a.saveCount())

	snap := s.Snapshot()
	require.Len(t, snap.Boards, 1)
	assert.Equal(t, b1.ID, snap.Boards[0].ID)
	assert.Empty(t, snap.CurrentBoardID)

	require.NoError(t, s.SetCurrentBoard(b1.ID))
	require.NoError(t, s.SetCurrentBoard(""))
	_, ok := s.CurrentBoard()
	assert.False(t, ok)
}

func TestSession_SaveFailureKeepsMemory(t *testing.T) {
	a := &recordingAdapter{saveErr: errors.New("disk full")}
	s, _ := newSession(t, a)

	_, err := s.CreateBoard("b", bingo.Size3)
	require.NoError(t, err)
	require.True(t, s.Flush())

	snap := s.Snapshot()
	assert.Len(t, snap.Boards, 1)
	assert.False(t, snap.IsSaving)
}

func TestSession_ReplaceAndReset(t *testing.T) {
	a := &recordingAdapter{}
	s, _ := newSession(t, a)
	_, err := s.CreateBoard("pending", bingo.Size3)
	require.NoError(t, err)

	other := &recordingAdapter{}
	b, err := bingo.NewBoard("remote", bingo.Size5, time.Now())
	require.NoError(t, err)
	s.Replace(other, bingo.AppState{Boards: []bingo.Board{b}, CurrentBoardID: b.ID})

	assert.False(t, s.Flush(), "pending save dropped on replace")
	assert.Equal(t, 0, a.saveCount())
	assert.Same(t, other, s.Adapter())
	assert.Equal(t, b.ID, s.Snapshot().CurrentBoardID)

	require.NoError(t, s.RenameBoard(b.ID, "renamed"))
	require.True(t, s.Flush())
	assert.Equal(t, 1, other.saveCount())

	s.Reset()
	assert.Empty(t, s.Snapshot().Boards)
	assert.Equal(t, 3, s.RemainingSlots())
}
