package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
)

const (
	DefaultSaveDelay = 500 * time.Millisecond
	saveTimeout      = 15 * time.Second
)

// BoardSession owns the in-memory board collection of one signed-in (or
// anonymous) user. Mutations apply to memory immediately and are persisted
// through the active adapter after a quiet period; deletions are sent to the
// adapter right away. Persistence failures are logged, never returned: the
// in-memory state stays authoritative.
type BoardSession struct {
	mu          sync.Mutex
	state       bingo.AppState
	saving      bool
	initialized bool
	adapter     storage.Adapter

	saver     *Debouncer
	maxBoards int
	now       func() time.Time
	log       logging.Logger
}

type SessionOption func(*BoardSession)

func WithClock(now func() time.Time) SessionOption {
	return func(s *BoardSession) { s.now = now }
}

// WithMaxBoards overrides bingo.MaxBoards.
func WithMaxBoards(n int) SessionOption {
	return func(s *BoardSession) { s.maxBoards = n }
}

// WithSaveDelay sets the quiet period before changes are persisted.
func WithSaveDelay(d time.Duration) SessionOption {
	return func(s *BoardSession) { s.saver = NewDebouncer(d) }
}

func WithSessionLogger(l logging.Logger) SessionOption {
	return func(s *BoardSession) { s.log = l }
}

// NewBoardSession constructs an uninitialized session over adapter. Call
// Init before use.
func NewBoardSession(adapter storage.Adapter, opts ...SessionOption) *BoardSession {
	s := &BoardSession{
		adapter:   adapter,
		saver:     NewDebouncer(DefaultSaveDelay),
		maxBoards: bingo.MaxBoards,
		now:       time.Now,
		log:       logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("module", "board_session")
	return s
}

// Init loads the collection from the active adapter once. Load failures
// leave the session empty.
func (s *BoardSession) Init(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	adapter := s.adapter
	s.mu.Unlock()

	st, err := adapter.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "load boards failed, starting empty", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}
	if st != nil {
		s.state = st.Clone()
		s.state.IsSaving = false
	}
	s.initialized = true
}

// Replace swaps the active adapter and the collection, dropping any pending
// save. Used when signing in or out.
func (s *BoardSession) Replace(adapter storage.Adapter, state bingo.AppState) {
	s.saver.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapter = adapter
	s.state = state.Clone()
	s.state.IsSaving = false
	s.saving = false
	s.initialized = true
}

// Reset forgets everything, including any pending save.
func (s *BoardSession) Reset() {
	s.saver.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = bingo.AppState{}
	s.saving = false
	s.initialized = false
}

// Adapter returns the active storage adapter.
func (s *BoardSession) Adapter() storage.Adapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adapter
}

// CreateBoard adds an empty board and makes it current.
func (s *BoardSession) CreateBoard(name string, size bingo.BoardSize) (bingo.Board, error) {
	name, err := bingo.ValidateBoardName(name)
	if err != nil {
		return bingo.Board{}, err
	}
	if err := bingo.ValidateBoardSize(size); err != nil {
		return bingo.Board{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Boards) >= s.maxBoards {
		return bingo.Board{}, common.ErrBoardLimitReached
	}

	b, err := bingo.NewBoard(name, size, s.now())
	if err != nil {
		return bingo.Board{}, err
	}
	s.state.Boards = append(s.state.Boards, b)
	s.state.CurrentBoardID = b.ID
	s.scheduleSaveLocked()

	return b.Clone(), nil
}

// UpdateGoal sets the goal text of one cell. The text is trimmed; an empty
// goal clears the cell.
func (s *BoardSession) UpdateGoal(boardID string, pos bingo.Position, goal string) error {
	goal, err := bingo.ValidateGoal(goal)
	if err != nil {
		return err
	}
	return s.mutateCell(boardID, pos, func(b *bingo.Board, now time.Time) bool {
		return b.SetGoal(pos, goal, now)
	})
}

// ToggleAchieved flips the achieved flag of one cell.
func (s *BoardSession) ToggleAchieved(boardID string, pos bingo.Position) error {
	return s.mutateCell(boardID, pos, func(b *bingo.Board, now time.Time) bool {
		return b.ToggleAchieved(pos, now)
	})
}

func (s *BoardSession) SetAchieved(boardID string, pos bingo.Position, achieved bool) error {
	return s.mutateCell(boardID, pos, func(b *bingo.Board, now time.Time) bool {
		return b.SetAchieved(pos, achieved, now)
	})
}

// RenameBoard trims and validates name before applying it.
func (s *BoardSession) RenameBoard(boardID, name string) error {
	name, err := bingo.ValidateBoardName(name)
	if err != nil {
		return err
	}
	return s.mutate(boardID, func(b *bingo.Board, now time.Time) bool {
		b.Rename(name, now)
		return true
	})
}

func (s *BoardSession) mutateCell(boardID string, pos bingo.Position, fn func(*bingo.Board, time.Time) bool) error {
	if _, err := bingo.ValidatePosition(string(pos)); err != nil {
		return err
	}
	return s.mutate(boardID, fn)
}

func (s *BoardSession) mutate(boardID string, fn func(*bingo.Board, time.Time) bool) error {
	if err := bingo.ValidateBoardID(boardID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.IndexOf(boardID)
	if i < 0 {
		return fmt.Errorf("board %s: %w", boardID, common.ErrorNotFound)
	}
	if !fn(&s.state.Boards[i], s.now()) {
		return fmt.Errorf("cell on board %s: %w", boardID, common.ErrorNotFound)
	}
	s.scheduleSaveLocked()
	return nil
}

// DeleteBoard removes a board from memory and tells the adapter at once.
// A current board pointer to it is cleared.
func (s *BoardSession) DeleteBoard(ctx context.Context, boardID string) error {
	if err := bingo.ValidateBoardID(boardID); err != nil {
		return err
	}

	s.mu.Lock()
	i := s.state.IndexOf(boardID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("board %s: %w", boardID, common.ErrorNotFound)
	}
	s.state.Boards = append(s.state.Boards[:i:i], s.state.Boards[i+1:]...)
	if s.state.CurrentBoardID == boardID {
		s.state.CurrentBoardID = ""
	}
	adapter := s.adapter
	s.scheduleSaveLocked()
	s.mu.Unlock()

	if err := adapter.DeleteBoard(ctx, boardID); err != nil {
		s.log.Error(ctx, "delete board", "board_id", boardID, "error", err)
	}
	return nil
}

// SetCurrentBoard selects a board; "" clears the selection.
func (s *BoardSession) SetCurrentBoard(boardID string) error {
	if boardID != "" {
		if err := bingo.ValidateBoardID(boardID); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if boardID != "" && s.state.IndexOf(boardID) < 0 {
		return fmt.Errorf("board %s: %w", boardID, common.ErrorNotFound)
	}
	s.state.CurrentBoardID = boardID
	return nil
}

// CurrentBoard returns a copy of the selected board, if any.
func (s *BoardSession) CurrentBoard() (bingo.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.Current()
	if !ok {
		return bingo.Board{}, false
	}
	return b.Clone(), true
}

// Snapshot returns a copy of the collection with IsSaving reflecting a
// pending or running save.
func (s *BoardSession) Snapshot() bingo.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state.Clone()
	st.IsSaving = s.saving
	return st
}

// Progress summarizes the cells and completed lines of one board.
func (s *BoardSession) Progress(boardID string) (bingo.ProgressSummary, error) {
	if err := bingo.ValidateBoardID(boardID); err != nil {
		return bingo.ProgressSummary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.Board(boardID)
	if !ok {
		return bingo.ProgressSummary{}, fmt.Errorf("board %s: %w", boardID, common.ErrorNotFound)
	}
	return b.Progress()
}

// RemainingSlots is how many more boards may be created.
func (s *BoardSession) RemainingSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return max(s.maxBoards-len(s.state.Boards), 0)
}

// Flush writes a pending save now. It reports whether one was pending.
func (s *BoardSession) Flush() bool {
	return s.saver.Flush()
}

func (s *BoardSession) scheduleSaveLocked() {
	s.saving = true
	s.saver.Trigger(s.saveNow)
}

func (s *BoardSession) saveNow() {
	s.mu.Lock()
	snapshot := s.state.Clone()
	adapter := s.adapter
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	err := adapter.Save(ctx, snapshot)
	if err != nil {
		s.log.Error(ctx, "save boards", "error", err)
	} else {
		s.log.Debug(ctx, "boards saved", "count", len(snapshot.Boards))
	}

	s.mu.Lock()
	s.saving = s.saver.Pending()
	s.mu.Unlock()
}
