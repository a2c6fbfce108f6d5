package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
	"github.com/dmitrijs2005/goalbingo/internal/dbx"
	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/server/cache"
	"github.com/dmitrijs2005/goalbingo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
)

// ErrArchiveDisabled is returned by Archive when no archive bucket is
// configured.
var ErrArchiveDisabled = errors.New("board archive is not configured")

// Archiver stores boards outside the account.
type Archiver interface {
	Archive(ctx context.Context, userID string, boards []storage.StoredBoard) (int, error)
}

// BoardService applies the per-account rules on top of the boards
// repository: capacity, ownership and caching of loads.
type BoardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.BoardCache
	archiver    Archiver
	maxBoards   int
	log         logging.Logger
}

// NewBoardService wires the service. archiver may be nil.
func NewBoardService(db *sql.DB, m repomanager.RepositoryManager, c cache.BoardCache, a Archiver, maxBoards int, log logging.Logger) *BoardService {
	return &BoardService{
		db:          db,
		repomanager: m,
		cache:       c,
		archiver:    a,
		maxBoards:   maxBoards,
		log:         log.With("module", "boards"),
	}
}

// Load returns the account's boards, newest created first. Cache failures
// fall through to the database.
func (s *BoardService) Load(ctx context.Context, userID string) ([]storage.StoredBoard, error) {
	cached, err := s.cache.Get(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn(ctx, "board cache read failed", "user", userID, "error", err)
	}

	boards, err := s.repomanager.Boards(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	out := make([]storage.StoredBoard, len(boards))
	for i, b := range boards {
		out[i] = storage.EncodeBoard(b)
	}

	if err := s.cache.Set(ctx, userID, out); err != nil {
		s.log.Warn(ctx, "board cache write failed", "user", userID, "error", err)
	}
	return out, nil
}

// SaveBoard creates or replaces one board. A board owned by someone else
// yields common.ErrorConflict; a new board beyond the account's capacity
// yields common.ErrBoardLimitReached.
//
// The user row is locked first so concurrent saves of one account are
// serialised and cannot both pass the capacity check.
func (s *BoardService) SaveBoard(ctx context.Context, userID string, board bingo.Board) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Lock(ctx, userID); err != nil {
			return err
		}
		repo := s.repomanager.Boards(tx)

		owner, err := repo.Owner(ctx, board.ID)
		switch {
		case err == nil && owner != userID:
			return fmt.Errorf("board %s: %w", board.ID, common.ErrorConflict)
		case err == nil:
		case errors.Is(err, common.ErrorNotFound):
			n, err := repo.Count(ctx, userID)
			if err != nil {
				return err
			}
			if n >= s.maxBoards {
				return common.ErrBoardLimitReached
			}
		default:
			return err
		}
		return repo.Upsert(ctx, userID, board)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// SaveBoards replaces the account's whole collection under the same user
// lock as SaveBoard.
func (s *BoardService) SaveBoards(ctx context.Context, userID string, boards []bingo.Board) error {
	if len(boards) > s.maxBoards {
		return common.ErrBoardLimitReached
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Lock(ctx, userID); err != nil {
			return err
		}
		repo := s.repomanager.Boards(tx)
		if err := repo.DeleteAll(ctx, userID); err != nil {
			return err
		}
		for _, b := range boards {
			if err := repo.Upsert(ctx, userID, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// DeleteBoard removes one board; unknown ids are ignored.
func (s *BoardService) DeleteBoard(ctx context.Context, userID, boardID string) error {
	if err := s.repomanager.Boards(s.db).Delete(ctx, userID, boardID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Archive hands boards dropped by a client merge to the archiver.
func (s *BoardService) Archive(ctx context.Context, userID string, boards []storage.StoredBoard) (int, error) {
	if s.archiver == nil {
		return 0, ErrArchiveDisabled
	}
	n, err := s.archiver.Archive(ctx, userID, boards)
	if err != nil {
		return n, fmt.Errorf("archive boards: %w", err)
	}
	s.log.Info(ctx, "archived boards", "user", userID, "count", n)
	return n, nil
}

func (s *BoardService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn(ctx, "board cache invalidation failed", "user", userID, "error", err)
	}
}
