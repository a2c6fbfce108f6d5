// Package local stores the board collection in the device database as a
// single JSON document under storage.StateKey.
package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/goalbingo/internal/dbx"
	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
)

// Adapter implements storage.Adapter over the metadata table.
type Adapter struct {
	db  *sql.DB
	log logging.Logger
}

var _ storage.Adapter = (*Adapter)(nil)

func NewAdapter(db *sql.DB, log logging.Logger) *Adapter {
	return &Adapter{db: db, log: log.With("module", "local_storage")}
}

// Load returns the stored collection. Missing or unreadable data yields
// (nil, nil); boards that cannot be decoded are dropped and logged.
func (a *Adapter) Load(ctx context.Context) (*bingo.AppState, error) {
	st, err := a.read(ctx, metadata.NewSQLiteRepository(a.db))
	if err != nil {
		a.log.Error(ctx, "load boards", "error", err)
		return nil, nil
	}
	return st, nil
}

func (a *Adapter) Save(ctx context.Context, state bingo.AppState) error {
	return a.write(ctx, metadata.NewSQLiteRepository(a.db), state)
}

// SaveBoard inserts or replaces one board inside the stored collection.
func (a *Adapter) SaveBoard(ctx context.Context, board bingo.Board) error {
	return a.update(ctx, func(st *bingo.AppState) {
		if i := st.IndexOf(board.ID); i >= 0 {
			st.Boards[i] = board.Clone()
			return
		}
		st.Boards = append(st.Boards, board.Clone())
	})
}

// DeleteBoard removes one board; unknown ids are ignored.
func (a *Adapter) DeleteBoard(ctx context.Context, id string) error {
	return a.update(ctx, func(st *bingo.AppState) {
		i := st.IndexOf(id)
		if i < 0 {
			return
		}
		st.Boards = append(st.Boards[:i], st.Boards[i+1:]...)
		if st.CurrentBoardID == id {
			st.CurrentBoardID = ""
		}
	})
}

func (a *Adapter) update(ctx context.Context, fn func(*bingo.AppState)) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		st, err := a.read(ctx, repo)
		if err != nil {
			a.log.Warn(ctx, "stored boards unreadable, starting over", "error", err)
			st = nil
		}
		if st == nil {
			st = &bingo.AppState{}
		}

		fn(st)
		return a.write(ctx, repo, *st)
	})
}

func (a *Adapter) read(ctx context.Context, repo metadata.Repository) (*bingo.AppState, error) {
	raw, err := repo.Get(ctx, storage.StateKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	dec, err := storage.DecodeState(raw)
	if err != nil {
		return nil, err
	}
	for _, d := range dec.Dropped {
		a.log.Warn(ctx, "dropped stored board", "error", d)
	}
	return &dec.State, nil
}

func (a *Adapter) write(ctx context.Context, repo metadata.Repository, state bingo.AppState) error {
	data, err := storage.EncodeState(state)
	if err != nil {
		return fmt.Errorf("encode boards: %w", err)
	}
	if err := repo.Set(ctx, storage.StateKey, data); err != nil {
		return fmt.Errorf("save boards: %w", err)
	}
	return nil
}
