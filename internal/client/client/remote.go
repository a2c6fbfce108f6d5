package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/goalbingo/internal/api"
	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
)

// RemoteAdapter stores the signed-in user's boards on the server. It also
// archives boards dropped by a login merge.
type RemoteAdapter struct {
	client Client
	log    logging.Logger
}

var _ storage.Adapter = (*RemoteAdapter)(nil)

// NewRemoteAdapter constructs an adapter that stores boards through c.
func NewRemoteAdapter(c Client, log logging.Logger) *RemoteAdapter {
	return &RemoteAdapter{client: c, log: log.With("module", "remote_storage")}
}

func (r *RemoteAdapter) signedIn() error {
	access, refresh := r.client.Tokens()
	if access == "" && refresh == "" {
		return ErrNotSignedIn
	}
	return nil
}

// Load fetches the user's boards, newest created first. Boards the server
// returns in a shape that fails validation are dropped.
func (r *RemoteAdapter) Load(ctx context.Context) (*bingo.AppState, error) {
	if err := r.signedIn(); err != nil {
		return nil, err
	}

	resp, err := r.client.LoadBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("load remote boards: %w", err)
	}

	st := &bingo.AppState{Boards: make([]bingo.Board, 0, len(resp.Boards))}
	for _, sb := range resp.Boards {
		b, err := storage.FromStored(sb)
		if err != nil {
			r.log.Warn(ctx, "dropping remote board", "board_id", sb.ID, "error", err)
			continue
		}
		st.Boards = append(st.Boards, b)
	}
	if st.IndexOf(resp.CurrentBoardID) >= 0 {
		st.CurrentBoardID = resp.CurrentBoardID
	}
	return st, nil
}

// Save replaces the user's remote collection with state.
func (r *RemoteAdapter) Save(ctx context.Context, state bingo.AppState) error {
	if err := r.signedIn(); err != nil {
		return err
	}
	return r.client.SaveBoards(ctx, &api.SaveBoardsRequest{Boards: encodeBoards(state.Boards)})
}

func (r *RemoteAdapter) SaveBoard(ctx context.Context, board bingo.Board) error {
	if err := r.signedIn(); err != nil {
		return err
	}
	return r.client.SaveBoard(ctx, &api.SaveBoardRequest{Board: storage.EncodeBoard(board)})
}

// DeleteBoard removes one board on the server right away.
func (r *RemoteAdapter) DeleteBoard(ctx context.Context, id string) error {
	if err := r.signedIn(); err != nil {
		return err
	}
	return r.client.DeleteBoard(ctx, id)
}

// Archive implements boardsync.Archiver.
func (r *RemoteAdapter) Archive(ctx context.Context, boards []bingo.Board) error {
	if len(boards) == 0 {
		return nil
	}
	n, err := r.client.ArchiveBoards(ctx, &api.ArchiveBoardsRequest{Boards: encodeBoards(boards)})
	if err != nil {
		return fmt.Errorf("archive boards: %w", err)
	}
	r.log.Info(ctx, "archived skipped boards", "count", n)
	return nil
}

func encodeBoards(boards []bingo.Board) []storage.StoredBoard {
	out := make([]storage.StoredBoard, len(boards))
	for i, b := range boards {
		out[i] = storage.EncodeBoard(b)
	}
	return out
}
