// Package boards stores users' goal boards and their cells.
package boards

import (
	"context"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
)

type Repository interface {
	// List returns the user's boards, newest created first.
	List(ctx context.Context, userID string) ([]bingo.Board, error)
	Count(ctx context.Context, userID string) (int, error)
	// Owner returns the id of the user owning the board, or
	// common.ErrorNotFound when no such board exists.
	Owner(ctx context.Context, boardID string) (string, error)
	// Upsert creates or replaces the board and all of its cells. A board id
	// owned by another user yields common.ErrorConflict.
	Upsert(ctx context.Context, userID string, board bingo.Board) error
	// Delete is a no-op for unknown or foreign ids.
	Delete(ctx context.Context, userID, boardID string) error
	DeleteAll(ctx context.Context, userID string) error
}
