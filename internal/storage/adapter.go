// Package storage defines the persistence contract shared by the device-local
// and the remote board stores, together with the JSON shape boards take on
// disk and on the wire.
package storage

import (
	"context"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
)

// Adapter persists a board collection.
//
// Load returns (nil, nil) when there is nothing stored; unreadable data is
// reported as absent rather than as an error. Save writes the whole
// collection and never persists the transient IsSaving flag. DeleteBoard is
// idempotent.
type Adapter interface {
	Load(ctx context.Context) (*bingo.AppState, error)
	Save(ctx context.Context, state bingo.AppState) error
	SaveBoard(ctx context.Context, board bingo.Board) error
	DeleteBoard(ctx context.Context, id string) error
}
