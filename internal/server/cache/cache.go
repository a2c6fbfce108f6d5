// Package cache keeps recently loaded board lists so that repeated loads of
// the same account skip Postgres. Redis backs it in production; MemoryCache
// serves single-instance and test setups.
package cache

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/goalbingo/internal/storage"
)

// ErrCacheMiss is returned by Get when nothing is cached for the account.
var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "goalbingo:boards:"

// BoardCache stores an account's board list in its wire shape.
type BoardCache interface {
	Get(ctx context.Context, userID string) ([]storage.StoredBoard, error)
	Set(ctx context.Context, userID string, boards []storage.StoredBoard) error
	Delete(ctx context.Context, userID string) error
}

func key(userID string) string {
	return keyPrefix + userID
}
