package client

import (
	"context"

	"github.com/dmitrijs2005/goalbingo/internal/api"
)

// Client is the client side of the board service.
type Client interface {
	Close() error
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Ping(ctx context.Context) error
	Tokens() (access, refresh string)
	SetRefreshToken(token string)
	Logout()

	LoadBoards(ctx context.Context) (*api.LoadBoardsResponse, error)
	SaveBoard(ctx context.Context, req *api.SaveBoardRequest) error
	SaveBoards(ctx context.Context, req *api.SaveBoardsRequest) error
	DeleteBoard(ctx context.Context, id string) error
	ArchiveBoards(ctx context.Context, req *api.ArchiveBoardsRequest) (int, error)
}
