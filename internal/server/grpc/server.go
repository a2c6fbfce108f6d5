// Package grpc exposes the board server over gRPC. Messages travel in the
// JSON codec registered by package api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/goalbingo/internal/api"
	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/server/models"
	"github.com/dmitrijs2005/goalbingo/internal/server/services"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
	"google.golang.org/grpc"
)

type userService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type boardService interface {
	Load(ctx context.Context, userID string) ([]storage.StoredBoard, error)
	SaveBoard(ctx context.Context, userID string, board bingo.Board) error
	SaveBoards(ctx context.Context, userID string, boards []bingo.Board) error
	DeleteBoard(ctx context.Context, userID, boardID string) error
	Archive(ctx context.Context, userID string, boards []storage.StoredBoard) (int, error)
}

type GRPCServer struct {
	address   string
	users     userService
	boards    boardService
	logger    logging.Logger
	jwtSecret []byte
}

var _ api.BoardServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(addr string, l logging.Logger, us userService, bs boardService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   addr,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		boards:    bs,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis and stops gracefully when ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterBoardServiceServer(srv, s)

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}
