package grpc

import (
	"context"

	"github.com/dmitrijs2005/goalbingo/internal/api"
	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Register creates an account. Duplicate usernames map to AlreadyExists.
func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	u, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "Register", err)
	}
	s.logger.Info(ctx, "Registered", "username", u.UserName, "id", u.ID)
	return &api.RegisterResponse{}, nil
}

// Login checks the credentials and issues an access and refresh token pair.
func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	tokens, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "Login", err)
	}
	return &api.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

// RefreshToken rotates a refresh token and returns a new pair.
func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "RefreshToken", err)
	}
	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

// Ping lets clients check the server is reachable without signing in.
func (s *GRPCServer) Ping(context.Context, *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: api.PingStatusOK}, nil
}

// LoadBoards returns the caller's boards, newest first. The newest board is
// reported as current.
func (s *GRPCServer) LoadBoards(ctx context.Context, _ *api.LoadBoardsRequest) (*api.LoadBoardsResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	boards, err := s.boards.Load(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "LoadBoards", err)
	}

	resp := &api.LoadBoardsResponse{Boards: boards}
	if len(boards) > 0 {
		resp.CurrentBoardID = boards[0].ID
	}
	return resp, nil
}

// SaveBoard validates and upserts one board of the caller.
func (s *GRPCServer) SaveBoard(ctx context.Context, req *api.SaveBoardRequest) (*api.SaveBoardResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	b, err := decodeBoard(req.Board)
	if err != nil {
		return nil, err
	}
	if err := s.boards.SaveBoard(ctx, userID, b); err != nil {
		return nil, s.toStatus(ctx, "SaveBoard", err)
	}
	return &api.SaveBoardResponse{}, nil
}

// SaveBoards replaces the caller's collection. Any invalid or duplicate board
// rejects the whole request.
func (s *GRPCServer) SaveBoards(ctx context.Context, req *api.SaveBoardsRequest) (*api.SaveBoardsResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	boards := make([]bingo.Board, 0, len(req.Boards))
	seen := make(map[string]struct{}, len(req.Boards))
	for _, sb := range req.Boards {
		b, err := decodeBoard(sb)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[b.ID]; dup {
			return nil, status.Errorf(codes.InvalidArgument, "duplicate board id %s", b.ID)
		}
		seen[b.ID] = struct{}{}
		boards = append(boards, b)
	}

	if err := s.boards.SaveBoards(ctx, userID, boards); err != nil {
		return nil, s.toStatus(ctx, "SaveBoards", err)
	}
	return &api.SaveBoardsResponse{}, nil
}

// DeleteBoard removes one board. Unknown ids are not an error.
func (s *GRPCServer) DeleteBoard(ctx context.Context, req *api.DeleteBoardRequest) (*api.DeleteBoardResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "board id is required")
	}

	if err := s.boards.DeleteBoard(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, "DeleteBoard", err)
	}
	return &api.DeleteBoardResponse{}, nil
}

// ArchiveBoards hands boards dropped by a sign-in merge to the archive.
func (s *GRPCServer) ArchiveBoards(ctx context.Context, req *api.ArchiveBoardsRequest) (*api.ArchiveBoardsResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.boards.Archive(ctx, userID, req.Boards)
	if err != nil {
		return nil, s.toStatus(ctx, "ArchiveBoards", err)
	}
	return &api.ArchiveBoardsResponse{Archived: n}, nil
}

func requireUser(ctx context.Context) (string, error) {
	id, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing user")
	}
	return id, nil
}

// decodeBoard converts a wire board and rejects structurally broken ones.
func decodeBoard(sb storage.StoredBoard) (bingo.Board, error) {
	b, err := storage.FromStored(sb)
	if err != nil {
		return bingo.Board{}, status.Errorf(codes.InvalidArgument, "board %s: %v", sb.ID, err)
	}
	if err := bingo.ValidateBoard(b); err != nil {
		return bingo.Board{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return b, nil
}
