package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/api"
	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const pingTimeout = 5 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.BoardServiceClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.Tokens()

	// a restored session has only a refresh token
	if _, public := api.PublicMethods[method]; !public && access == "" && refresh != "" {
		if fresh, ok := s.refresh(ctx, refresh); ok {
			access = fresh
		}
	}

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" || method == api.MethodRefreshToken {
		return err
	}

	fresh, ok := s.refresh(ctx, refresh)
	if !ok {
		return err
	}
	return invoker(withAccessToken(ctx, fresh), method, req, reply, cc, opts...)
}

func (s *GRPCClient) refresh(ctx context.Context, refresh string) (string, bool) {
	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		return "", false
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.AccessToken, true
}

// NewGRPCClient dials endpointURL lazily; no network traffic happens until
// the first call.
func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpointURL, err)
	}
	c.conn = conn
	c.client = api.NewBoardServiceClient(conn)
	return c, nil
}

// Tokens returns the current access and refresh tokens.
func (s *GRPCClient) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken, s.refreshToken = access, refresh
	s.mu.Unlock()
}

// SetRefreshToken restores a session saved on the device. The next call
// that fails with an expired token refreshes it.
func (s *GRPCClient) SetRefreshToken(token string) {
	s.mu.Lock()
	s.refreshToken = token
	s.mu.Unlock()
}

// Logout forgets both tokens. Nothing is sent to the server.
func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) Register(ctx context.Context, username string, password []byte) error {
	_, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Password: string(password)})
	return s.mapError(err)
}

// Login signs in and keeps the issued tokens for later calls.
func (s *GRPCClient) Login(ctx context.Context, username string, password []byte) error {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: string(password)})
	if err != nil {
		return s.mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != api.PingStatusOK {
		return ErrUnavailable
	}
	return nil
}

// LoadBoards fetches the signed-in user's boards.
func (s *GRPCClient) LoadBoards(ctx context.Context) (*api.LoadBoardsResponse, error) {
	resp, err := s.client.LoadBoards(ctx, &api.LoadBoardsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) SaveBoard(ctx context.Context, req *api.SaveBoardRequest) error {
	_, err := s.client.SaveBoard(ctx, req)
	return s.mapError(err)
}

func (s *GRPCClient) SaveBoards(ctx context.Context, req *api.SaveBoardsRequest) error {
	_, err := s.client.SaveBoards(ctx, req)
	return s.mapError(err)
}

func (s *GRPCClient) DeleteBoard(ctx context.Context, id string) error {
	_, err := s.client.DeleteBoard(ctx, &api.DeleteBoardRequest{ID: id})
	return s.mapError(err)
}

func (s *GRPCClient) ArchiveBoards(ctx context.Context, req *api.ArchiveBoardsRequest) (int, error) {
	resp, err := s.client.ArchiveBoards(ctx, req)
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Archived, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.ResourceExhausted:
		return common.ErrBoardLimitReached
	case codes.FailedPrecondition, codes.Aborted:
		return common.ErrorConflict
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", bingo.ErrValidation, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
