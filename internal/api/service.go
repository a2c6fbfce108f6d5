package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "goalbingo.v1.BoardService"

const (
	MethodRegister      = "/" + ServiceName + "/Register"
	MethodLogin         = "/" + ServiceName + "/Login"
	MethodRefreshToken  = "/" + ServiceName + "/RefreshToken"
	MethodPing          = "/" + ServiceName + "/Ping"
	MethodLoadBoards    = "/" + ServiceName + "/LoadBoards"
	MethodSaveBoard     = "/" + ServiceName + "/SaveBoard"
	MethodSaveBoards    = "/" + ServiceName + "/SaveBoards"
	MethodDeleteBoard   = "/" + ServiceName + "/DeleteBoard"
	MethodArchiveBoards = "/" + ServiceName + "/ArchiveBoards"
)

// PublicMethods do not require an access token.
var PublicMethods = map[string]struct{}{
	MethodRegister:     {},
	MethodLogin:        {},
	MethodRefreshToken: {},
	MethodPing:         {},
}

// BoardServiceServer is implemented by the server transport.
type BoardServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	LoadBoards(context.Context, *LoadBoardsRequest) (*LoadBoardsResponse, error)
	SaveBoard(context.Context, *SaveBoardRequest) (*SaveBoardResponse, error)
	SaveBoards(context.Context, *SaveBoardsRequest) (*SaveBoardsResponse, error)
	DeleteBoard(context.Context, *DeleteBoardRequest) (*DeleteBoardResponse, error)
	ArchiveBoards(context.Context, *ArchiveBoardsRequest) (*ArchiveBoardsResponse, error)
}

func unary[Req, Resp any](method string, call func(BoardServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BoardServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BoardServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes BoardService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BoardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(MethodRegister, BoardServiceServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, BoardServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, BoardServiceServer.RefreshToken)},
		{MethodName: "Ping", Handler: unary(MethodPing, BoardServiceServer.Ping)},
		{MethodName: "LoadBoards", Handler: unary(MethodLoadBoards, BoardServiceServer.LoadBoards)},
		{MethodName: "SaveBoard", Handler: unary(MethodSaveBoard, BoardServiceServer.SaveBoard)},
		{MethodName: "SaveBoards", Handler: unary(MethodSaveBoards, BoardServiceServer.SaveBoards)},
		{MethodName: "DeleteBoard", Handler: unary(MethodDeleteBoard, BoardServiceServer.DeleteBoard)},
		{MethodName: "ArchiveBoards", Handler: unary(MethodArchiveBoards, BoardServiceServer.ArchiveBoards)},
	},
	Metadata: "goalbingo/v1/boards.json",
}

// RegisterBoardServiceServer attaches srv to s.
func RegisterBoardServiceServer(s grpc.ServiceRegistrar, srv BoardServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// BoardServiceClient is the client side of BoardService.
type BoardServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	LoadBoards(ctx context.Context, in *LoadBoardsRequest, opts ...grpc.CallOption) (*LoadBoardsResponse, error)
	SaveBoard(ctx context.Context, in *SaveBoardRequest, opts ...grpc.CallOption) (*SaveBoardResponse, error)
	SaveBoards(ctx context.Context, in *SaveBoardsRequest, opts ...grpc.CallOption) (*SaveBoardsResponse, error)
	DeleteBoard(ctx context.Context, in *DeleteBoardRequest, opts ...grpc.CallOption) (*DeleteBoardResponse, error)
	ArchiveBoards(ctx context.Context, in *ArchiveBoardsRequest, opts ...grpc.CallOption) (*ArchiveBoardsResponse, error)
}

type boardServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBoardServiceClient(cc grpc.ClientConnInterface) BoardServiceClient {
	return &boardServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *boardServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *boardServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *boardServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *boardServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *boardServiceClient) LoadBoards(ctx context.Context, in *LoadBoardsRequest, opts ...grpc.CallOption) (*LoadBoardsResponse, error) {
	return invoke[LoadBoardsResponse](ctx, c.cc, MethodLoadBoards, in, opts)
}

func (c *boardServiceClient) SaveBoard(ctx context.Context, in *SaveBoardRequest, opts ...grpc.CallOption) (*SaveBoardResponse, error) {
	return invoke[SaveBoardResponse](ctx, c.cc, MethodSaveBoard, in, opts)
}

func (c *boardServiceClient) SaveBoards(ctx context.Context, in *SaveBoardsRequest, opts ...grpc.CallOption) (*SaveBoardsResponse, error) {
	return invoke[SaveBoardsResponse](ctx, c.cc, MethodSaveBoards, in, opts)
}

func (c *boardServiceClient) DeleteBoard(ctx context.Context, in *DeleteBoardRequest, opts ...grpc.CallOption) (*DeleteBoardResponse, error) {
	return invoke[DeleteBoardResponse](ctx, c.cc, MethodDeleteBoard, in, opts)
}

func (c *boardServiceClient) ArchiveBoards(ctx context.Context, in *ArchiveBoardsRequest, opts ...grpc.CallOption) (*ArchiveBoardsResponse, error) {
	return invoke[ArchiveBoardsResponse](ctx, c.cc, MethodArchiveBoards, in, opts)
}
