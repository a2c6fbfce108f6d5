package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
	"github.com/dmitrijs2005/goalbingo/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Unknown errors are logged
// and reported as Internal without details.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrBoardLimitReached):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, common.ErrorConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, bingo.ErrValidation), errors.Is(err, services.ErrBadCredentials):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, services.ErrArchiveDisabled):
		return status.Error(codes.Unimplemented, err.Error())
	}

	s.logger.Error(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
