package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/kv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const namespaceKey ctxKey = "namespace"

// namespaceInterceptor stores the request namespace in the context.
func (s *GRPCServer) namespaceInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	ns := s.namespace
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.NamespaceHeaderName); len(values) > 0 && values[0] != "" {
			ns = values[0]
		}
	}
	if err := kv.ValidateNamespace(ns); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return handler(context.WithValue(ctx, namespaceKey, ns), req)
}

func namespaceFrom(ctx context.Context, def string) string {
	if ns, ok := ctx.Value(namespaceKey).(string); ok {
		return ns
	}
	return def
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "rpc failed", args...)
	default:
		s.logger.Warn(ctx, "rpc rejected", args...)
	}

	return resp, err
}
