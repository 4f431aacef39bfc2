package server

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/visiting-cards/internal/common"
)

// RequestIDHeader carries a caller-supplied request id.
const RequestIDHeader = "x-request-id"

// UnaryLoggingInterceptor tags each call with a request id, logs its outcome
// and maps application errors to gRPC status codes.
func UnaryLoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		rid := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(RequestIDHeader); len(v) > 0 {
				rid = v[0]
			}
		}
		if rid == "" {
			rid = common.NewRequestID()
		}
		reqLogger := logger.With("request_id", rid, "method", info.FullMethod)
		ctx = common.WithLogger(common.WithRequestID(ctx, rid), reqLogger)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, rid))

		resp, err := handler(ctx, req)
		err = common.ToStatus(err)

		code := status.Code(err)
		attrs := []any{"code", code.String(), "duration_ms", time.Since(start).Milliseconds()}
		if err != nil {
			reqLogger.Warn("grpc.call.failed", append(attrs, "error", err)...)
		} else {
			reqLogger.Info("grpc.call.ok", attrs...)
		}
		return resp, err
	}
}
