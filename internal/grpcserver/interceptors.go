package grpcserver

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mixaill76/vertex_proxy/internal/auth"
	"github.com/mixaill76/vertex_proxy/internal/monitoring"
	"github.com/mixaill76/vertex_proxy/internal/security"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// RequestIDMetadataKey carries the per-call correlation ID
const RequestIDMetadataKey = "x-request-id"

// healthServicePrefix is exempt from the API key gate
const healthServicePrefix = "/grpc.health.v1.Health/"

type requestIDKey struct{}

// RequestID returns the ID assigned by the request ID interceptor
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// wrappedStream overrides the context of a server stream
type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context {
	return w.ctx
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

func clientAddr(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	return auth.ClientHost(p.Addr.String())
}

// withRequestID reuses the caller's x-request-id or generates one
func withRequestID(ctx context.Context) (context.Context, string) {
	id := firstMetadata(ctx, RequestIDMetadataKey)
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey{}, id), id
}

func unaryRequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, id := withRequestID(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDMetadataKey, id))
		return handler(ctx, req)
	}
}

func streamRequestIDInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, id := withRequestID(ss.Context())
		_ = ss.SetHeader(metadata.Pairs(RequestIDMetadataKey, id))
		return handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})
	}
}

// authorize runs the API key gate for one call and converts its error to a status
func authorize(ctx context.Context, gate *auth.Gate, method string) error {
	if strings.HasPrefix(method, healthServicePrefix) {
		return nil
	}

	err := gate.Authorize(monitoring.TransportGRPC, method, firstMetadata(ctx, auth.MetadataKey), clientAddr(ctx))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, auth.ErrUnauthenticated.Error())
	case errors.Is(err, auth.ErrClientBanned):
		return status.Error(codes.ResourceExhausted, auth.ErrClientBanned.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

func unaryAuthInterceptor(gate *auth.Gate) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := authorize(ctx, gate, info.FullMethod); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func streamAuthInterceptor(gate *auth.Gate) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := authorize(ss.Context(), gate, info.FullMethod); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func logCall(ctx context.Context, logger *slog.Logger, metrics *monitoring.Metrics, method string, start time.Time, err error) {
	code := status.Code(err)
	duration := time.Since(start)
	metrics.RecordRequest(monitoring.TransportGRPC, method, code.String(), duration)

	level := slog.LevelInfo
	if strings.HasPrefix(method, healthServicePrefix) {
		level = slog.LevelDebug
	}
	logger.Log(ctx, level, "grpc call",
		"method", method,
		"code", code.String(),
		"duration", duration.String(),
		"remote", clientAddr(ctx),
		"request_id", RequestID(ctx),
	)
}

func logMetadata(ctx context.Context, logger *slog.Logger, method string) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	md, _ := metadata.FromIncomingContext(ctx)
	logger.Debug("grpc call metadata",
		"method", method,
		"metadata", security.MaskMetadata(md),
	)
}

func unaryLoggingInterceptor(logger *slog.Logger, metrics *monitoring.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		logMetadata(ctx, logger, info.FullMethod)
		resp, err := handler(ctx, req)
		logCall(ctx, logger, metrics, info.FullMethod, start, err)
		return resp, err
	}
}

func streamLoggingInterceptor(logger *slog.Logger, metrics *monitoring.Metrics) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		logMetadata(ss.Context(), logger, info.FullMethod)
		err := handler(srv, ss)
		logCall(ss.Context(), logger, metrics, info.FullMethod, start, err)
		return err
	}
}

func recovered(logger *slog.Logger, method string, rec any) error {
	logger.Error("panic recovered",
		"error", rec,
		"method", method,
		"stack", string(debug.Stack()),
	)
	return status.Error(codes.Internal, "internal server error")
}

func unaryRecoveryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = recovered(logger, info.FullMethod, rec)
			}
		}()
		return handler(ctx, req)
	}
}

func streamRecoveryInterceptor(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = recovered(logger, info.FullMethod, rec)
			}
		}()
		return handler(srv, ss)
	}
}
