// Package grpcserver exposes the chat service as the vertexproxy.v1.VertexProxy
// gRPC service.
package grpcserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mixaill76/vertex_proxy/internal/auth"
	"github.com/mixaill76/vertex_proxy/internal/chat"
	"github.com/mixaill76/vertex_proxy/internal/monitoring"
	"github.com/mixaill76/vertex_proxy/internal/vertexpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Options tunes the gRPC server
type Options struct {
	MaxRecvMsgSizeMB int
	RequestTimeout   time.Duration
}

// Server implements vertexpb.VertexProxyServer on top of chat.Service
type Server struct {
	vertexpb.UnimplementedVertexProxyServer

	service        *chat.Service
	metrics        *monitoring.Metrics
	logger         *slog.Logger
	requestTimeout time.Duration
}

func NewServer(service *chat.Service, metrics *monitoring.Metrics, logger *slog.Logger, requestTimeout time.Duration) *Server {
	return &Server{
		service:        service,
		metrics:        metrics,
		logger:         logger,
		requestTimeout: requestTimeout,
	}
}

// New builds a grpc.Server with the VertexProxy and health services registered.
// Every VertexProxy call passes the API key gate first; health checks do not.
func New(service *chat.Service, gate *auth.Gate, metrics *monitoring.Metrics, logger *slog.Logger, opts Options) *grpc.Server {
	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			unaryRecoveryInterceptor(logger),
			unaryRequestIDInterceptor(),
			unaryLoggingInterceptor(logger, metrics),
			unaryAuthInterceptor(gate),
		),
		grpc.ChainStreamInterceptor(
			streamRecoveryInterceptor(logger),
			streamRequestIDInterceptor(),
			streamLoggingInterceptor(logger, metrics),
			streamAuthInterceptor(gate),
		),
	}
	if opts.MaxRecvMsgSizeMB > 0 {
		serverOpts = append(serverOpts, grpc.MaxRecvMsgSize(opts.MaxRecvMsgSizeMB*1024*1024))
	}

	s := grpc.NewServer(serverOpts...)
	vertexpb.RegisterVertexProxyServer(s, NewServer(service, metrics, logger, opts.RequestTimeout))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(vertexpb.VertexProxy_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	return s
}

func (s *Server) Chat(ctx context.Context, req *vertexpb.ChatRequest) (*vertexpb.ChatMessage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.service.Chat(ctx, fromProtoRequest(req))
	if err != nil {
		return nil, s.statusError(ctx, err)
	}
	return toProtoMessage(resp), nil
}

func (s *Server) StreamChat(req *vertexpb.ChatRequest, stream grpc.ServerStreamingServer[vertexpb.StreamChatMessage]) error {
	ctx, cancel := s.withTimeout(stream.Context())
	defer cancel()

	stats, err := s.service.StreamChat(ctx, fromProtoRequest(req), &streamSink{stream: stream})
	s.metrics.RecordStreamChunks(monitoring.TransportGRPC, stats.Chunks)
	if err == nil {
		return nil
	}
	if errors.Is(err, chat.ErrEmptyPrompt) || ctx.Err() != nil {
		return s.statusError(ctx, err)
	}

	// The error chunk already carries the failure; end the stream normally
	return nil
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

// statusError maps chat errors to gRPC status codes with client-safe messages
func (s *Server) statusError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, chat.ErrEmptyPrompt):
		return status.Error(codes.InvalidArgument, err.Error())
	case ctx.Err() != nil:
		return status.FromContextError(ctx.Err()).Err()
	default:
		return status.Error(codes.Internal, chat.ErrBackend.Error())
	}
}
