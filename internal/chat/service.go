package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mixaill76/vertex_proxy/internal/logger"
	"github.com/mixaill76/vertex_proxy/internal/monitoring"
)

// Service runs chat requests against a Backend. It is shared by the HTTP and
// gRPC transports, which only translate wire formats and errors.
type Service struct {
	backend Backend
	metrics *monitoring.Metrics
	logger  *slog.Logger
}

func NewService(backend Backend, metrics *monitoring.Metrics, logger *slog.Logger) *Service {
	return &Service{
		backend: backend,
		metrics: metrics,
		logger:  logger,
	}
}

// Chat performs a unary generation. Validation errors are returned before the
// backend is touched; backend failures are wrapped in ErrBackend.
func (s *Service) Chat(ctx context.Context, req *Request) (*Response, error) {
	contents, err := BuildContents(req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Sending contents to backend",
		"turns", len(contents),
		"contents", logger.Payload(contents),
	)

	resp, err := s.backend.GenerateContent(ctx, contents)
	if err != nil {
		s.metrics.RecordBackendError("generate")
		s.logger.Error("Backend generate failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}

	s.logger.Debug("Received backend response", "response", logger.Payload(resp))

	return MapResponse(resp), nil
}

// StreamChat validates req, opens a backend stream and relays it to sink.
func (s *Service) StreamChat(ctx context.Context, req *Request, sink ChunkSink) (RelayStats, error) {
	contents, err := BuildContents(req)
	if err != nil {
		return RelayStats{}, err
	}

	s.logger.Debug("Streaming contents to backend",
		"turns", len(contents),
		"contents", logger.Payload(contents),
	)

	stats, err := Relay(ctx, s.backend.GenerateContentStream(ctx, contents), sink)
	if err != nil {
		s.logStreamError(ctx, err, stats)
		return stats, err
	}

	s.logger.Debug("Stream completed",
		"chunks", stats.Chunks,
		"finish_reason", stats.FinishReason,
	)
	return stats, nil
}

func (s *Service) logStreamError(ctx context.Context, err error, stats RelayStats) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.metrics.RecordBackendError("stream")
		s.logger.Warn("Stream exceeded request timeout",
			"chunks", stats.Chunks,
			"error", err,
		)
	case ctx.Err() != nil:
		s.logger.Warn("Stream cancelled by client",
			"chunks", stats.Chunks,
			"error", err,
		)
	case errors.Is(err, ErrBackend):
		s.metrics.RecordBackendError("stream")
		s.logger.Error("Backend stream failed",
			"chunks", stats.Chunks,
			"error", err,
		)
	default:
		s.logger.Warn("Failed to write stream to client",
			"chunks", stats.Chunks,
			"error", err,
		)
	}
}
