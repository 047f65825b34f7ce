package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mixaill76/vertex_proxy/internal/auth"
	"github.com/mixaill76/vertex_proxy/internal/chat"
	"github.com/mixaill76/vertex_proxy/internal/monitoring"
)

// Client-facing error messages
const (
	msgInvalidJSON     = "invalid JSON body"
	msgBodyTooLarge    = "request body too large"
	msgInternal        = "internal server error"
	msgBackendError    = "backend error"
	msgTooManyAttempts = "too many failed authentication attempts"
)

// Proxy serves the HTTP/JSON variant of the chat API
type Proxy struct {
	service        *chat.Service
	gate           *auth.Gate
	logger         *slog.Logger
	metrics        *monitoring.Metrics
	maxBodySizeMB  int
	requestTimeout time.Duration
	trustForwarded bool
}

func New(service *chat.Service, gate *auth.Gate, logger *slog.Logger, metrics *monitoring.Metrics, maxBodySizeMB int, requestTimeout time.Duration, trustForwarded bool) *Proxy {
	return &Proxy{
		service:        service,
		gate:           gate,
		logger:         logger,
		metrics:        metrics,
		maxBodySizeMB:  maxBodySizeMB,
		requestTimeout: requestTimeout,
		trustForwarded: trustForwarded,
	}
}

// Chat handles POST /v1/chat
func (p *Proxy) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := p.chat(w, r)
	p.metrics.RecordRequest(monitoring.TransportHTTP, r.URL.Path, strconv.Itoa(status), time.Since(start))
}

// StreamChat handles POST /v1/chat/stream
func (p *Proxy) StreamChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := p.streamChat(w, r)
	p.metrics.RecordRequest(monitoring.TransportHTTP, r.URL.Path, strconv.Itoa(status), time.Since(start))
}

func (p *Proxy) chat(w http.ResponseWriter, r *http.Request) int {
	if status, ok := p.authorize(w, r); !ok {
		return status
	}

	req, status, ok := p.decodeRequest(w, r)
	if !ok {
		return status
	}

	ctx, cancel := context.WithTimeout(r.Context(), p.requestTimeout)
	defer cancel()

	resp, err := p.service.Chat(ctx, req)
	if err != nil {
		return p.writeChatError(w, r, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		p.logger.Warn("Failed to write chat response", "path", r.URL.Path, "error", err)
	}
	return http.StatusOK
}

func (p *Proxy) streamChat(w http.ResponseWriter, r *http.Request) int {
	if status, ok := p.authorize(w, r); !ok {
		return status
	}

	req, status, ok := p.decodeRequest(w, r)
	if !ok {
		return status
	}

	ctx, cancel := context.WithTimeout(r.Context(), p.requestTimeout)
	defer cancel()

	// From here on errors travel inside the event stream
	SetSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	stats, err := p.service.StreamChat(ctx, req, newSSESink(w))
	p.metrics.RecordStreamChunks(monitoring.TransportHTTP, stats.Chunks)
	if err != nil && isClientDisconnectError(err) {
		p.logger.Warn("Client disconnected during stream",
			"path", r.URL.Path,
			"chunks", stats.Chunks,
		)
	}
	return http.StatusOK
}

// authorize runs the API key gate and writes the rejection when it fails
func (p *Proxy) authorize(w http.ResponseWriter, r *http.Request) (int, bool) {
	err := p.gate.Authorize(monitoring.TransportHTTP, r.URL.Path, r.Header.Get(auth.HeaderName), getClientIP(r, p.trustForwarded))
	switch {
	case err == nil:
		return http.StatusOK, true
	case errors.Is(err, auth.ErrUnauthenticated):
		WriteErrorUnauthorized(w, auth.ErrUnauthenticated.Error())
		return http.StatusUnauthorized, false
	case errors.Is(err, auth.ErrClientBanned):
		WriteErrorRateLimit(w, msgTooManyAttempts)
		return http.StatusTooManyRequests, false
	default:
		WriteErrorInternal(w, msgInternal)
		return http.StatusInternalServerError, false
	}
}

// decodeRequest reads and validates the JSON body, writing 400/413 on failure
func (p *Proxy) decodeRequest(w http.ResponseWriter, r *http.Request) (*chat.Request, int, bool) {
	body := http.MaxBytesReader(w, r.Body, int64(p.maxBodySizeMB)*1024*1024)
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			p.logger.Debug("Failed to close request body", "error", closeErr)
		}
	}()

	var req chat.Request
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			p.logger.Warn("Request body too large", "path", r.URL.Path, "limit_bytes", maxBytesErr.Limit)
			WriteErrorTooLarge(w, msgBodyTooLarge)
			return nil, http.StatusRequestEntityTooLarge, false
		}
		p.logger.Debug("Invalid request body", "path", r.URL.Path, "error", err)
		WriteErrorBadRequest(w, msgInvalidJSON)
		return nil, http.StatusBadRequest, false
	}

	if err := chat.Validate(&req); err != nil {
		WriteErrorBadRequest(w, err.Error())
		return nil, http.StatusBadRequest, false
	}

	return &req, http.StatusOK, true
}

func (p *Proxy) writeChatError(w http.ResponseWriter, r *http.Request, err error) int {
	switch {
	case errors.Is(err, chat.ErrEmptyPrompt):
		WriteErrorBadRequest(w, err.Error())
		return http.StatusBadRequest
	case isClientDisconnectError(err):
		p.logger.Warn("Client disconnected before response", "path", r.URL.Path)
	case isTimeoutError(err):
		p.logger.Error("Backend call timed out", "path", r.URL.Path, "timeout", p.requestTimeout)
	}
	WriteErrorInternal(w, msgBackendError)
	return http.StatusInternalServerError
}
