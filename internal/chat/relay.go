package chat

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

// DefaultFinishReason closes a stream whose chunks never carried a finish reason
const DefaultFinishReason = "STOP"

var (
	// ErrBackend wraps any failure of the generative backend. Only its message
	// is shown to clients.
	ErrBackend = errors.New("backend error")

	// ErrStreamWrite wraps failures writing to the client
	ErrStreamWrite = errors.New("stream write failed")
)

// RelayStats summarizes one relayed stream
type RelayStats struct {
	Chunks       int
	FinishReason string
}

// Relay forwards every text part of the backend stream to sink as its own
// chunk, in order, then closes with exactly one final chunk.
//
// On a backend or sink failure one best-effort error chunk is written and the
// error is returned. A ctx deadline is the request timeout and is reported the
// same way. A cancelled ctx means the client is gone: nothing more is written
// and ctx.Err() is returned. Leaving the range loop releases the backend stream.
func Relay(ctx context.Context, stream iter.Seq2[*genai.GenerateContentResponse, error], sink ChunkSink) (RelayStats, error) {
	var stats RelayStats
	lastReason := ""

	for resp, err := range stream {
		if stopErr := interrupted(ctx, sink); stopErr != nil {
			return stats, stopErr
		}
		if err != nil {
			return stats, fail(sink, fmt.Errorf("%w: %w", ErrBackend, err), ErrBackend)
		}
		if resp == nil {
			continue
		}

		for _, cand := range resp.Candidates {
			if cand == nil {
				continue
			}
			reason := finishReason(cand)
			if reason != "" {
				lastReason = reason
			}
			if cand.Content == nil {
				continue
			}

			for _, part := range textParts(cand.Content) {
				if stopErr := interrupted(ctx, sink); stopErr != nil {
					return stats, stopErr
				}
				if err := sink.Send(StreamChunk{TextChunk: part.Text, FinishReason: reason}); err != nil {
					return stats, fail(sink, fmt.Errorf("%w: %w", ErrStreamWrite, err), ErrStreamWrite)
				}
				stats.Chunks++
			}
		}
	}

	if stopErr := interrupted(ctx, sink); stopErr != nil {
		return stats, stopErr
	}

	if lastReason == "" {
		lastReason = DefaultFinishReason
	}
	stats.FinishReason = lastReason

	if err := sink.Send(StreamChunk{FinishReason: lastReason, IsFinalChunk: true}); err != nil {
		return stats, fail(sink, fmt.Errorf("%w: %w", ErrStreamWrite, err), ErrStreamWrite)
	}
	return stats, nil
}

// interrupted returns nil while ctx is live. An expired deadline still gets
// the terminal error chunk; a cancellation writes nothing.
func interrupted(ctx context.Context, sink ChunkSink) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fail(sink, fmt.Errorf("%w: %w", ErrBackend, err), ErrBackend)
	}
	return err
}

// fail writes the terminal error chunk, ignoring its own write error, and returns err
func fail(sink ChunkSink, err error, public error) error {
	_ = sink.Send(StreamChunk{Error: public.Error(), IsFinalChunk: true})
	return err
}
