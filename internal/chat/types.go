// Package chat holds the client-facing chat model and the mapping between it
// and Vertex AI generate-content calls.
package chat

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// Part is one text fragment of a turn
type Part struct {
	Text string `json:"text"`
}

// Turn is one message of a conversation. Role is "user" or "model" but is
// passed to the backend unchecked.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Request is what clients send to both the unary and streaming operations
type Request struct {
	Prompt  string `json:"prompt"`
	History []Turn `json:"history,omitempty"`
}

// Candidate is one generated answer: the model turn and why generation stopped
type Candidate struct {
	Content      Turn   `json:"content"`
	FinishReason string `json:"finishReason,omitempty"`
}

// Response is the unary result
type Response struct {
	Candidates []Candidate `json:"candidates"`
	Error      string      `json:"error,omitempty"`
}

// StreamChunk is one increment of a streamed response. Exactly one chunk per
// stream has IsFinalChunk set and it is always the last one.
type StreamChunk struct {
	TextChunk    string `json:"textChunk"`
	FinishReason string `json:"finishReason,omitempty"`
	Error        string `json:"error,omitempty"`
	IsFinalChunk bool   `json:"isFinalChunk"`
}

// ChunkSink receives relayed chunks; implemented by the SSE writer and the gRPC stream
type ChunkSink interface {
	Send(chunk StreamChunk) error
}

// Backend is the generative model behind the proxy. The model name and
// generation settings are bound by the implementation.
type Backend interface {
	GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, contents []*genai.Content) iter.Seq2[*genai.GenerateContentResponse, error]
}
