package testhelpers

import (
	"context"
	"iter"
	"sync"

	"google.golang.org/genai"
)

// StubBackend is an in-memory Vertex backend that counts calls.
// Unary calls return Response/Err. Stream calls yield StreamChunks and then
// StreamErr when it is set. With BlockStream the stream then waits for its
// context to end and yields the context error.
type StubBackend struct {
	mu sync.Mutex

	Response     *genai.GenerateContentResponse
	Err          error
	StreamChunks []*genai.GenerateContentResponse
	StreamErr    error
	BlockStream  bool

	calls         int
	lastContents  []*genai.Content
	streamStopped bool
}

func (s *StubBackend) GenerateContent(_ context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastContents = contents
	return s.Response, s.Err
}

func (s *StubBackend) GenerateContentStream(ctx context.Context, contents []*genai.Content) iter.Seq2[*genai.GenerateContentResponse, error] {
	s.mu.Lock()
	s.calls++
	s.lastContents = contents
	chunks := s.StreamChunks
	streamErr := s.StreamErr
	block := s.BlockStream
	s.mu.Unlock()

	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, chunk := range chunks {
			if !yield(chunk, nil) {
				s.mu.Lock()
				s.streamStopped = true
				s.mu.Unlock()
				return
			}
		}
		if streamErr != nil {
			yield(nil, streamErr)
			return
		}
		if block {
			<-ctx.Done()
			yield(nil, ctx.Err())
		}
	}
}

// Calls returns how many backend calls (unary or stream) were made
func (s *StubBackend) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastContents returns the contents passed to the most recent call
func (s *StubBackend) LastContents() []*genai.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastContents
}

// StreamStopped reports whether a consumer abandoned the stream early
func (s *StubBackend) StreamStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamStopped
}

// NewTextResponse builds a response with one model candidate holding texts as parts
func NewTextResponse(finishReason genai.FinishReason, texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, genai.NewPartFromText(text))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: genai.RoleModel, Parts: parts},
			FinishReason: finishReason,
		}},
	}
}
