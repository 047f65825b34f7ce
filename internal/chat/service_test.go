package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/mixaill76/vertex_proxy/internal/monitoring"
	"github.com/mixaill76/vertex_proxy/internal/testhelpers"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestService(backend Backend) *Service {
	return NewService(backend, monitoring.New(true), testhelpers.NewTestLogger())
}

func TestService_Chat(t *testing.T) {
	backend := &testhelpers.StubBackend{Response: testhelpers.NewTextResponse("", "hello")}
	svc := newTestService(backend)

	resp, err := svc.Chat(context.Background(), &Request{Prompt: "hi"})
	require.NoError(t, err)

	assert.Equal(t, 1, backend.Calls())
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, Turn{Role: "model", Parts: []Part{{Text: "hello"}}}, resp.Candidates[0].Content)

	contents := backend.LastContents()
	require.Len(t, contents, 1)
	assert.Equal(t, "hi", contents[0].Parts[0].Text)
}

func TestService_Chat_EmptyPromptSkipsBackend(t *testing.T) {
	backend := &testhelpers.StubBackend{}
	svc := newTestService(backend)

	_, err := svc.Chat(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	_, err = svc.StreamChat(context.Background(), &Request{}, &recordingSink{})
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	assert.Equal(t, 0, backend.Calls())
}

func TestService_Chat_BackendError(t *testing.T) {
	monitoring.BackendErrorsTotal.Reset()
	backend := &testhelpers.StubBackend{Err: errors.New("permission denied on project secret-project")}
	svc := newTestService(backend)

	resp, err := svc.Chat(context.Background(), &Request{Prompt: "hi"})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackend)
	assert.Equal(t, 1.0, testutil.ToFloat64(monitoring.BackendErrorsTotal.WithLabelValues("generate")))
}

func TestService_StreamChat(t *testing.T) {
	backend := &testhelpers.StubBackend{StreamChunks: []*genai.GenerateContentResponse{
		testhelpers.NewTextResponse("", "a"),
		testhelpers.NewTextResponse(genai.FinishReasonStop, "b"),
	}}
	svc := newTestService(backend)
	sink := &recordingSink{}

	stats, err := svc.StreamChat(context.Background(), &Request{Prompt: "hi"}, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Chunks)
	assert.Len(t, sink.chunks, 3)
	assert.Equal(t, 1, backend.Calls())
}

func TestService_StreamChat_BackendError(t *testing.T) {
	monitoring.BackendErrorsTotal.Reset()
	backend := &testhelpers.StubBackend{StreamErr: errors.New("unavailable")}
	svc := newTestService(backend)
	sink := &recordingSink{}

	_, err := svc.StreamChat(context.Background(), &Request{Prompt: "hi"}, sink)
	assert.ErrorIs(t, err, ErrBackend)
	require.Len(t, sink.chunks, 1)
	assert.Equal(t, "backend error", sink.chunks[0].Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(monitoring.BackendErrorsTotal.WithLabelValues("stream")))
}
