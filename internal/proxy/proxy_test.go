package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mixaill76/vertex_proxy/internal/auth"
	"github.com/mixaill76/vertex_proxy/internal/chat"
	"github.com/mixaill76/vertex_proxy/internal/fail2ban"
	"github.com/mixaill76/vertex_proxy/internal/monitoring"
	"github.com/mixaill76/vertex_proxy/internal/testhelpers"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestChat_EndToEnd(t *testing.T) {
	backend := &testhelpers.StubBackend{Response: testhelpers.NewTextResponse(genai.FinishReasonStop, "Hello!")}
	prx := createTestProxy(backend)

	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, authHeaders())
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp chat.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "model", resp.Candidates[0].Content.Role)
	assert.Equal(t, []chat.Part{{Text: "Hello!"}}, resp.Candidates[0].Content.Parts)
	assert.Equal(t, "STOP", resp.Candidates[0].FinishReason)
	assert.Empty(t, resp.Error)

	contents := backend.LastContents()
	require.Len(t, contents, 1)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, "Hi", contents[0].Parts[0].Text)
}

func TestChat_ForwardsHistory(t *testing.T) {
	backend := &testhelpers.StubBackend{Response: testhelpers.NewTextResponse("", "Blue.")}
	prx := createTestProxy(backend)

	body := chat.Request{
		Prompt: "And the sky?",
		History: []chat.Turn{
			{Role: "user", Parts: []chat.Part{{Text: "Color of grass?"}}},
			{Role: "model", Parts: []chat.Part{{Text: "Green."}}},
		},
	}
	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", body, authHeaders())
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	contents := backend.LastContents()
	require.Len(t, contents, 3)
	assert.Equal(t, "Color of grass?", contents[0].Parts[0].Text)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "And the sky?", contents[2].Parts[0].Text)
}

func TestChat_Unauthorized(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"missing key", nil},
		{"wrong key", map[string]string{auth.HeaderName: "sk-wrong"}},
		{"bearer is not accepted", map[string]string{"Authorization": "Bearer " + testhelpers.TestAPIKey}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &testhelpers.StubBackend{Response: testhelpers.NewTextResponse("", "x")}
			prx := createTestProxy(backend)

			req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, tt.headers)
			w := httptest.NewRecorder()
			prx.Chat(w, req)

			testhelpers.AssertJSONErrorResponse(t, w, http.StatusUnauthorized, "missing or invalid key")
			assert.Equal(t, 0, backend.Calls())
		})
	}
}

func TestChat_KeyNotConfigured(t *testing.T) {
	backend := &testhelpers.StubBackend{}
	logger := testhelpers.NewTestLogger()
	service := chat.NewService(backend, nil, logger)
	prx := New(service, auth.NewGate("", nil, nil, logger), logger, nil, 1, 0, false)

	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, authHeaders())
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	testhelpers.AssertJSONErrorResponse(t, w, http.StatusInternalServerError, "internal server error")
	assert.Equal(t, 0, backend.Calls())
}

func TestChat_BannedClient(t *testing.T) {
	f2b, err := fail2ban.New(2, 0, 100)
	require.NoError(t, err)
	backend := &testhelpers.StubBackend{Response: testhelpers.NewTextResponse("", "x")}
	prx := createTestProxyWithFail2Ban(backend, f2b)

	for i := 0; i < 2; i++ {
		req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, map[string]string{auth.HeaderName: "bad"})
		w := httptest.NewRecorder()
		prx.Chat(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, authHeaders())
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	testhelpers.AssertJSONErrorResponse(t, w, http.StatusTooManyRequests, "too many failed authentication attempts")
	assert.Equal(t, 0, backend.Calls())
}

func TestChat_BanIgnoresForwardedHeaders(t *testing.T) {
	f2b, err := fail2ban.New(2, 0, 100)
	require.NoError(t, err)
	backend := &testhelpers.StubBackend{Response: testhelpers.NewTextResponse("", "x")}
	prx := createTestProxyWithFail2Ban(backend, f2b)

	for _, xff := range []string{"203.0.113.1", "203.0.113.2"} {
		req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"},
			map[string]string{auth.HeaderName: "bad", "X-Forwarded-For": xff})
		w := httptest.NewRecorder()
		prx.Chat(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	headers := authHeaders()
	headers["X-Forwarded-For"] = "203.0.113.3"
	w := httptest.NewRecorder()
	prx.Chat(w, testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, headers))

	testhelpers.AssertJSONErrorResponse(t, w, http.StatusTooManyRequests, "too many failed authentication attempts")
	assert.Equal(t, 0, backend.Calls())
}

func TestChat_EmptyPrompt(t *testing.T) {
	backend := &testhelpers.StubBackend{}
	prx := createTestProxy(backend)

	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: ""}, authHeaders())
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	testhelpers.AssertJSONErrorResponse(t, w, http.StatusBadRequest, "prompt is required")
	assert.Equal(t, 0, backend.Calls())
}

func TestChat_InvalidJSON(t *testing.T) {
	backend := &testhelpers.StubBackend{}
	prx := createTestProxy(backend)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader("{not json"))
	req.Header.Set(auth.HeaderName, testhelpers.TestAPIKey)
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	testhelpers.AssertJSONErrorResponse(t, w, http.StatusBadRequest, "invalid JSON body")
	assert.Equal(t, 0, backend.Calls())
}

func TestChat_BodyTooLarge(t *testing.T) {
	backend := &testhelpers.StubBackend{}
	prx := createTestProxy(backend)

	// Limit is 1 MB
	big := `{"prompt":"` + strings.Repeat("a", 2*1024*1024) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader([]byte(big)))
	req.Header.Set(auth.HeaderName, testhelpers.TestAPIKey)
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	testhelpers.AssertJSONErrorResponse(t, w, http.StatusRequestEntityTooLarge, "request body too large")
	assert.Equal(t, 0, backend.Calls())
}

func TestChat_BackendErrorIsNotLeaked(t *testing.T) {
	backend := &testhelpers.StubBackend{Err: errors.New("403 PERMISSION_DENIED project secret-project")}
	prx := createTestProxy(backend)

	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, authHeaders())
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	assert.NotContains(t, w.Body.String(), "secret-project")
	testhelpers.AssertJSONErrorResponse(t, w, http.StatusInternalServerError, "backend error")
}

func TestChat_FallbackCandidate(t *testing.T) {
	backend := &testhelpers.StubBackend{Response: &genai.GenerateContentResponse{}}
	prx := createTestProxy(backend)

	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, authHeaders())
	w := httptest.NewRecorder()
	prx.Chat(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp chat.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, chat.FallbackText, resp.Candidates[0].Content.Parts[0].Text)
}

func TestChat_RecordsRequestMetric(t *testing.T) {
	monitoring.RequestsTotal.Reset()
	prx := createTestProxy(&testhelpers.StubBackend{Response: testhelpers.NewTextResponse("", "x")})

	w := httptest.NewRecorder()
	prx.Chat(w, testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}, authHeaders()))
	w = httptest.NewRecorder()
	prx.Chat(w, testhelpers.NewTestRequest(http.MethodPost, "/v1/chat", chat.Request{Prompt: "Hi"}))

	assert.Equal(t, 1.0, testutil.ToFloat64(monitoring.RequestsTotal.WithLabelValues(monitoring.TransportHTTP, "/v1/chat", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(monitoring.RequestsTotal.WithLabelValues(monitoring.TransportHTTP, "/v1/chat", "401")))
}

func TestStreamChat_EndToEnd(t *testing.T) {
	backend := &testhelpers.StubBackend{StreamChunks: []*genai.GenerateContentResponse{
		testhelpers.NewTextResponse("", "Hel"),
		testhelpers.NewTextResponse(genai.FinishReasonStop, "lo"),
	}}
	prx := createTestProxy(backend)

	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat/stream", chat.Request{Prompt: "Hi"}, authHeaders())
	w := httptest.NewRecorder()
	prx.StreamChat(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.True(t, w.Flushed)

	events := parseSSE(t, w.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, sseEvent{Text: "Hel", Role: "model"}, events[0])
	assert.Equal(t, sseEvent{Text: "lo", Role: "model", FinishReason: "STOP"}, events[1])
	assert.Equal(t, sseEvent{Text: "[DONE]", FinishReason: "STOP"}, events[2])
}

func TestStreamChat_BackendErrorEvent(t *testing.T) {
	backend := &testhelpers.StubBackend{
		StreamChunks: []*genai.GenerateContentResponse{testhelpers.NewTextResponse("", "partial")},
		StreamErr:    errors.New("quota exceeded for project secret-project"),
	}
	prx := createTestProxy(backend)

	req := testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat/stream", chat.Request{Prompt: "Hi"}, authHeaders())
	w := httptest.NewRecorder()
	prx.StreamChat(w, req)

	// Headers were already sent, so the error travels in-band
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-project")

	events := parseSSE(t, w.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, "partial", events[0].Text)
	assert.Equal(t, sseEvent{Error: "backend error"}, events[1])
}

func TestStreamChat_RejectedBeforeStreaming(t *testing.T) {
	backend := &testhelpers.StubBackend{}
	prx := createTestProxy(backend)

	w := httptest.NewRecorder()
	prx.StreamChat(w, testhelpers.NewTestRequest(http.MethodPost, "/v1/chat/stream", chat.Request{Prompt: "Hi"}))
	testhelpers.AssertJSONErrorResponse(t, w, http.StatusUnauthorized, "missing or invalid key")

	w = httptest.NewRecorder()
	prx.StreamChat(w, testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat/stream", chat.Request{}, authHeaders()))
	testhelpers.AssertJSONErrorResponse(t, w, http.StatusBadRequest, "prompt is required")

	assert.Equal(t, 0, backend.Calls())
}

func TestStreamChat_EmptyStream(t *testing.T) {
	prx := createTestProxy(&testhelpers.StubBackend{})

	w := httptest.NewRecorder()
	prx.StreamChat(w, testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat/stream", chat.Request{Prompt: "Hi"}, authHeaders()))

	events := parseSSE(t, w.Body.String())
	require.Len(t, events, 1)
	assert.Equal(t, sseEvent{Text: "[DONE]", FinishReason: chat.DefaultFinishReason}, events[0])
}

func TestStreamChat_TimeoutEndsWithErrorEvent(t *testing.T) {
	backend := &testhelpers.StubBackend{
		StreamChunks: []*genai.GenerateContentResponse{testhelpers.NewTextResponse("", "partial")},
		BlockStream:  true,
	}
	logger := testhelpers.NewTestLogger()
	metrics := monitoring.New(true)
	gate := auth.NewGate(testhelpers.TestAPIKey, nil, metrics, logger)
	prx := New(chat.NewService(backend, metrics, logger), gate, logger, metrics, 1, 50*time.Millisecond, false)

	w := httptest.NewRecorder()
	prx.StreamChat(w, testhelpers.NewTestRequestWithHeaders(http.MethodPost, "/v1/chat/stream", chat.Request{Prompt: "Hi"}, authHeaders()))

	require.Equal(t, http.StatusOK, w.Code)
	events := parseSSE(t, w.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, "partial", events[0].Text)
	assert.Equal(t, sseEvent{Error: "backend error"}, events[1])
}

func TestHealthCheck(t *testing.T) {
	prx := createTestProxy(&testhelpers.StubBackend{})

	w := httptest.NewRecorder()
	prx.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
