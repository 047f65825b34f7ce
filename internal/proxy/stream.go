package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mixaill76/vertex_proxy/internal/chat"
)

// streamChunkWriteTimeout is the per-chunk write deadline for streaming responses.
// If no data flows for this duration, the connection is terminated.
const streamChunkWriteTimeout = 60 * time.Second

// doneMarker is the text of the terminal SSE event
const doneMarker = "[DONE]"

// sseEvent is the JSON payload of one "data:" line
type sseEvent struct {
	Text         string `json:"text"`
	Role         string `json:"role,omitempty"`
	FinishReason string `json:"finishReason,omitempty"`
	Error        string `json:"error,omitempty"`
}

// SetSSEHeaders prepares w for a server-sent event stream.
func SetSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// sseSink writes relayed chunks as server-sent events and flushes each one
type sseSink struct {
	w          http.ResponseWriter
	controller *http.ResponseController
}

func newSSESink(w http.ResponseWriter) *sseSink {
	return &sseSink{
		w:          w,
		controller: http.NewResponseController(w),
	}
}

// toSSEEvent maps a chunk to its wire event: text, terminal [DONE] or error
func toSSEEvent(chunk chat.StreamChunk) sseEvent {
	switch {
	case chunk.Error != "":
		return sseEvent{Error: chunk.Error}
	case chunk.IsFinalChunk:
		return sseEvent{Text: doneMarker, FinishReason: chunk.FinishReason}
	default:
		return sseEvent{Text: chunk.TextChunk, Role: "model", FinishReason: chunk.FinishReason}
	}
}

// Send implements chat.ChunkSink
func (s *sseSink) Send(chunk chat.StreamChunk) error {
	payload, err := json.Marshal(toSSEEvent(chunk))
	if err != nil {
		return err
	}

	// Not every ResponseWriter supports deadlines; ignore that case
	_ = s.controller.SetWriteDeadline(time.Now().Add(streamChunkWriteTimeout))

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return s.controller.Flush()
}
