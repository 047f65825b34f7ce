package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("INFO"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("unknown"))
}

func TestNewWithWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", "json")
	logger.Info("hello", "path", "/v1/chat")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "/v1/chat", entry["path"])

	buf.Reset()
	logger = NewWithWriter(&buf, "info", "text")
	logger.Info("hello", "path", "/v1/chat")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "path=/v1/chat")
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "error", "text")
	logger.Info("dropped")
	logger.Debug("dropped")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestTruncateLongFields_InvalidJSON(t *testing.T) {
	body := "not valid json"
	result := TruncateLongFields(body, 100)
	assert.Equal(t, body, result)
}

func TestTruncateLongFields_InlineData(t *testing.T) {
	longData := strings.Repeat("x", 200)
	input := `{"inlineData":{"mimeType":"image/png","data":"` + longData + `"}}`

	result := TruncateLongFields(input, 100)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(result), &data))

	inline := data["inlineData"].(map[string]any)
	assert.Contains(t, inline["data"].(string), "truncated 150 chars")
	assert.Equal(t, "image/png", inline["mimeType"])
}

func TestTruncateLongFields_ThoughtSignature(t *testing.T) {
	input := `{"thoughtSignature":"` + strings.Repeat("s", 60) + `"}`

	result := TruncateLongFields(input, 100)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(result), &data))
	assert.Contains(t, data["thoughtSignature"].(string), "truncated 10 chars")
}

func TestTruncateLongFields_ShortText(t *testing.T) {
	input := `{"text":"short content"}`

	result := TruncateLongFields(input, 100)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(result), &data))
	assert.Equal(t, "short content", data["text"])
}

func TestTruncateLongFields_NestedParts(t *testing.T) {
	input := `[
		{"role":"user","parts":[{"text":"` + strings.Repeat("x", 100) + `"}]},
		{"role":"model","parts":[{"text":"ok"}]}
	]`

	result := TruncateLongFields(input, 50)

	var contents []map[string]any
	require.NoError(t, json.Unmarshal([]byte(result), &contents))
	require.Len(t, contents, 2)

	first := contents[0]["parts"].([]any)[0].(map[string]any)
	assert.Contains(t, first["text"].(string), "truncated")
	second := contents[1]["parts"].([]any)[0].(map[string]any)
	assert.Equal(t, "ok", second["text"])
	assert.Equal(t, "user", contents[0]["role"])
}

func TestTruncateLongFields_EmptyJSON(t *testing.T) {
	assert.Equal(t, `{}`, TruncateLongFields(`{}`, 100))
}

func TestTruncateLongFields_SpecificTruncationLength(t *testing.T) {
	input := `{"field":"` + strings.Repeat("x", 200) + `"}`

	var data1, data2 map[string]any
	require.NoError(t, json.Unmarshal([]byte(TruncateLongFields(input, 50)), &data1))
	require.NoError(t, json.Unmarshal([]byte(TruncateLongFields(input, 100)), &data2))

	field1 := data1["field"].(string)
	field2 := data2["field"].(string)

	assert.Contains(t, field1, "truncated")
	assert.Contains(t, field2, "truncated")
	assert.Less(t, len(field1), len(field2))
}

func TestPayload_GenaiContents(t *testing.T) {
	contents := []*genai.Content{
		genai.NewContentFromText(strings.Repeat("z", DefaultMaxFieldLength+10), genai.RoleUser),
	}

	result := Payload(contents)
	assert.Contains(t, result, "truncated")
	assert.Contains(t, result, `"role":"user"`)
}

func TestPayload_Unserializable(t *testing.T) {
	result := Payload(make(chan int))
	assert.Contains(t, result, "unserializable")
}

func TestParseLevel_CaseInsensitive(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"lowercase debug", "debug", slog.LevelDebug},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"mixed cAsE", "DeBuG", slog.LevelDebug},
		{"lowercase info", "info", slog.LevelInfo},
		{"uppercase INFO", "INFO", slog.LevelInfo},
		{"lowercase error", "error", slog.LevelError},
		{"uppercase ERROR", "ERROR", slog.LevelError},
		{"unknown", "unknown", slog.LevelInfo},
		{"empty", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := parseLevel(tt.input)
			assert.Equal(t, tt.expected, level)
		})
	}
}
