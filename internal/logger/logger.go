package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultMaxFieldLength bounds string values in debug payload dumps
const DefaultMaxFieldLength = 200

// NewWithWriter builds a logger for the given format ("text" or "json") writing to w
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// parseLevel converts string level to slog.Level
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to info
	}
}

// Payload marshals v to JSON and truncates long fields for debug logging.
// Marshal failures are reported inline instead of aborting the log line.
func Payload(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<unserializable: %v>", err)
	}
	return TruncateLongFields(string(data), DefaultMaxFieldLength)
}

// TruncateLongFields truncates long fields in JSON for logging purposes
// This prevents inline media, thought signatures and long generations from cluttering logs
func TruncateLongFields(body string, maxFieldLength int) string {
	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return body // Return as-is if not valid JSON
	}

	data = truncateValue(data, maxFieldLength)

	truncated, err := json.Marshal(data)
	if err != nil {
		return body // Return original if marshaling fails
	}

	return string(truncated)
}

// truncateValue recursively truncates long string values in a map or slice
func truncateValue(v any, maxLength int) any {
	switch val := v.(type) {
	case map[string]any:
		for key, value := range val {
			switch key {
			case "data", "thoughtSignature":
				// Base64 blobs carry nothing readable
				if str, ok := value.(string); ok && len(str) > 50 {
					val[key] = fmt.Sprintf("%s... [truncated %d chars]", str[:50], len(str)-50)
				}
			default:
				val[key] = truncateValue(value, maxLength)
			}
		}
		return val
	case []any:
		for i := range val {
			val[i] = truncateValue(val[i], maxLength)
		}
		return val
	case string:
		if len(val) > maxLength {
			return val[:maxLength] + "... [truncated]"
		}
		return val
	default:
		return v
	}
}
