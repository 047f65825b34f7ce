// Package security provides security utilities for the application
package security

import (
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

// MaskSecret masks sensitive strings for logging.
// Shows first N characters followed by "..." to minimize secret exposure.
// Returns "***" for very short secrets (<= prefixLen).
//
// Examples:
//
//	MaskSecret("sk_test_abc123", 4) -> "sk_t..."
//	MaskSecret("short", 4) -> "***"
//	MaskSecret("", 4) -> ""
func MaskSecret(secret string, prefixLen int) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= prefixLen {
		return "***"
	}
	return secret[:prefixLen] + "..."
}

// MaskAPIKey masks API keys (shows first 4 characters).
func MaskAPIKey(key string) string {
	return MaskSecret(key, 4)
}

// sensitiveHeaders lists lower-cased names shared by HTTP headers and gRPC metadata
var sensitiveHeaders = map[string]bool{
	"authorization":       true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"proxy-authorization": true,
	"cookie":              true,
}

func maskValue(name, value string) string {
	switch name {
	case "authorization":
		if token, ok := strings.CutPrefix(value, "Bearer "); ok {
			return "Bearer " + MaskAPIKey(token)
		}
		return MaskAPIKey(value)
	case "cookie":
		return "***cookie***"
	default:
		return MaskAPIKey(value)
	}
}

// MaskSensitiveHeaders returns a copy of HTTP headers with sensitive headers masked.
// Other headers are passed through unchanged for debugging purposes.
//
// Example:
//
//	headers := http.Header{}
//	headers.Set("X-API-Key", "sk_test_abc123")
//	masked := MaskSensitiveHeaders(headers)
//	// Result: X-Api-Key=sk_t...
func MaskSensitiveHeaders(headers http.Header) http.Header {
	masked := make(http.Header, len(headers))

	for key, values := range headers {
		if len(values) == 0 {
			continue
		}

		name := strings.ToLower(key)
		if sensitiveHeaders[name] {
			masked.Set(key, maskValue(name, values[0]))
			continue
		}
		for _, v := range values {
			masked.Add(key, v)
		}
	}

	return masked
}

// MaskMetadata is MaskSensitiveHeaders for incoming gRPC metadata
func MaskMetadata(md metadata.MD) metadata.MD {
	masked := make(metadata.MD, len(md))

	for key, values := range md {
		if len(values) == 0 {
			continue
		}

		// metadata keys are already lower-case
		if sensitiveHeaders[key] {
			masked[key] = []string{maskValue(key, values[0])}
			continue
		}
		masked[key] = append([]string(nil), values...)
	}

	return masked
}
