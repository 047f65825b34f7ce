package proxy

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mixaill76/vertex_proxy/internal/auth"
	"github.com/mixaill76/vertex_proxy/internal/chat"
	"github.com/mixaill76/vertex_proxy/internal/fail2ban"
	"github.com/mixaill76/vertex_proxy/internal/monitoring"
	"github.com/mixaill76/vertex_proxy/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

// createTestProxy builds a Proxy over backend with the test API key
func createTestProxy(backend chat.Backend) *Proxy {
	return createTestProxyWithFail2Ban(backend, nil)
}

func createTestProxyWithFail2Ban(backend chat.Backend, f2b *fail2ban.Fail2Ban) *Proxy {
	logger := testhelpers.NewTestLogger()
	metrics := monitoring.New(true)
	gate := auth.NewGate(testhelpers.TestAPIKey, f2b, metrics, logger)
	service := chat.NewService(backend, metrics, logger)
	return New(service, gate, logger, metrics, 1, 30*time.Second, false)
}

func authHeaders() map[string]string {
	return map[string]string{auth.HeaderName: testhelpers.TestAPIKey}
}

// parseSSE returns the decoded payload of every "data:" line
func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()

	var events []sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev sseEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev), "bad event: %s", line)
		events = append(events, ev)
	}
	require.NoError(t, scanner.Err())
	return events
}
