package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/mixaill76/vertex_proxy/internal/fail2ban"
	"github.com/mixaill76/vertex_proxy/internal/monitoring"
)

// Where clients present the key
const (
	HeaderName  = "X-API-Key"
	MetadataKey = "x-api-key"
)

var (
	// ErrUnauthenticated is the client-facing rejection. Its message is the only
	// detail returned to callers.
	ErrUnauthenticated = errors.New("missing or invalid key")

	ErrMissingKey = fmt.Errorf("%w: no key presented", ErrUnauthenticated)
	ErrInvalidKey = fmt.Errorf("%w: key mismatch", ErrUnauthenticated)

	// ErrKeyNotConfigured means the operator never set the expected key.
	ErrKeyNotConfigured = errors.New("server API key is not configured")

	// ErrClientBanned rejects a client after repeated authentication failures.
	ErrClientBanned = errors.New("too many failed authentication attempts")
)

// Gate validates the static API key before any backend work happens
type Gate struct {
	expectedKey []byte
	fail2ban    *fail2ban.Fail2Ban
	metrics     *monitoring.Metrics
	logger      *slog.Logger
}

// NewGate creates a Gate. f2b and metrics may be nil.
func NewGate(expectedKey string, f2b *fail2ban.Fail2Ban, metrics *monitoring.Metrics, logger *slog.Logger) *Gate {
	return &Gate{
		expectedKey: []byte(expectedKey),
		fail2ban:    f2b,
		metrics:     metrics,
		logger:      logger,
	}
}

// Check compares the provided key with the expected one in constant time
func (g *Gate) Check(providedKey string) error {
	if len(g.expectedKey) == 0 {
		return ErrKeyNotConfigured
	}
	if providedKey == "" {
		return ErrMissingKey
	}
	if subtle.ConstantTimeCompare([]byte(providedKey), g.expectedKey) != 1 {
		return ErrInvalidKey
	}
	return nil
}

// Authorize runs Check for one request and handles the side effects of a
// rejection: logging (never the key), metrics and client banning.
func (g *Gate) Authorize(transport, path, providedKey, client string) error {
	if g.fail2ban.IsBanned(client) {
		g.logger.Warn("Rejected request from banned client",
			"transport", transport,
			"path", path,
			"client", client,
		)
		g.metrics.RecordAuthRejection(transport, "banned")
		return ErrClientBanned
	}

	err := g.Check(providedKey)
	switch {
	case err == nil:
		g.fail2ban.RecordSuccess(client)
		return nil
	case errors.Is(err, ErrKeyNotConfigured):
		g.logger.Error("API key gate has no expected key configured",
			"transport", transport,
			"path", path,
		)
		g.metrics.RecordAuthRejection(transport, "not_configured")
		return err
	}

	reason := rejectionReason(err)
	g.logger.Warn("API key rejected",
		"transport", transport,
		"path", path,
		"client", client,
		"reason", reason,
	)
	g.metrics.RecordAuthRejection(transport, reason)

	if g.fail2ban.RecordFailure(client) {
		banned := g.fail2ban.BannedClients()
		g.logger.Warn("Client banned after repeated authentication failures",
			"client", client,
			"banned_clients", len(banned),
		)
		g.metrics.UpdateBannedClients(len(banned))
	}

	return err
}

func rejectionReason(err error) string {
	if errors.Is(err, ErrMissingKey) {
		return "missing_key"
	}
	return "invalid_key"
}

// ClientHost strips the port from a remote address so every connection of
// one client maps to the same fail2ban entry.
func ClientHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
