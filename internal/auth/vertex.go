package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// refreshingTokenSource caches the OAuth2 token for Vertex AI and refreshes it
// shortly before expiry
type refreshingTokenSource struct {
	mu           sync.Mutex
	base         oauth2.TokenSource
	token        *oauth2.Token
	logger       *slog.Logger
	tokenRefresh time.Duration
	now          func() time.Time
}

func newRefreshingTokenSource(base oauth2.TokenSource, logger *slog.Logger) *refreshingTokenSource {
	return &refreshingTokenSource{
		base:         base,
		logger:       logger,
		tokenRefresh: 5 * time.Minute, // Refresh 5 minutes before expiry
		now:          time.Now,
	}
}

// Token implements oauth2.TokenSource
func (ts *refreshingTokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	// Zero expiry means the token never expires
	if ts.token != nil && (ts.token.Expiry.IsZero() || ts.now().Before(ts.token.Expiry.Add(-ts.tokenRefresh))) {
		return ts.token, nil
	}

	if ts.token != nil {
		ts.logger.Debug("Refreshing Vertex AI token", "expires_at", ts.token.Expiry)
	}

	token, err := ts.base.Token()
	if err != nil {
		ts.logger.Error("Failed to obtain Vertex AI token", "error", err)
		ts.token = nil
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	ts.token = token
	ts.logger.Info("Vertex AI token obtained", "expires_at", token.Expiry)
	return token, nil
}

// loadServiceAccount reads service account JSON from a file or inline string
// and checks that it describes a service account.
func loadServiceAccount(credentialsFile, credentialsJSON string) ([]byte, error) {
	var credBytes []byte
	var err error

	if credentialsFile != "" {
		credBytes, err = os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file %s: %w", credentialsFile, err)
		}
	} else {
		credBytes = []byte(credentialsJSON)
	}

	var serviceAccount struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(credBytes, &serviceAccount); err != nil {
		return nil, fmt.Errorf("invalid service account JSON: %w", err)
	}
	if serviceAccount.Type != "service_account" {
		return nil, fmt.Errorf("credentials must be for a service account, got type: %q", serviceAccount.Type)
	}

	return credBytes, nil
}

// NewVertexHTTPClient builds an HTTP client authorized with explicit service
// account credentials. It returns a nil client when neither credentialsFile nor
// credentialsJSON is set, leaving the genai SDK on Application Default Credentials.
func NewVertexHTTPClient(ctx context.Context, credentialsFile, credentialsJSON string, logger *slog.Logger) (*http.Client, error) {
	if credentialsFile == "" && credentialsJSON == "" {
		logger.Debug("No explicit Vertex credentials, using application default credentials")
		return nil, nil
	}

	credBytes, err := loadServiceAccount(credentialsFile, credentialsJSON)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, credBytes, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create credentials: %w", err)
	}

	if credentialsFile != "" {
		logger.Debug("Loaded Vertex credentials from file", "file", credentialsFile)
	} else {
		logger.Debug("Using Vertex credentials from config")
	}

	return oauth2.NewClient(ctx, newRefreshingTokenSource(creds.TokenSource, logger)), nil
}
