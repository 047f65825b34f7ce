package startup

import (
	"context"
	"log/slog"
	"time"

	"github.com/mixaill76/vertex_proxy/internal/config"
	"golang.org/x/oauth2/google"
)

const (
	credentialsCheckTimeout = 5 * time.Second
	cloudPlatformScope      = "https://www.googleapis.com/auth/cloud-platform"
)

// ValidateVertexCredentialsAtStartup checks that Application Default Credentials
// can be found when no explicit service account is configured.
// Problems are logged as WARN and startup continues; the first backend call
// will report the same failure.
func ValidateVertexCredentialsAtStartup(ctx context.Context, cfg *config.Config, log *slog.Logger) bool {
	if cfg.Vertex.CredentialsFile != "" || cfg.Vertex.CredentialsJSON != "" {
		// Already parsed by auth.NewVertexHTTPClient
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, credentialsCheckTimeout)
	defer cancel()

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		log.Warn("Application default credentials not found at startup",
			"error", err.Error(),
			"recommendation", "Set vertex.credentials_file, vertex.credentials_json or GOOGLE_APPLICATION_CREDENTIALS, or run on a GCP runtime with a service account",
		)
		return false
	}

	if creds.ProjectID != "" && creds.ProjectID != cfg.Vertex.Project {
		log.Info("Default credentials belong to a different project",
			"credentials_project", creds.ProjectID,
			"vertex_project", cfg.Vertex.Project,
		)
	} else {
		log.Debug("Application default credentials found", "project", creds.ProjectID)
	}
	return true
}
