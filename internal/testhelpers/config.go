package testhelpers

import (
	"github.com/mixaill76/vertex_proxy/internal/config"
)

// TestAPIKey is the key accepted by NewTestConfig
const TestAPIKey = "sk-test-api-key"

// NewTestConfig returns a valid, normalized configuration for handler and server tests.
func NewTestConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{APIKey: TestAPIKey},
		Vertex: config.VertexConfig{
			Project:  "test-project",
			Location: "us-central1",
			Model:    "gemini-2.0-flash",
		},
	}
	cfg.Normalize()
	return cfg
}
