// Package backend adapts the Vertex AI generate-content API to chat.Backend.
package backend

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"net/http"

	"github.com/mixaill76/vertex_proxy/internal/config"
	"google.golang.org/genai"
)

// VertexClient calls one Vertex AI model with fixed generation settings
type VertexClient struct {
	models    *genai.Models
	model     string
	genConfig *genai.GenerateContentConfig
	logger    *slog.Logger
}

// NewVertexClient creates the genai client for cfg. A nil httpClient leaves
// authentication to Application Default Credentials.
func NewVertexClient(ctx context.Context, cfg config.VertexConfig, httpClient *http.Client, logger *slog.Logger) (*VertexClient, error) {
	return newVertexClient(ctx, cfg, httpClient, genai.HTTPOptions{}, logger)
}

func newVertexClient(ctx context.Context, cfg config.VertexConfig, httpClient *http.Client, httpOptions genai.HTTPOptions, logger *slog.Logger) (*VertexClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     cfg.Project,
		Location:    cfg.Location,
		HTTPClient:  httpClient,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	logger.Info("Vertex AI client ready",
		"project", cfg.Project,
		"location", cfg.Location,
		"model", cfg.Model,
	)

	return &VertexClient{
		models:    client.Models,
		model:     cfg.Model,
		genConfig: buildGenerateConfig(cfg),
		logger:    logger,
	}, nil
}

// buildGenerateConfig returns nil when no generation setting is configured
func buildGenerateConfig(cfg config.VertexConfig) *genai.GenerateContentConfig {
	if cfg.Temperature == nil && cfg.MaxOutputTokens == 0 && cfg.SystemInstruction == "" {
		return nil
	}

	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	if cfg.Temperature != nil {
		t := *cfg.Temperature
		genConfig.Temperature = &t
	}
	if cfg.SystemInstruction != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}
	return genConfig
}

func (c *VertexClient) GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	c.logger.Debug("Vertex generateContent", "model", c.model, "turns", len(contents))
	return c.models.GenerateContent(ctx, c.model, contents, c.genConfig)
}

func (c *VertexClient) GenerateContentStream(ctx context.Context, contents []*genai.Content) iter.Seq2[*genai.GenerateContentResponse, error] {
	c.logger.Debug("Vertex streamGenerateContent", "model", c.model, "turns", len(contents))
	return c.models.GenerateContentStream(ctx, c.model, contents, c.genConfig)
}
