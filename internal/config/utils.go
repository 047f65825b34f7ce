package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// resolveEnvString resolves environment variable if value is in format "os.environ/VAR_NAME"
func resolveEnvString(value string) string {
	const prefix = "os.environ/"
	if strings.HasPrefix(value, prefix) {
		envVar := strings.TrimPrefix(value, prefix)
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		slog.Warn("environment variable not set, returning empty string",
			"env_var", envVar,
			"pattern", value,
		)
		return ""
	}
	return value
}

// setIfEmpty copies the environment variable into dst when dst is still empty
func setIfEmpty(dst *string, envVar string) {
	if *dst != "" {
		return
	}
	*dst = os.Getenv(envVar)
}

// parseFunc is a function type that parses a string value into the desired type
type parseFunc[T any] func(string) (T, error)

// parseField resolves env variable and parses value with proper error context
func parseField[T any](tempValue string, defaultValue T, parser parseFunc[T], fieldPath string) (T, error) {
	if tempValue == "" {
		return defaultValue, nil
	}

	resolved := resolveEnvString(tempValue)
	if resolved == "" {
		return defaultValue, nil
	}
	parsed, err := parser(resolved)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s: %w", fieldPath, err)
	}
	return parsed, nil
}

func parseFloat32(value string) (float32, error) {
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// PrintConfig outputs the configuration in a structured, readable format to the logger
func PrintConfig(logger *slog.Logger, cfg *Config) {
	logger.Info("=== Configuration Loaded ===")

	// Server config
	logger.Info("server",
		"mode", cfg.Server.Mode,
		"port", cfg.Server.Port,
		"grpc_port", cfg.Server.GRPCPort,
		"max_body_size_mb", cfg.Server.MaxBodySizeMB,
		"request_timeout", cfg.Server.RequestTimeout.String(),
		"read_header_timeout", cfg.Server.ReadHeaderTimeout.String(),
		"shutdown_timeout", cfg.Server.ShutdownTimeout.String(),
		"logging_level", cfg.Server.LoggingLevel,
		"log_format", cfg.Server.LogFormat,
		"trust_forwarded_headers", cfg.Server.TrustForwardedHeaders,
		"api_key", "***REDACTED***",
	)

	// Vertex config
	logger.Info("vertex",
		"project", cfg.Vertex.Project,
		"location", cfg.Vertex.Location,
		"model", cfg.Vertex.Model,
		"credentials", credentialsSource(cfg.Vertex),
		"temperature", temperatureToString(cfg.Vertex.Temperature),
		"max_output_tokens", cfg.Vertex.MaxOutputTokens,
		"system_instruction_set", cfg.Vertex.SystemInstruction != "",
	)

	// Monitoring config
	logger.Info("monitoring",
		"prometheus_enabled", cfg.Monitoring.PrometheusEnabled,
		"health_check_path", cfg.Monitoring.HealthCheckPath,
	)

	// Fail2Ban config
	if cfg.Fail2Ban.MaxAttempts > 0 {
		logger.Info("fail2ban (ENABLED)",
			"max_attempts", cfg.Fail2Ban.MaxAttempts,
			"ban_duration", banDurationToString(cfg.Fail2Ban.BanDuration),
			"cache_size", cfg.Fail2Ban.CacheSize,
		)
	} else {
		logger.Info("fail2ban", "status", "DISABLED")
	}

	logger.Info("=== Configuration Ready ===")
}

// credentialsSource describes where Vertex credentials come from without exposing them
func credentialsSource(v VertexConfig) string {
	switch {
	case v.CredentialsFile != "":
		return "file:" + v.CredentialsFile
	case v.CredentialsJSON != "":
		return "inline json"
	default:
		return "application default"
	}
}

func temperatureToString(t *float32) string {
	if t == nil {
		return "model default"
	}
	return strconv.FormatFloat(float64(*t), 'f', -1, 32)
}

// banDurationToString converts ban duration to readable string
func banDurationToString(d time.Duration) string {
	if d == 0 {
		return "permanent"
	}
	return d.String()
}
