package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server modes
const (
	ModeHTTP = "http"
	ModeGRPC = "grpc"
	ModeBoth = "both"
)

// Defaults applied by Normalize when a field is left empty.
const (
	DefaultPort              = 8080
	DefaultGRPCPort          = 50051
	DefaultMaxBodySizeMB     = 10
	DefaultRequestTimeout    = 5 * time.Minute
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultHealthCheckPath   = "/_health"
	DefaultFail2BanCacheSize = 10000
)

// ErrMissingRequired is wrapped by Validate for every absent required field.
var ErrMissingRequired = errors.New("required configuration value is missing")

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Vertex     VertexConfig     `yaml:"vertex"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Fail2Ban   Fail2BanConfig   `yaml:"fail2ban"`
}

type ServerConfig struct {
	Mode              string        `yaml:"mode"`
	Port              int           `yaml:"port"`
	GRPCPort          int           `yaml:"grpc_port"`
	APIKey            string        `yaml:"api_key"`
	MaxBodySizeMB     int           `yaml:"max_body_size_mb"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	LoggingLevel      string        `yaml:"logging_level"`
	LogFormat         string        `yaml:"log_format"`

	// TrustForwardedHeaders takes the client address from X-Forwarded-For /
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustForwardedHeaders bool `yaml:"trust_forwarded_headers"`
}

type VertexConfig struct {
	Project           string   `yaml:"project"`
	Location          string   `yaml:"location"`
	Model             string   `yaml:"model"`
	CredentialsFile   string   `yaml:"credentials_file"`
	CredentialsJSON   string   `yaml:"credentials_json"`
	SystemInstruction string   `yaml:"system_instruction"`
	Temperature       *float32 `yaml:"temperature"`
	MaxOutputTokens   int32    `yaml:"max_output_tokens"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool   `yaml:"prometheus_enabled"`
	HealthCheckPath   string `yaml:"health_check_path"`
}

type Fail2BanConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BanDuration time.Duration `yaml:"ban_duration"`
	CacheSize   int           `yaml:"cache_size"`
}

// UnmarshalYAML implements custom unmarshaling for ServerConfig
func (s *ServerConfig) UnmarshalYAML(value *yaml.Node) error {
	// Numbers and durations are read as strings so they can use os.environ/ references
	type tempConfig struct {
		Mode              string `yaml:"mode"`
		Port              string `yaml:"port"`
		GRPCPort          string `yaml:"grpc_port"`
		APIKey            string `yaml:"api_key"`
		MaxBodySizeMB     string `yaml:"max_body_size_mb"`
		RequestTimeout    string `yaml:"request_timeout"`
		ReadHeaderTimeout string `yaml:"read_header_timeout"`
		ShutdownTimeout   string `yaml:"shutdown_timeout"`
		LoggingLevel      string `yaml:"logging_level"`
		LogFormat         string `yaml:"log_format"`

		TrustForwardedHeaders string `yaml:"trust_forwarded_headers"`
	}

	var temp tempConfig
	if err := value.Decode(&temp); err != nil {
		return err
	}

	var err error
	s.Mode = strings.ToLower(resolveEnvString(temp.Mode))
	s.APIKey = resolveEnvString(temp.APIKey)
	s.LoggingLevel = strings.ToLower(resolveEnvString(temp.LoggingLevel))
	s.LogFormat = strings.ToLower(resolveEnvString(temp.LogFormat))

	if s.Port, err = parseField(temp.Port, 0, strconv.Atoi, "server.port"); err != nil {
		return err
	}
	if s.GRPCPort, err = parseField(temp.GRPCPort, 0, strconv.Atoi, "server.grpc_port"); err != nil {
		return err
	}
	if s.MaxBodySizeMB, err = parseField(temp.MaxBodySizeMB, 0, strconv.Atoi, "server.max_body_size_mb"); err != nil {
		return err
	}
	if s.RequestTimeout, err = parseField(temp.RequestTimeout, 0, time.ParseDuration, "server.request_timeout"); err != nil {
		return err
	}
	if s.ReadHeaderTimeout, err = parseField(temp.ReadHeaderTimeout, 0, time.ParseDuration, "server.read_header_timeout"); err != nil {
		return err
	}
	if s.ShutdownTimeout, err = parseField(temp.ShutdownTimeout, 0, time.ParseDuration, "server.shutdown_timeout"); err != nil {
		return err
	}
	if s.TrustForwardedHeaders, err = parseField(temp.TrustForwardedHeaders, false, strconv.ParseBool, "server.trust_forwarded_headers"); err != nil {
		return err
	}

	return nil
}

// UnmarshalYAML implements custom unmarshaling for VertexConfig
func (v *VertexConfig) UnmarshalYAML(value *yaml.Node) error {
	type tempConfig struct {
		Project           string `yaml:"project"`
		Location          string `yaml:"location"`
		Model             string `yaml:"model"`
		CredentialsFile   string `yaml:"credentials_file"`
		CredentialsJSON   string `yaml:"credentials_json"`
		SystemInstruction string `yaml:"system_instruction"`
		Temperature       string `yaml:"temperature"`
		MaxOutputTokens   string `yaml:"max_output_tokens"`
	}

	var temp tempConfig
	if err := value.Decode(&temp); err != nil {
		return err
	}

	v.Project = resolveEnvString(temp.Project)
	v.Location = resolveEnvString(temp.Location)
	v.Model = resolveEnvString(temp.Model)
	v.CredentialsFile = resolveEnvString(temp.CredentialsFile)
	v.CredentialsJSON = resolveEnvString(temp.CredentialsJSON)
	v.SystemInstruction = resolveEnvString(temp.SystemInstruction)

	temperature, err := parseField(temp.Temperature, float32(-1), parseFloat32, "vertex.temperature")
	if err != nil {
		return err
	}
	if temperature >= 0 {
		v.Temperature = &temperature
	}

	maxTokens, err := parseField(temp.MaxOutputTokens, 0, strconv.Atoi, "vertex.max_output_tokens")
	if err != nil {
		return err
	}
	v.MaxOutputTokens = int32(maxTokens)

	return nil
}

// UnmarshalYAML implements custom unmarshaling for Fail2BanConfig
func (f *Fail2BanConfig) UnmarshalYAML(value *yaml.Node) error {
	// Create a temporary struct with string ban_duration
	type tempConfig struct {
		MaxAttempts string `yaml:"max_attempts"`
		BanDuration string `yaml:"ban_duration"`
		CacheSize   string `yaml:"cache_size"`
	}

	var temp tempConfig
	if err := value.Decode(&temp); err != nil {
		return err
	}

	var err error
	if f.MaxAttempts, err = parseField(temp.MaxAttempts, 0, strconv.Atoi, "fail2ban.max_attempts"); err != nil {
		return err
	}
	if f.CacheSize, err = parseField(temp.CacheSize, 0, strconv.Atoi, "fail2ban.cache_size"); err != nil {
		return err
	}

	// Parse ban_duration
	banDuration := resolveEnvString(temp.BanDuration)
	if banDuration == "permanent" || banDuration == "" {
		f.BanDuration = 0 // 0 means permanent ban
	} else {
		duration, err := time.ParseDuration(banDuration)
		if err != nil {
			return fmt.Errorf("invalid ban_duration: %w", err)
		}
		f.BanDuration = duration
	}

	return nil
}

// Load reads the YAML file at path, fills gaps from the environment and
// validates the result. An empty path builds the config from the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills fields the YAML left empty from well-known environment variables.
func (c *Config) ApplyEnv() error {
	setIfEmpty(&c.Server.APIKey, "API_KEY")
	setIfEmpty(&c.Vertex.Project, "GOOGLE_CLOUD_PROJECT")
	setIfEmpty(&c.Vertex.Location, "GOOGLE_CLOUD_LOCATION")
	setIfEmpty(&c.Vertex.Model, "VERTEX_MODEL")

	if c.Server.Port == 0 {
		port, err := parseField(os.Getenv("PORT"), 0, strconv.Atoi, "PORT")
		if err != nil {
			return err
		}
		c.Server.Port = port
	}
	if c.Server.GRPCPort == 0 {
		port, err := parseField(os.Getenv("GRPC_PORT"), 0, strconv.Atoi, "GRPC_PORT")
		if err != nil {
			return err
		}
		c.Server.GRPCPort = port
	}

	return nil
}

// Normalize fills defaults and cleans up configuration values
func (c *Config) Normalize() {
	c.Server.APIKey = strings.TrimSpace(c.Server.APIKey)
	c.Vertex.Project = strings.TrimSpace(c.Vertex.Project)
	c.Vertex.Location = strings.TrimSpace(c.Vertex.Location)
	c.Vertex.Model = strings.TrimSpace(c.Vertex.Model)

	if c.Server.Mode == "" {
		c.Server.Mode = ModeBoth
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = DefaultGRPCPort
	}
	if c.Server.MaxBodySizeMB == 0 {
		c.Server.MaxBodySizeMB = DefaultMaxBodySizeMB
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Server.LoggingLevel == "" {
		c.Server.LoggingLevel = "info" // Default to info
	}
	if c.Server.LogFormat == "" {
		c.Server.LogFormat = "text"
	}

	if c.Monitoring.HealthCheckPath == "" {
		c.Monitoring.HealthCheckPath = DefaultHealthCheckPath
	} else if !strings.HasPrefix(c.Monitoring.HealthCheckPath, "/") {
		c.Monitoring.HealthCheckPath = "/" + c.Monitoring.HealthCheckPath
	}

	if c.Fail2Ban.CacheSize == 0 {
		c.Fail2Ban.CacheSize = DefaultFail2BanCacheSize
	}
}

func (c *Config) Validate() error {
	switch c.Server.Mode {
	case ModeHTTP, ModeGRPC, ModeBoth:
	default:
		return fmt.Errorf("invalid server.mode: %s (must be http, grpc, or both)", c.Server.Mode)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Server.GRPCPort <= 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc_port: %d", c.Server.GRPCPort)
	}

	if c.Server.Mode == ModeBoth && c.Server.Port == c.Server.GRPCPort {
		return fmt.Errorf("port and grpc_port must differ in mode %s: %d", ModeBoth, c.Server.Port)
	}

	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("invalid max_body_size_mb: %d", c.Server.MaxBodySizeMB)
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request_timeout: %v", c.Server.RequestTimeout)
	}

	// Validate logging level
	validLevels := map[string]bool{"info": true, "debug": true, "error": true}
	if !validLevels[c.Server.LoggingLevel] {
		return fmt.Errorf("invalid logging_level: %s (must be info, debug, or error)", c.Server.LoggingLevel)
	}

	if c.Server.LogFormat != "text" && c.Server.LogFormat != "json" {
		return fmt.Errorf("invalid log_format: %s (must be text or json)", c.Server.LogFormat)
	}

	if c.Server.APIKey == "" {
		return fmt.Errorf("server.api_key: %w", ErrMissingRequired)
	}
	if c.Vertex.Project == "" {
		return fmt.Errorf("vertex.project: %w", ErrMissingRequired)
	}
	if c.Vertex.Location == "" {
		return fmt.Errorf("vertex.location: %w", ErrMissingRequired)
	}
	if c.Vertex.Model == "" {
		return fmt.Errorf("vertex.model: %w", ErrMissingRequired)
	}

	if c.Vertex.CredentialsFile != "" && c.Vertex.CredentialsJSON != "" {
		return fmt.Errorf("vertex.credentials_file and vertex.credentials_json are mutually exclusive")
	}

	if c.Vertex.Temperature != nil && (*c.Vertex.Temperature < 0 || *c.Vertex.Temperature > 2) {
		return fmt.Errorf("invalid vertex.temperature: %v (must be between 0 and 2)", *c.Vertex.Temperature)
	}

	if c.Vertex.MaxOutputTokens < 0 {
		return fmt.Errorf("invalid vertex.max_output_tokens: %d", c.Vertex.MaxOutputTokens)
	}

	if c.Fail2Ban.MaxAttempts < 0 {
		return fmt.Errorf("invalid max_attempts: %d", c.Fail2Ban.MaxAttempts)
	}

	if c.Fail2Ban.CacheSize <= 0 {
		return fmt.Errorf("invalid fail2ban.cache_size: %d", c.Fail2Ban.CacheSize)
	}

	return nil
}

// ServesHTTP reports whether the HTTP/JSON listener should run
func (c *Config) ServesHTTP() bool {
	return c.Server.Mode == ModeHTTP || c.Server.Mode == ModeBoth
}

// ServesGRPC reports whether the gRPC listener should run
func (c *Config) ServesGRPC() bool {
	return c.Server.Mode == ModeGRPC || c.Server.Mode == ModeBoth
}
