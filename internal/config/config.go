// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration. Values come from the
// config file, DEPSCOPE_* environment variables, and CLI flags, in that
// order of increasing precedence (viper's usual layering).
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Engine   EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Probe    ProbeConfig    `mapstructure:"probe" yaml:"probe"`
	Artifact ArtifactConfig `mapstructure:"artifact" yaml:"artifact"`
}

// LoggerConfig controls the zap logger setup.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// File enables rotated file logging alongside the console when set.
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxRequestBytes int64         `mapstructure:"max_request_bytes" yaml:"max_request_bytes"`
}

// Addr returns the host:port the server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EngineConfig controls the traversal engine.
type EngineConfig struct {
	ProbeConcurrency int           `mapstructure:"probe_concurrency" yaml:"probe_concurrency"`
	ProbeTimeout     time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`
}

// ProbeConfig selects and tunes the health probe implementation.
type ProbeConfig struct {
	// Kind is "fixed" (latency echo stand-in) or "http" (real monitoring
	// endpoint).
	Kind    string        `mapstructure:"kind" yaml:"kind"`
	Latency time.Duration `mapstructure:"latency" yaml:"latency"`

	Endpoint          string  `mapstructure:"endpoint" yaml:"endpoint"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `mapstructure:"burst" yaml:"burst"`
}

// ArtifactConfig controls where the latest graph rendering is kept.
type ArtifactConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Filename string `mapstructure:"filename" yaml:"filename"`
}

// SetDefaults seeds v with the defaults every deployment starts from.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "depscope")
	v.SetDefault("logger.max_size_mb", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age_days", 14)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_request_bytes", int64(10<<20))

	v.SetDefault("engine.probe_concurrency", 10)
	v.SetDefault("engine.probe_timeout", 5*time.Second)

	v.SetDefault("probe.kind", "fixed")
	v.SetDefault("probe.latency", 1*time.Second)
	v.SetDefault("probe.requests_per_second", float64(0))
	v.SetDefault("probe.burst", 1)

	v.SetDefault("artifact.dir", ".")
	v.SetDefault("artifact.filename", "graph.dot")
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logger.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be \"console\" or \"json\", got %q", c.Logger.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("server.max_request_bytes must be positive, got %d", c.Server.MaxRequestBytes)
	}

	if c.Engine.ProbeConcurrency < 1 {
		return fmt.Errorf("engine.probe_concurrency must be at least 1, got %d", c.Engine.ProbeConcurrency)
	}
	if c.Engine.ProbeTimeout <= 0 {
		return fmt.Errorf("engine.probe_timeout must be positive, got %s", c.Engine.ProbeTimeout)
	}

	switch strings.ToLower(c.Probe.Kind) {
	case "fixed":
	case "http":
		if c.Probe.Endpoint == "" {
			return fmt.Errorf("probe.endpoint is required when probe.kind is \"http\"")
		}
	default:
		return fmt.Errorf("probe.kind must be \"fixed\" or \"http\", got %q", c.Probe.Kind)
	}

	return nil
}
