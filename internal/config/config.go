package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Service ServiceConfig `yaml:"service" json:"service"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// ServiceConfig configures the Analysis Service the client talks to
type ServiceConfig struct {
	BaseURL     string            `yaml:"base_url" json:"base_url"`         // service root, e.g. http://localhost:8000
	AnalyzePath string            `yaml:"analyze_path" json:"analyze_path"` // POST endpoint
	HealthPath  string            `yaml:"health_path" json:"health_path"`   // GET endpoint
	UserAgent   string            `yaml:"user_agent" json:"user_agent"`
	Headers     map[string]string `yaml:"headers" json:"headers"` // extra request headers
}

// UIConfig configures the interactive view
type UIConfig struct {
	Theme     string `yaml:"theme" json:"theme"`           // default|high-contrast|minimal
	IdleLabel string `yaml:"idle_label" json:"idle_label"` // trigger label when idle
	BusyLabel string `yaml:"busy_label" json:"busy_label"` // trigger label while a request is in flight
	Multiline bool   `yaml:"multiline" json:"multiline"`   // enter inserts newlines, ctrl+s submits
}

// OutputConfig configures non-interactive output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// ServerConfig configures the local development Analysis Service
type ServerConfig struct {
	Addr              string  `yaml:"addr" json:"addr"`
	PositiveThreshold float64 `yaml:"positive_threshold" json:"positive_threshold"`
	NegativeThreshold float64 `yaml:"negative_threshold" json:"negative_threshold"`
}

const (
	DefaultIdleLabel = "Analyze Sentiment"
	DefaultBusyLabel = "Analyzing..."
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			BaseURL:     "http://localhost:8000",
			AnalyzePath: "/analyze",
			HealthPath:  "/health",
			UserAgent:   "sentiview",
			Headers:     make(map[string]string),
		},
		UI: UIConfig{
			Theme:     "default",
			IdleLabel: DefaultIdleLabel,
			BusyLabel: DefaultBusyLabel,
			Multiline: false,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		Server: ServerConfig{
			Addr:              ":8000",
			PositiveThreshold: 0.20,
			NegativeThreshold: -0.20,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	return nil
}

// validateServiceConfig validates service-related configuration
func (c *Config) validateServiceConfig() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service base_url is required")
	}
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid service base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid service base_url scheme: %s (must be http or https)", u.Scheme)
	}
	if c.Service.AnalyzePath != "" && !strings.HasPrefix(c.Service.AnalyzePath, "/") {
		return fmt.Errorf("analyze_path must start with '/'")
	}
	if c.Service.HealthPath != "" && !strings.HasPrefix(c.Service.HealthPath, "/") {
		return fmt.Errorf("health_path must start with '/'")
	}
	return nil
}

// validateUIConfig validates UI-related configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateServerConfig validates development server configuration
func (c *Config) validateServerConfig() error {
	if c.Server.PositiveThreshold < -1 || c.Server.PositiveThreshold > 1 {
		return fmt.Errorf("positive_threshold must be between -1 and 1")
	}
	if c.Server.NegativeThreshold < -1 || c.Server.NegativeThreshold > 1 {
		return fmt.Errorf("negative_threshold must be between -1 and 1")
	}
	if c.Server.NegativeThreshold > c.Server.PositiveThreshold {
		return fmt.Errorf("negative_threshold must not exceed positive_threshold")
	}
	return nil
}

// AnalyzeURL returns the absolute analyze endpoint
func (s *ServiceConfig) AnalyzeURL() string {
	return joinURL(s.BaseURL, s.AnalyzePath, "/analyze")
}

// HealthURL returns the absolute health endpoint
func (s *ServiceConfig) HealthURL() string {
	return joinURL(s.BaseURL, s.HealthPath, "/health")
}

func joinURL(base, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	return strings.TrimRight(base, "/") + path
}
