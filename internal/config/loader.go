package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.sentiview.yaml",               // Project-specific config (highest priority)
	"~/.config/sentiview/config.yaml", // User config
	"/etc/sentiview/config.yaml",      // System config (lowest priority)
}

// DefaultEnvFile is the dotenv file read before environment overrides are applied
const DefaultEnvFile = ".env"

// EnvPrefix prefixes every environment override
const EnvPrefix = "SENTIVIEW_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	envFile     string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		envFile:     DefaultEnvFile,
	}
}

// WithEnvFile sets the dotenv file to load; an empty path disables dotenv loading
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// WithSearchPaths replaces the config search paths
func (l *Loader) WithSearchPaths(paths []string) *Loader {
	l.configPaths = paths
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (process env, then the dotenv file)
// 3. ./.sentiview.yaml
// 4. ~/.config/sentiview/config.yaml
// 5. /etc/sentiview/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l.envFile, err)
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// A second pass tells an explicit 0 apart from a missing threshold.
	var thresholds serverThresholds
	if err := yaml.Unmarshal(data, &thresholds); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	thresholds.apply(&config.Server)

	return nil
}

// serverThresholds records which thresholds a file actually sets
type serverThresholds struct {
	Server struct {
		PositiveThreshold *float64 `yaml:"positive_threshold"`
		NegativeThreshold *float64 `yaml:"negative_threshold"`
	} `yaml:"server"`
}

func (t serverThresholds) apply(dst *ServerConfig) {
	if t.Server.PositiveThreshold != nil {
		dst.PositiveThreshold = *t.Server.PositiveThreshold
	}
	if t.Server.NegativeThreshold != nil {
		dst.NegativeThreshold = *t.Server.NegativeThreshold
	}
}

// loadEnvFile reads the dotenv file into the process environment without
// overriding variables that are already set.
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" || !fileExists(l.envFile) {
		return nil
	}
	return gotenv.Load(l.envFile)
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Service Config
		"SENTIVIEW_SERVICE_BASE_URL":     func(v string) error { config.Service.BaseURL = v; return nil },
		"SENTIVIEW_SERVICE_ANALYZE_PATH": func(v string) error { config.Service.AnalyzePath = v; return nil },
		"SENTIVIEW_SERVICE_HEALTH_PATH":  func(v string) error { config.Service.HealthPath = v; return nil },
		"SENTIVIEW_SERVICE_USER_AGENT":   func(v string) error { config.Service.UserAgent = v; return nil },

		// UI Config
		"SENTIVIEW_UI_THEME":      func(v string) error { config.UI.Theme = v; return nil },
		"SENTIVIEW_UI_IDLE_LABEL": func(v string) error { config.UI.IdleLabel = v; return nil },
		"SENTIVIEW_UI_BUSY_LABEL": func(v string) error { config.UI.BusyLabel = v; return nil },
		"SENTIVIEW_UI_MULTILINE":  func(v string) error { return parseBool(v, &config.UI.Multiline) },

		// Output Config
		"SENTIVIEW_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"SENTIVIEW_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"SENTIVIEW_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },

		// Server Config
		"SENTIVIEW_SERVER_ADDR":               func(v string) error { config.Server.Addr = v; return nil },
		"SENTIVIEW_SERVER_POSITIVE_THRESHOLD": func(v string) error { return parseFloat(v, &config.Server.PositiveThreshold) },
		"SENTIVIEW_SERVER_NEGATIVE_THRESHOLD": func(v string) error { return parseFloat(v, &config.Server.NegativeThreshold) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// SENTIVIEW_SERVICE_HEADERS is a comma-separated list of Name=Value pairs
	if raw := os.Getenv(EnvPrefix + "SERVICE_HEADERS"); raw != "" {
		headers, err := parseHeaders(raw)
		if err != nil {
			return fmt.Errorf("invalid value for %sSERVICE_HEADERS: %w", EnvPrefix, err)
		}
		if config.Service.Headers == nil {
			config.Service.Headers = make(map[string]string)
		}
		for k, v := range headers {
			config.Service.Headers[k] = v
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeConfigs merges source config into destination config
// Only non-zero values from source overwrite destination
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeServiceConfig(&dst.Service, &src.Service)
	mergeUIConfig(&dst.UI, &src.UI)
	mergeOutputConfig(&dst.Output, &src.Output)
	mergeServerConfig(&dst.Server, &src.Server)
}

func mergeServiceConfig(dst, src *ServiceConfig) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.AnalyzePath != "" {
		dst.AnalyzePath = src.AnalyzePath
	}
	if src.HealthPath != "" {
		dst.HealthPath = src.HealthPath
	}
	if src.UserAgent != "" {
		dst.UserAgent = src.UserAgent
	}
	if len(src.Headers) > 0 {
		if dst.Headers == nil {
			dst.Headers = make(map[string]string)
		}
		for k, v := range src.Headers {
			dst.Headers[k] = v
		}
	}
}

func mergeUIConfig(dst, src *UIConfig) {
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.IdleLabel != "" {
		dst.IdleLabel = src.IdleLabel
	}
	if src.BusyLabel != "" {
		dst.BusyLabel = src.BusyLabel
	}
	if src.Multiline {
		dst.Multiline = true
	}
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	// false cannot be told apart from "unset" here; env overrides can turn it off again
	if src.Verbose {
		dst.Verbose = true
	}
}

func mergeServerConfig(dst, src *ServerConfig) {
	if src.Addr != "" {
		dst.Addr = src.Addr
	}
	// thresholds are merged by serverThresholds, where 0 is a legal value
}

// Type conversion helpers

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseHeaders(raw string) (map[string]string, error) {
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("header %q is not in Name=Value form", pair)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}
