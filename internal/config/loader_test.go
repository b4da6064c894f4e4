package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolatedLoader() *Loader {
	return NewLoader().WithSearchPaths(nil).WithEnvFile("")
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
	if loader.envFile != ".env" {
		t.Errorf("Expected default env file .env, got %s", loader.envFile)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := isolatedLoader().LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Service.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default base URL, got %s", cfg.Service.BaseURL)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
service:
  base_url: "https://sentiment.example.com"
  headers:
    Authorization: "Bearer abc"
ui:
  theme: "minimal"
  busy_label: "Thinking..."
output:
  default_format: "json"
  verbose: true
`

	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := isolatedLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Service.BaseURL != "https://sentiment.example.com" {
		t.Errorf("Expected base URL from file, got %s", cfg.Service.BaseURL)
	}
	if cfg.Service.AnalyzePath != "/analyze" {
		t.Errorf("Expected analyze path to keep default, got %s", cfg.Service.AnalyzePath)
	}
	if cfg.Service.Headers["Authorization"] != "Bearer abc" {
		t.Errorf("Expected Authorization header from file, got %q", cfg.Service.Headers["Authorization"])
	}
	if cfg.UI.Theme != "minimal" {
		t.Errorf("Expected theme minimal, got %s", cfg.UI.Theme)
	}
	if cfg.UI.BusyLabel != "Thinking..." {
		t.Errorf("Expected busy label from file, got %s", cfg.UI.BusyLabel)
	}
	if cfg.UI.IdleLabel != DefaultIdleLabel {
		t.Errorf("Expected idle label to keep default, got %s", cfg.UI.IdleLabel)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose to be true")
	}
}

func TestLoadConfigZeroThresholds(t *testing.T) {
	tempDir := t.TempDir()
	zero := filepath.Join(tempDir, "zero.yaml")
	if err := os.WriteFile(zero, []byte("server:\n  positive_threshold: 0\n  negative_threshold: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(tempDir, "other.yaml")
	if err := os.WriteFile(other, []byte("server:\n  addr: \":9000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := isolatedLoader().LoadConfig(zero)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.PositiveThreshold != 0 || cfg.Server.NegativeThreshold != 0 {
		t.Errorf("Expected explicit zero thresholds, got %v / %v", cfg.Server.PositiveThreshold, cfg.Server.NegativeThreshold)
	}

	cfg, err = isolatedLoader().LoadConfig(other)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.PositiveThreshold != 0.20 || cfg.Server.NegativeThreshold != -0.20 {
		t.Errorf("Expected default thresholds when unset, got %v / %v", cfg.Server.PositiveThreshold, cfg.Server.NegativeThreshold)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Expected addr from file, got %s", cfg.Server.Addr)
	}
}

func TestLoadConfigSearchPathPriority(t *testing.T) {
	tempDir := t.TempDir()
	high := filepath.Join(tempDir, "project.yaml")
	low := filepath.Join(tempDir, "system.yaml")

	if err := os.WriteFile(low, []byte("service:\n  base_url: \"http://low:1\"\nui:\n  theme: \"minimal\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(high, []byte("service:\n  base_url: \"http://high:2\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().WithSearchPaths([]string{high, low}).WithEnvFile("").LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Service.BaseURL != "http://high:2" {
		t.Errorf("Expected higher priority file to win, got %s", cfg.Service.BaseURL)
	}
	if cfg.UI.Theme != "minimal" {
		t.Errorf("Expected lower priority value to survive, got %s", cfg.UI.Theme)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SENTIVIEW_SERVICE_BASE_URL", "http://env-host:9000")
	t.Setenv("SENTIVIEW_UI_IDLE_LABEL", "Go")
	t.Setenv("SENTIVIEW_UI_MULTILINE", "true")
	t.Setenv("SENTIVIEW_OUTPUT_DEFAULT_FORMAT", "markdown")
	t.Setenv("SENTIVIEW_SERVER_POSITIVE_THRESHOLD", "0.5")
	t.Setenv("SENTIVIEW_SERVICE_HEADERS", "X-Api-Key=secret, X-Team = nlp")

	cfg, err := isolatedLoader().LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Service.BaseURL != "http://env-host:9000" {
		t.Errorf("Expected base URL from env, got %s", cfg.Service.BaseURL)
	}
	if cfg.UI.IdleLabel != "Go" {
		t.Errorf("Expected idle label from env, got %s", cfg.UI.IdleLabel)
	}
	if !cfg.UI.Multiline {
		t.Error("Expected multiline from env")
	}
	if cfg.Output.DefaultFormat != "markdown" {
		t.Errorf("Expected format from env, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Server.PositiveThreshold != 0.5 {
		t.Errorf("Expected positive threshold 0.5, got %v", cfg.Server.PositiveThreshold)
	}
	if cfg.Service.Headers["X-Api-Key"] != "secret" || cfg.Service.Headers["X-Team"] != "nlp" {
		t.Errorf("Expected headers from env, got %v", cfg.Service.Headers)
	}
}

func TestEnvOverrideInvalidValue(t *testing.T) {
	t.Setenv("SENTIVIEW_UI_MULTILINE", "maybe")

	_, err := isolatedLoader().LoadConfig("")
	if err == nil {
		t.Fatal("Expected error for invalid boolean")
	}
	if !strings.Contains(err.Error(), "SENTIVIEW_UI_MULTILINE") {
		t.Errorf("Expected error to name the variable, got %v", err)
	}
}

func TestEnvFileOverrides(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("SENTIVIEW_UI_BUSY_LABEL=Working\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// gotenv.Load sets variables directly; make sure they are cleared afterwards.
	t.Setenv("SENTIVIEW_UI_BUSY_LABEL", "")
	if err := os.Unsetenv("SENTIVIEW_UI_BUSY_LABEL"); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().WithSearchPaths(nil).WithEnvFile(envPath).LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.UI.BusyLabel != "Working" {
		t.Errorf("Expected busy label from .env, got %s", cfg.UI.BusyLabel)
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "yaml file", path: "config.yaml", wantErr: false},
		{name: "yml file", path: "config.yml", wantErr: false},
		{name: "wrong extension", path: "config.json", wantErr: true},
		{name: "traversal", path: "../../etc/config.yaml", wantErr: true},
		{name: "proc file", path: "/proc/self/config.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfigPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders("A=1,,B = two ")
	if err != nil {
		t.Fatalf("parseHeaders failed: %v", err)
	}
	if headers["A"] != "1" || headers["B"] != "two" || len(headers) != 2 {
		t.Errorf("unexpected headers: %v", headers)
	}

	if _, err := parseHeaders("broken"); err == nil {
		t.Error("Expected error for header without '='")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/x.yaml"); got != filepath.Join(home, "x.yaml") {
		t.Errorf("expandPath = %s", got)
	}
	if got := expandPath("/abs.yaml"); got != "/abs.yaml" {
		t.Errorf("expandPath changed absolute path: %s", got)
	}
}
