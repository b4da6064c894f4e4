package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# SentiView configuration
version: "1.0"

# Analysis Service the client posts text to
service:
  # Root URL of the service
  base_url: "http://localhost:8000"
  # POST endpoint receiving {"text": "..."}
  analyze_path: "/analyze"
  # GET endpoint reporting {"status": "...", "model_loaded": true}
  health_path: "/health"
  user_agent: "sentiview"
  # Extra headers sent with every request
  headers: {}

# Interactive terminal view
ui:
  # default | high-contrast | minimal
  theme: "default"
  # Trigger label when idle and while a request is in flight
  idle_label: "Analyze Sentiment"
  busy_label: "Analyzing..."
  # When true, enter inserts a newline and ctrl+s submits
  multiline: false

# Non-interactive output (analyze, watch)
output:
  # text | json | markdown
  default_format: "text"
  # auto | always | never
  color_mode: "auto"
  verbose: false

# Local development service started by "sentiview serve"
server:
  addr: ":8000"
  # VADER compound score thresholds
  positive_threshold: 0.20
  negative_threshold: -0.20
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
service:
  base_url: "http://localhost:8000"
output:
  default_format: "text"
`
}
