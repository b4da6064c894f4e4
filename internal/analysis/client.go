package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yildizm/SentiView/internal/config"
	"github.com/yildizm/SentiView/internal/logger"
)

// Client talks to an Analysis Service over HTTP
type Client struct {
	analyzeURL string
	healthURL  string
	userAgent  string
	headers    map[string]string
	httpClient *http.Client
	log        *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l.WithComponent("client")
	}
}

// NewClient creates a client for the service described by cfg
func NewClient(cfg *config.ServiceConfig, opts ...Option) (*Client, error) {
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	c := &Client{
		analyzeURL: cfg.AnalyzeURL(),
		healthURL:  cfg.HealthURL(),
		userAgent:  cfg.UserAgent,
		headers:    headers,
		// No timeout: the request runs until the transport gives up.
		httpClient: &http.Client{},
		log:        logger.NewWithCallback("client", func() bool { return false }),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Analyze posts text to the analyze endpoint. The text is trimmed first and an
// empty result is rejected without a request.
func (c *Client) Analyze(ctx context.Context, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewValidationError()
	}

	payload, err := json.Marshal(&Request{Text: text})
	if err != nil {
		return nil, NewParsingError("failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.analyzeURL, bytes.NewReader(payload))
	if err != nil {
		return nil, NewTransportError(err)
	}
	c.applyHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WarnWithFields("analyze request failed", []logger.Field{logger.F("url", c.analyzeURL), logger.Error(err)})
		return nil, NewTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(err)
	}

	c.log.DebugWithFields("analyze response", []logger.Field{
		logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)),
		logger.F("bytes", len(body)),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewServiceError(resp.StatusCode, parseDetail(body))
	}

	return ParseResult(body)
}

// Health queries the health endpoint
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, http.NoBody)
	if err != nil {
		return nil, NewTransportError(err)
	}
	c.applyHeaders(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		detail := parseDetail(body)
		if detail == "" {
			detail = fmt.Sprintf("health check failed with status %d", resp.StatusCode)
		}
		return nil, NewServiceError(resp.StatusCode, detail)
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, NewParsingError("failed to decode health response", err)
	}

	return &status, nil
}

// AnalyzeURL returns the endpoint used by Analyze
func (c *Client) AnalyzeURL() string {
	return c.analyzeURL
}

// HealthURL returns the endpoint used by Health
func (c *Client) HealthURL() string {
	return c.healthURL
}

func (c *Client) applyHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return NewConfigurationError("base_url", "base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigurationError("base_url", "unsupported scheme "+u.Scheme)
	}
	return nil
}
