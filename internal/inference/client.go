// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inference talks to a local language-model server over the
// Ollama HTTP protocol and turns document text into a candidate title.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/pdfrename/internal/httputil"
	"github.com/pdiddy/pdfrename/pkg/types"
)

// ErrInference wraps every failure to obtain a completion: transport
// errors, timeouts, non-200 statuses and undecodable bodies.
var ErrInference = errors.New("inference failed")

// Client calls the generate and version endpoints of an inference server.
type Client struct {
	endpoint     string
	model        string
	apiKey       string
	userAgent    string
	maxRetries   int
	maxTextChars int
	timeout      time.Duration
	http         *http.Client
	logger       *slog.Logger
}

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the non-streaming reply of /api/generate.
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type versionResponse struct {
	Version string `json:"version"`
}

// New builds a Client from cfg, filling unset fields with defaults.
func New(cfg types.InferenceConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = types.DefaultEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = types.DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	maxChars := cfg.MaxTextChars
	if maxChars <= 0 {
		maxChars = types.DefaultMaxTextChars
	}
	return &Client{
		endpoint:     endpoint,
		model:        model,
		apiKey:       cfg.APIKey,
		userAgent:    cfg.UserAgent,
		maxRetries:   cfg.MaxRetries,
		maxTextChars: maxChars,
		timeout:      timeout,
		http:         &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// Model returns the model identifier sent with each request.
func (c *Client) Model() string { return c.model }

// Endpoint returns the base URL of the inference server.
func (c *Client) Endpoint() string { return c.endpoint }

// GenerateTitle asks the model for the title of the document whose
// first-page text is given. Failures are logged and yield types.NotFound;
// they never propagate.
func (c *Client) GenerateTitle(ctx context.Context, text string) types.GeneratedTitle {
	prompt, err := renderPrompt(text, c.maxTextChars)
	if err != nil {
		c.logger.Error("rendering title prompt", "error", err)
		return types.NotFound
	}

	start := time.Now()
	completion, err := c.Generate(ctx, prompt)
	latency := time.Since(start)
	if err != nil {
		c.logger.Error("title generation failed", "model", c.model, "latency", latency, "error", err)
		return types.NotFound
	}

	result := ParseTitle(completion)
	if _, ok := result.Get(); !ok {
		c.logger.Warn("no title in model output", "model", c.model, "latency", latency, "output", preview(completion))
		return types.NotFound
	}
	c.logger.Info("generated title", "title", result.String(), "model", c.model, "latency", latency)
	return result
}

// Generate sends prompt to /api/generate with streaming off and returns
// the completion text. The configured timeout covers every attempt and
// backoff wait together.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", ErrInference, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", ErrInference, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries, c.logger)
	if err != nil {
		return "", fmt.Errorf("%w: calling %s: %w", ErrInference, c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: %s returned %d: %s", ErrInference, c.endpoint, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrInference, err)
	}
	return gr.Response, nil
}

// Version queries /api/version. Used by the ping command to check that
// the server is reachable before a long batch.
func (c *Client) Version(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/version", nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", ErrInference, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calling %s: %w", ErrInference, c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %d", ErrInference, c.endpoint, resp.StatusCode)
	}

	var vr versionResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return "", fmt.Errorf("%w: decoding version: %v", ErrInference, err)
	}
	return vr.Version, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func preview(s string) string {
	const limit = 200
	s = strings.TrimSpace(s)
	if t := truncateRunes(s, limit); t != s {
		return t + "..."
	}
	return s
}
