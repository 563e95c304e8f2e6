// Package openai is an OpenAI-compatible chat-completions client (DeepSeek,
// OpenAI, OpenRouter, Ollama's /v1 endpoint).
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"recipe-rag/internal/generation"
)

// DefaultBaseURL is the DeepSeek API root.
const DefaultBaseURL = "https://api.deepseek.com"

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("missing API key")

// Config configures the chat-completions client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client sends chat-completion requests. It performs no retries.
type Client struct {
	rc *resty.Client
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)
	return &Client{rc: rc}, nil
}

// Complete posts req to /chat/completions.
func (c *Client) Complete(ctx context.Context, req generation.ChatRequest) (*generation.ChatResponse, error) {
	var out generation.ChatResponse
	var apiErr apiError
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("send chat request: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return nil, fmt.Errorf("chat completion failed (status %d): %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return nil, fmt.Errorf("chat completion failed: %s", resp.Status())
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("malformed chat response: %s", truncate(resp.String(), 200))
	}
	return &out, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.rc.GetClient().CloseIdleConnections()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
