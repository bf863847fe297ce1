// Package systemprompt is a client for the SystemPrompt content
// service, which stores remote prompts and content blocks.
package systemprompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.systemprompt.io/v1"

// Metadata is shared by prompts and blocks.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Created     string `json:"created,omitempty"`
	Updated     string `json:"updated,omitempty"`
	Version     int    `json:"version,omitempty"`
	Status      string `json:"status,omitempty"`
	Author      string `json:"author,omitempty"`
	LogMessage  string `json:"log_message,omitempty"`
}

// Prompt is a remotely managed prompt definition.
type Prompt struct {
	ID          string   `json:"id"`
	Metadata    Metadata `json:"metadata"`
	Instruction struct {
		Static  string `json:"static"`
		Dynamic string `json:"dynamic,omitempty"`
		State   string `json:"state,omitempty"`
	} `json:"instruction"`
	Input  PromptIO `json:"input"`
	Output PromptIO `json:"output"`
}

// PromptIO describes the input or output contract of a remote prompt.
type PromptIO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        []string        `json:"type"`
	Schema      json.RawMessage `json:"schema,omitempty"`
}

// Block is a remotely managed content block.
type Block struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Prefix   string   `json:"prefix"`
	Metadata Metadata `json:"metadata"`
}

// Client talks to the SystemPrompt API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(base, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client authenticated with the given API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetAllPrompts lists every remote prompt.
func (c *Client) GetAllPrompts(ctx context.Context) ([]Prompt, error) {
	var prompts []Prompt
	if err := c.get(ctx, "/prompt", &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// ListBlocks lists every remote content block.
func (c *Client) ListBlocks(ctx context.Context) ([]Block, error) {
	var blocks []Block
	if err := c.get(ctx, "/block", &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// GetBlock retrieves one content block by id.
func (c *Client) GetBlock(ctx context.Context, blockID string) (*Block, error) {
	var block Block
	if err := c.get(ctx, "/block/"+url.PathEscape(blockID), &block); err != nil {
		return nil, err
	}
	return &block, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	c.log.Debug("systemprompt request", "endpoint", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	var body []byte
	if resp.StatusCode != http.StatusNoContent {
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return errors.New("Failed to parse API response")
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, body)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return errors.New("Failed to parse API response")
		}
	}
	return nil
}

// transportError keeps the underlying failure message when there is
// one; the generic message is only a fallback.
func transportError(err error) error {
	if err != nil && err.Error() != "" {
		return err
	}
	return errors.New("API request failed")
}

// statusError maps an API failure to its user-facing message. A body
// message takes precedence for 400 and unmapped statuses.
func statusError(status int, body []byte) error {
	switch status {
	case http.StatusForbidden:
		return errors.New("Invalid API key")
	case http.StatusNotFound:
		return errors.New("Resource not found - it may have been deleted")
	case http.StatusConflict:
		return errors.New("Resource conflict - it may have been edited")
	case http.StatusBadRequest:
		if msg := bodyMessage(body); msg != "" {
			return errors.New(msg)
		}
		return errors.New("Invalid request parameters")
	default:
		if msg := bodyMessage(body); msg != "" {
			return errors.New(msg)
		}
		return fmt.Errorf("API request failed with status %d", status)
	}
}

func bodyMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
