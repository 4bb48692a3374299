// Package gemini wraps the Gemini text generation API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var ErrMissingAPIKey = errors.New("gemini: api key is not configured")

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint (tests).
	BaseURL string
}

// Options tunes a single generation call.
type Options struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Client creates the underlying SDK client on first use so a missing key
// surfaces as a call error rather than a startup failure.
type Client struct {
	cfg Config

	mu  sync.Mutex
	sdk *genai.Client
}

func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{cfg: cfg}
}

// GenerateText sends prompt as a single user turn and returns the response text.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	sdk, err := c.client(ctx)
	if err != nil {
		return "", err
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	resp, err := sdk.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if resp == nil {
		return "", nil
	}

	return strings.TrimSpace(resp.Text()), nil
}

func (c *Client) client(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sdk != nil {
		return c.sdk, nil
	}
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:  c.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.cfg.BaseURL}
	}

	sdk, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	c.sdk = sdk
	return sdk, nil
}
