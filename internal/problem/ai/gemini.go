// Package ai wraps the Gemini client behind small text/image generation
// methods so the rest of the service never touches provider types.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// Config carries the provider settings for the generator.
type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float32
}

// Client generates text with the Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	cfg    Config
	logger zerolog.Logger
}

// NewClient connects to Gemini. The API key must be set; callers handle
// offline mode before constructing a client.
func NewClient(ctx context.Context, cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	return &Client{
		client: client,
		model:  model,
		cfg:    cfg,
		logger: logger.With().Str("component", "gemini").Logger(),
	}, nil
}

// GenerateText sends a single text prompt and returns the reply text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, genai.Text(prompt))
}

// GenerateWithImage sends a prompt together with inline image bytes. The
// format is the MIME subtype ("png", "jpeg").
func (c *Client) GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" {
		format = "png"
	}
	return c.generate(ctx, genai.Text(prompt), genai.ImageData(format, image))
}

func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := extractText(resp)
	if text == "" {
		return "", errors.New("empty response from model")
	}
	c.logger.Debug().
		Dur("elapsed", time.Since(start)).
		Int("response_len", len(text)).
		Msg("generation complete")
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}
