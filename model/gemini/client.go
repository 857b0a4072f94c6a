// Package gemini implements the model backend on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

const DefaultModelID = "gemini-2.5-flash"

type Options struct {
	APIKey      string
	ModelID     string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

type Client struct {
	client *genai.Client
	opts   Options
}

// NewClient creates a Gemini-backed model client. A missing API key is a
// configuration error; callers treat it as fatal at startup.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required for the gemini backend")
	}
	if opts.ModelID == "" {
		opts.ModelID = DefaultModelID
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, opts: opts}, nil
}

// Generate sends one prompt and returns the model's text response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "backend", "gemini", "model", c.opts.ModelID, "prompt_len", len(prompt))

	var config *genai.GenerateContentConfig
	if c.opts.MaxTokens > 0 || c.opts.Temperature > 0 || c.opts.TopP > 0 {
		config = &genai.GenerateContentConfig{}
		if c.opts.MaxTokens > 0 {
			config.MaxOutputTokens = c.opts.MaxTokens
		}
		if c.opts.Temperature > 0 {
			config.Temperature = genai.Ptr(c.opts.Temperature)
		}
		if c.opts.TopP > 0 {
			config.TopP = genai.Ptr(c.opts.TopP)
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.opts.ModelID, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	slog.Info("LLM_CLIENT: Response received", "backend", "gemini", "response_len", len(text))
	return text, nil
}
