// Package ollama implements the model backend on a local Ollama instance.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"resilienceplanner"
)

const (
	DefaultEndpoint = "http://localhost:11434"
	DefaultModelID  = "llama3.1"
)

type Client struct {
	endpoint   string
	model      string
	httpClient resilienceplanner.HTTPClient
}

func NewClient(endpoint, model string, httpClient resilienceplanner.HTTPClient) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModelID
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

type wireRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type wireResponse struct {
	Response string `json:"response"`
}

// Generate sends one prompt to the Ollama generate API (non-streaming) and
// returns the model's text response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "backend", "ollama", "model", c.model, "prompt_len", len(prompt))

	reqBytes, err := json.Marshal(wireRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("LLM_CLIENT: %s: %s", resp.Status, string(body))
	}

	var wr wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	out := strings.TrimSpace(wr.Response)
	slog.Info("LLM_CLIENT: Response received", "backend", "ollama", "response_len", len(out))
	return out, nil
}
