// Package genai is the HTTP client for the external content-generation
// backend. Prompt templates and model behaviour live on the service
// side; this client only shapes requests and decodes responses.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

const defaultRequestTimeout = 25 * time.Second

// Config captures the settings for reaching the generation backend.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

type generateRequest struct {
	Model      string `json:"model"`
	Kind       string `json:"kind"`
	Language   string `json:"language"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

type generateResponse struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Generate asks the backend for a new artefact.
func (c *Client) Generate(ctx context.Context, req ports.GenerateRequest) (*ports.GeneratedContent, error) {
	payload, err := json.Marshal(generateRequest{
		Model:      c.model,
		Kind:       string(req.Kind),
		Language:   req.Language,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("encode generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation backend: unexpected status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}
	return &ports.GeneratedContent{Title: out.Title, Body: out.Body}, nil
}
