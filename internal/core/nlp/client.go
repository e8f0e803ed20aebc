package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yurist-tools/lawsplit/internal/core"
)

// Client talks to the external linguistic sidecar that wraps the Russian
// language model (sentence boundaries, lemmas, token classes).
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ core.Linguist = (*Client)(nil)

// NewClient creates a reusable HTTP client. Inference on long documents
// is slow, hence the generous timeout.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 120 * time.Second},
	}
}

// Ready pings the sidecar health endpoint.
func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("nlp health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nlp health: unexpected status %s", resp.Status)
	}
	return nil
}

// SplitSentences asks the model for sentence boundaries of text.
func (c *Client) SplitSentences(ctx context.Context, text string) ([]string, error) {
	payload := map[string]any{"text": text}

	var resp struct {
		Sentences []string `json:"sentences"`
	}
	if err := c.post(ctx, "/segment", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Sentences, nil
}

// ClassifyTokens tokenizes text and returns per-token lemma and class flags.
func (c *Client) ClassifyTokens(ctx context.Context, text string) ([]core.Token, error) {
	payload := map[string]any{"text": text}

	var resp struct {
		Tokens []core.Token `json:"tokens"`
	}
	if err := c.post(ctx, "/classify", payload, &resp); err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
