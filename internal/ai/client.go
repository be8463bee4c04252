// Package ai calls the generative backend that powers task suggestions.
// The core only depends on the request/response shapes here; any backend
// speaking this small JSON contract works.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/taskwise-ai/taskwise/internal/clierr"
)

const (
	defaultTimeout = 60 * time.Second
	maxRetries     = 3
	initialDelay   = 1 * time.Second
	maxBodyBytes   = 10 << 20 // generated images arrive as data URIs
)

// Client is an HTTP client for the suggestion backend.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a Client for the given backend. An empty apiKey is allowed;
// self-hosted backends may not require one.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// apiError is the backend's recoverable failure envelope.
type apiError struct {
	Error string `json:"error"`
}

// post sends a JSON request and decodes the response into out. Transient
// failures (network errors, 5xx, 429) are retried with exponential backoff.
// All failures come back as AI_UNAVAILABLE errors: the caller surfaces them
// as a notice and carries on, never touching task state.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if c.baseURL == "" {
		return clierr.New(clierr.AIDisabled,
			"no AI backend configured (set ai.base_url in config.yml)")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * initialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		done, err := c.roundTrip(ctx, path, body, out)
		if done {
			return err
		}
		lastErr = err
	}

	return clierr.Newf(clierr.AIUnavailable, "AI backend unavailable: %v", lastErr)
}

// roundTrip performs one attempt. done=false means the failure is transient
// and worth retrying.
func (c *Client) roundTrip(ctx context.Context, path string, body []byte, out any) (done bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return true, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return false, fmt.Errorf("backend returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return true, clierr.Newf(clierr.AIUnavailable, "AI backend error: %s", apiErr.Error)
		}
		return true, clierr.Newf(clierr.AIUnavailable, "AI backend returned %d", resp.StatusCode)
	}

	// A 200 can still carry the {error} envelope; treat it as recoverable.
	var apiErr apiError
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
		return true, clierr.Newf(clierr.AIUnavailable, "AI backend error: %s", apiErr.Error)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("decoding response: %w", err)
	}
	return true, nil
}
