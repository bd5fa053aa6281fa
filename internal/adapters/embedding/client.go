// Package embedding provides an HTTP client for a hosted sentence-embedding
// inference endpoint.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/duet/pkg/logger"
	"github.com/okian/duet/pkg/metrics"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 2
	defaultBackoff    = 300 * time.Millisecond

	// Responses larger than this are rejected as malformed.
	maxResponseBytes = 4 << 20
)

// Client calls a sentence-embedding inference endpoint over HTTP. The wire
// format follows the common hosted-inference convention: POST a JSON body
// {"inputs": <text>} and receive either a flat vector or a batch of one.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger
}

// NewClient creates an embedding client for the given endpoint URL.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		logger:     logger.Get().Named("embedding"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type embedRequest struct {
	Inputs string `json:"inputs"`
}

// Embed returns the embedding vector for the given text. Transient failures
// (network errors, 5xx, 429) are retried with a fixed backoff; other HTTP
// errors fail immediately.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	start := time.Now()
	metrics.RecordEmbeddingRequest()
	defer func() {
		metrics.RecordEmbeddingLatency(float64(time.Since(start).Milliseconds()))
	}()

	body, err := json.Marshal(embedRequest{Inputs: text})
	if err != nil {
		metrics.RecordEmbeddingError()
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				metrics.RecordEmbeddingError()
				return nil, ctx.Err()
			}
		}

		vec, retryable, err := c.doRequest(ctx, body)
		if err == nil {
			return vec, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.logger.Warn(ctx, "embedding request retrying",
			logger.Int("attempt", attempt+1),
			logger.Error(err))
	}

	metrics.RecordEmbeddingError()
	return nil, lastErr
}

// doRequest performs one HTTP round trip. The second return value reports
// whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, body []byte) ([]float64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, true, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		vec, err := decodeVector(data)
		if err != nil {
			return nil, false, err
		}
		return vec, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
}

// decodeVector accepts either a flat vector ([0.1, ...]) or a batch with a
// single row ([[0.1, ...]]), which hosted inference endpoints return for
// single-input requests.
func decodeVector(data []byte) ([]float64, error) {
	var flat []float64
	if err := json.Unmarshal(data, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	var batch [][]float64
	if err := json.Unmarshal(data, &batch); err == nil && len(batch) > 0 && len(batch[0]) > 0 {
		return batch[0], nil
	}

	return nil, ErrMalformedResponse
}
