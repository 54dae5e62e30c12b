// Package platform talks to the learning platform: the credential exchange
// endpoint and the GraphQL data endpoint.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/zoneprofile/pkg/logger"
)

// Client defaults.
const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
)

// HTTPClient wraps http.Client with a timeout and JSON helpers.
type HTTPClient struct {
	client *http.Client
	logger logger.Logger
}

// Option applies a configuration option to an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client, keeping its timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// newHTTPClient creates a client with defaults and options applied.
func newHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{client: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends req and returns the status code and a size-limited body.
func (c *HTTPClient) do(ctx context.Context, req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	if c.logger != nil {
		c.logger.Debug(ctx, "platform request",
			logger.String("method", req.Method),
			logger.String("url", req.URL.Redacted()),
			logger.Int("status", resp.StatusCode),
			logger.Duration("took", time.Since(start)),
		)
	}
	return resp.StatusCode, body, nil
}

// postJSON marshals body and posts it to url with the given headers.
func (c *HTTPClient) postJSON(ctx context.Context, url string, body any, headers map[string]string) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(ctx, req)
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
