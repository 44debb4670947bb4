// ABOUTME: HTTP client for the Meu Secretário API
// ABOUTME: Wraps API calls with the error taxonomy used by the CLI and TUI

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request unless overridden
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 10 << 20

// Client is the API client for the Meu Secretário backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTransport sets the round tripper, normally the authz pipeline
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a new API client. baseURL includes the route prefix,
// e.g. http://localhost:5000/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the URL requests are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends a JSON request and decodes a 2xx body into out.
// Non-2xx responses and transport failures come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return handleRequestError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return handleErrorResponse(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Kind: KindDecode, Status: resp.StatusCode, Message: MsgDecode, Err: err}
	}
	return nil
}

// envelope is the standard {status, data, message} response wrapper
type envelope[T any] struct {
	Status  string `json:"status"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e envelope[T]) ok() bool {
	return e.Status == "success"
}

// fetch performs a request whose response is a standard envelope and
// returns its data. A failed envelope or missing data is a Rejected error.
func fetch[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, fallback string) (*T, error) {
	var env envelope[T]
	if err := c.do(ctx, method, path, query, body, &env); err != nil {
		return nil, err
	}
	if !env.ok() || env.Data == nil {
		return nil, rejected(env.Message, fallback)
	}
	return env.Data, nil
}

// exec performs a request whose envelope carries no data
func exec(ctx context.Context, c *Client, method, path string, body any, fallback string) error {
	var env envelope[struct{}]
	if err := c.do(ctx, method, path, nil, body, &env); err != nil {
		return err
	}
	if !env.ok() {
		return rejected(env.Message, fallback)
	}
	return nil
}
