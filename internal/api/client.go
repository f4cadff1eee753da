// Package api wraps the remote school-management REST API: the fee endpoints
// and the classroom directory. Pure request/response, no business logic; any
// failure means "no data", never partial data.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("api: server returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the school-management backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (e.g. to change the timeout
// or inject a test transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient creates a client for the backend at baseURL (no trailing slash).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one JSON round trip. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// download streams an opaque binary response body to w.
func (c *Client) download(ctx context.Context, method, path string, w io.Writer) error {
	resp, err := c.send(ctx, method, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("api: download: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	return resp, nil
}

// checkStatus converts a non-2xx response into an *Error, reading the JSON
// error envelope when the server sent one.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &Error{StatusCode: resp.StatusCode}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Error
		if apiErr.Message == "" {
			apiErr.Message = envelope.Message
		}
	}
	return apiErr
}
