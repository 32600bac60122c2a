// Package client talks to the LifeUp Cloud HTTP gateway running on the device.
// Commands are posted one at a time; reads are plain GETs. Every failure comes
// back as an *apierr.Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lifeupmcp/internal/apierr"
	"lifeupmcp/internal/logging"
)

// maxErrorBody bounds how much of an unparseable response is kept for logs.
const maxErrorBody = 512

// Client is a LifeUp Cloud client. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	baseURL          string
	token            string
	client           *http.Client
	maxParallelReads int

	// slowCall is how long a command may take before it is logged as a warning.
	slowCall time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithMaxParallelReads bounds the read fan-out of AllAchievements.
func WithMaxParallelReads(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxParallelReads = n
		}
	}
}

// WithSlowCallThreshold overrides the duration after which a command is logged
// as slow. It defaults to half the request timeout.
func WithSlowCallThreshold(d time.Duration) Option {
	return func(c *Client) { c.slowCall = d }
}

// New creates a client for the gateway at baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		maxParallelReads: 4,
		slowCall:         timeout / 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the gateway root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the response body shape shared by every endpoint.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// commandRequest is the body of POST /api.
type commandRequest struct {
	URLs []string `json:"urls"`
}

// Execute posts one lifeup:// command and returns the response data.
func (c *Client) Execute(ctx context.Context, command string) (json.RawMessage, error) {
	body, err := json.Marshal(commandRequest{URLs: []string{command}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}
	timer := logging.StartTimer(logging.CategoryTransport, "POST /api")
	defer func() {
		if c.slowCall > 0 {
			timer.StopWithThreshold(c.slowCall)
		} else {
			timer.Stop()
		}
	}()
	logging.TransportDebug("executing %s", command)
	return c.do(ctx, http.MethodPost, "/api", body)
}

// get fetches path and decodes the envelope data into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierr.New(apierr.CodeAPI, true, "GET %s: failed to decode data: %v", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		classified := apierr.ClassifyTransport(err)
		logging.TransportWarn("%s %s failed: %s", method, path, classified.Code)
		return nil, classified
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.ClassifyTransport(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if classified := apierr.ClassifyResponse(resp.StatusCode, apierr.SuccessCode, truncate(raw)); classified != nil {
			return nil, classified
		}
		return nil, apierr.New(apierr.CodeAPI, true, "%s %s: malformed response: %v", method, path, err)
	}

	if classified := apierr.ClassifyResponse(resp.StatusCode, env.Code, env.Message); classified != nil {
		logging.TransportWarn("%s %s rejected: %s", method, path, classified.Code)
		return nil, classified
	}
	return env.Data, nil
}

func truncate(raw []byte) string {
	if len(raw) > maxErrorBody {
		return string(raw[:maxErrorBody]) + "..."
	}
	return string(raw)
}
