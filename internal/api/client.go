// Package api wraps the EHPAD Academy HTTP API. Endpoints are grouped by
// resource (auth, users, quiz, activities, budget, config) the way the
// server lays them out under /api. The client attaches a bearer token to
// every request when one is available; without a token calls simply go out
// unauthenticated.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every request. The server enforces nothing; a hung
// connection would otherwise block the UI's loading state forever.
const DefaultTimeout = 10 * time.Second

// TokenSource returns the current bearer token, or "" when logged out.
// It is consulted per request so a login mid-session takes effect
// immediately.
type TokenSource func() string

// Client talks to the remote API. All methods are safe for use from a single
// goroutine; the client itself holds no mutable state beyond the underlying
// http.Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     *zap.Logger
}

// Config holds client construction options.
type Config struct {
	// BaseURL is the server root, without the /api suffix.
	BaseURL string
	Timeout time.Duration
	Token   TokenSource
	Logger  *zap.Logger
}

// New creates a client for the given server base URL.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Token == nil {
		cfg.Token = func() string { return "" }
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/api",
		httpClient: &http.Client{Timeout: cfg.Timeout},
		token:      cfg.Token,
		logger:     cfg.Logger,
	}
}

// BaseURL returns the server root including the /api prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Error is a non-success response from the server. Detail carries the
// server's own message when the body was a JSON {"detail": ...} object,
// otherwise a truncated copy of the raw body.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// IsAuthError reports whether err is a 401/403 from the server.
func IsAuthError(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). Query parameters are passed via q; body is JSON-encoded when
// non-nil. A non-2xx status or a non-JSON success body yields *Error.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &Error{Status: resp.StatusCode, Detail: errorDetail(raw)}
	}

	if out == nil {
		return nil
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		return &Error{Status: resp.StatusCode, Detail: "réponse invalide : " + truncate(string(raw), 100)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// errorDetail pulls the server's {"detail": ...} message out of an error
// body, falling back to the raw text.
func errorDetail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return truncate(strings.TrimSpace(string(raw)), 200)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
