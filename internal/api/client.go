// Package api is the typed HTTP client for the pacts backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/logger"
	"github.com/julianstephens/pact/internal/session"
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	newID      func() string
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRequestIDs overrides how X-Request-Id values are generated.
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("api url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api url %q must include scheme and host", baseURL)
	}
	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: constants.DefaultTimeout},
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ErrInvalidID is returned before any request is made when an id cannot be a
// single path segment.
var ErrInvalidID = errors.New("invalid id")

// resourcePath joins prefix and a caller-supplied id. The id must stay one
// segment: empty, "." and ".." are refused, as is anything containing "/".
func resourcePath(prefix, id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return prefix + "/" + id, nil
}

func (c *Client) get(ctx context.Context, id session.Identity, endpoint string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, id, http.MethodGet, endpoint, query, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, id session.Identity, endpoint string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := c.newRequest(ctx, id, http.MethodPost, endpoint, nil, bytes.NewReader(raw), "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, id session.Identity, method, endpoint string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	// endpoint is unescaped; URL.String escapes it once.
	resolved := *c.baseURL
	resolved.RawPath = ""
	resolved.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + strings.TrimPrefix(endpoint, "/")
	if len(query) > 0 {
		resolved.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, resolved.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.RequestIDHeader, c.newID())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if id != nil && id.UserID() != "" {
		req.Header.Set(constants.UserIDHeader, id.UserID())
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	requestID := req.Header.Get(constants.RequestIDHeader)
	fail := func(kind Kind, status int, msg string, err error) error {
		e := &Error{
			Kind:      kind,
			Method:    req.Method,
			Path:      req.URL.Path,
			Status:    status,
			Message:   msg,
			RequestID: requestID,
			Err:       err,
		}
		logger.Warn("api request failed", "method", req.Method, "path", req.URL.Path, "request_id", requestID, "kind", kind, "status", status, "error", e)
		return e
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(KindTransport, 0, "", err)
	}
	defer resp.Body.Close()

	logger.Debug("api request", "method", req.Method, "path", req.URL.Path, "request_id", requestID, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fail(KindStatus, resp.StatusCode, parseErrorMessage(data), nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(KindDecode, resp.StatusCode, "", err)
	}
	return nil
}

// Ping checks that the backend answers HTTP at all. Any response, even an
// error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, nil, http.MethodGet, "/", nil, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Method: req.Method, Path: req.URL.Path, Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}
