// Package apiclient is a Go client for the user service HTTP API. Auth is
// cookie-based: the client keeps accessToken/refreshToken cookies in a jar
// and transparently refreshes the session once when a request comes back 401.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// APIError carries the status code and message of a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL          string
	httpc            *http.Client
	log              zerolog.Logger
	onSessionExpired func()

	mu         sync.Mutex
	refreshing bool
	waiters    []chan error
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport. A cookie jar is still
// installed if the given client has none.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithSessionExpiredHandler registers a callback fired once per failed
// refresh, after all queued requests have been released.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: 30 * time.Second}
	}
	if c.httpc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.httpc.Jar = jar
	}
	return c, nil
}

// send performs a single request with no refresh handling. The login,
// register and refresh calls go through here directly: a 401 on those is
// final, retrying it could only loop.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: messageOf(data)}
	}
	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}

// do is the gated path used by authenticated calls. On a 401 it waits for a
// single shared refresh and replays the request exactly once; a second 401
// is returned as-is.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.send(ctx, method, path, body, out)
	var apiErr *APIError
	if err == nil || !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return err
	}
	if rerr := c.awaitRefresh(ctx); rerr != nil {
		return err
	}
	return c.send(ctx, method, path, body, out)
}

// awaitRefresh collapses concurrent 401s into one refresh call. The first
// caller becomes the leader and performs it; everyone else queues on a
// channel and receives the leader's outcome.
func (c *Client) awaitRefresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	err := c.send(ctx, http.MethodPost, "/auth/refresh", nil, nil)
	if err != nil {
		c.log.Debug().Err(err).Msg("session refresh failed")
	}

	c.mu.Lock()
	c.refreshing = false
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	if err != nil && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return err
}

func messageOf(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(data))
}
