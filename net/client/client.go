package client

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

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/logging/logger"
	"github.com/ncobase/blogclient/net/resp"
	"github.com/ncobase/blogclient/tracing"
	"github.com/sony/gobreaker"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 10 << 20

// TokenSource yields the bearer token for the next request. An empty
// token means anonymous; errors are treated as anonymous too.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Doer is the subset of *http.Client the wrapper needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client builds authorized JSON requests against the blog API.
type Client struct {
	baseURL *url.URL
	http    Doer
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker
	agent   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. The default client has no timeout;
// callers bound requests with their context.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.agent = ua }
}

// WithBreaker wraps API calls in a circuit breaker.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		agent:   "blogclient",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithTokens returns a copy of c that takes bearer tokens from ts. The
// copy shares the transport and the breaker.
func (c *Client) WithTokens(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Request(ctx, http.MethodGet, withQuery(path, query), nil, out)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Request(ctx, http.MethodDelete, path, nil, out)
}

// Request sends one request and decodes the envelope payload into out.
// There is a single attempt per call.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	if c.breaker == nil {
		return c.do(ctx, method, path, body, out)
	}
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.do(ctx, method, path, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ecode.Network("api unavailable", err)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	ctx, traceID := tracing.EnsureTraceID(ctx)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &ecode.Error{Kind: ecode.KindValidation, Message: "invalid request body", Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return ecode.Network("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.agent)
	req.Header.Set(tracing.HeaderKey, traceID)
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		logger.Debugf(ctx, "%s %s failed after %s: %v", method, path, time.Since(start), err)
		return ecode.Network(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return ecode.Network("read response", err)
	}

	logger.Debugf(ctx, "%s %s -> %d in %s", method, path, res.StatusCode, time.Since(start))
	return resp.Decode(res.StatusCode, data, out)
}

// token fetches the current token; failures degrade to anonymous.
func (c *Client) token(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		logger.Debugf(ctx, "no bearer token: %v", err)
		return ""
	}
	return token
}

func (c *Client) resolve(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL.String() + path
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// PathEscape escapes one path segment.
func PathEscape(s string) string { return url.PathEscape(s) }

// tripping reports whether err should count against the breaker. API
// errors are answers, not outages.
func tripping(err error) bool {
	if err == nil {
		return false
	}
	var e *ecode.Error
	if !errors.As(err, &e) {
		return true
	}
	return e.Kind == ecode.KindNetwork || e.Status >= http.StatusInternalServerError
}
