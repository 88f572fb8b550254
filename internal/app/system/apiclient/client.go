// internal/app/system/apiclient/client.go
//
// Package apiclient is the shared HTTP/JSON transport for the users,
// projects and tasks backends. Calls carry the signed-in user's access
// token as a bearer credential and a request ID so one dashboard load can be
// correlated across services.
package apiclient

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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// maxBody caps how much of a response we are willing to read.
	maxBody = 1 << 20
	// maxErrBody is how much of an error body is kept on StatusError.
	maxErrBody = 512

	// RequestIDHeader is forwarded to every backend.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to one backend service.
type Client struct {
	name    string
	baseURL string
	base    http.RoundTripper
	timeout time.Duration
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport overrides the underlying round tripper (tests use this).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// WithTimeout sets the per-call timeout. Zero means rely on the context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger attaches a logger for debug tracing of calls.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client for the named service rooted at baseURL.
// An empty baseURL yields a client whose every call fails with ErrUnavailable.
func New(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		base:    http.DefaultTransport,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Name returns the service name used in errors and logs.
func (c *Client) Name() string { return c.name }

// Configured reports whether the client has a base URL.
func (c *Client) Configured() bool { return c.baseURL != "" }

// GetJSON issues GET path and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, token, path string, out any) error {
	return c.do(ctx, http.MethodGet, token, path, nil, out)
}

// PostJSON issues POST path with in encoded as JSON and decodes into out.
func (c *Client) PostJSON(ctx context.Context, token, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", c.name, err)
	}
	return c.do(ctx, http.MethodPost, token, path, body, out)
}

// GetList issues GET path and decodes a JSON list of T. Both a bare array
// and an envelope of the form {"data": [...]} are accepted; an object
// without a "data" key is an error.
func GetList[T any](ctx context.Context, c *Client, token, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.GetJSON(ctx, token, path, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw)
	if err != nil {
		return nil, fmt.Errorf("%s GET %s: %w", c.name, path, err)
	}
	return items, nil
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}
	// A present "data": null keeps its literal; a missing key leaves Data nil.
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	if env.Data == nil {
		return nil, ErrNoListData
	}
	data := bytes.TrimSpace(env.Data)
	if bytes.Equal(data, []byte("null")) {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, token, path string, body []byte, out any) error {
	if !c.Configured() {
		return fmt.Errorf("%s: %w", c.name, ErrUnavailable)
	}

	target, err := c.resolve(path)
	if err != nil {
		return err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, RequestIDFrom(ctx))

	start := time.Now()
	resp, err := c.httpClient(token).Do(req)
	if err != nil {
		return fmt.Errorf("%s %s %s: %w", c.name, method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend call",
		zap.String("service", c.name),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return &StatusError{
			Service: c.name,
			Method:  method,
			Path:    path,
			Code:    resp.StatusCode,
			Body:    string(snippet),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("%s %s %s: decode response: %w", c.name, method, path, err)
	}
	return nil
}

func (c *Client) resolve(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if _, err := url.Parse(target); err != nil {
		return "", fmt.Errorf("%s: bad url %q: %w", c.name, target, err)
	}
	return target, nil
}

// httpClient returns a client that attaches token as a bearer credential.
// With no token the base transport is used unchanged.
func (c *Client) httpClient(token string) *http.Client {
	if token == "" {
		return &http.Client{Transport: c.base}
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &http.Client{Transport: &oauth2.Transport{Source: src, Base: c.base}}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request IDs                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey struct{}

// WithRequestID returns a context that forwards id to every backend call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFrom returns the request ID in ctx, or a fresh UUID.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
