// Package services is the client for the JetStay booking API: bearer token
// handling, error classification, GraphQL search and one method per endpoint.
package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/omarzydan610/JetStay-sub001/cache"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// Envelope is the API's success wrapper.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// ─── Client ───────────────────────────────────────────────────────────────────

type Client struct {
	baseURL    string
	tokens     TokenStore
	httpClient *http.Client
	cache      *cache.Loader
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout on a copy of the current HTTP client, so a
// client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithCache caches reference data (countries, airports, ticket types and the
// admin hotel and airline lists).
func WithCache(l *cache.Loader) Option {
	return func(c *Client) { c.cache = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient talks to the API at baseURL. A nil store keeps the token in
// memory.
func NewClient(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore("")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// ForToken returns a client that shares c's transport, cache and logger but
// authenticates with token. The gateway uses one per incoming request.
func (c *Client) ForToken(token string) *Client {
	clone := *c
	clone.tokens = NewMemoryTokenStore(token)
	return &clone
}

// ─── Session ──────────────────────────────────────────────────────────────────

func (c *Client) Token() string {
	token, err := c.tokens.Load()
	if err != nil {
		c.logger.Warn("⚠️  could not load token", "error", err)
		return ""
	}
	return token
}

func (c *Client) SetToken(token string) error { return c.tokens.Save(token) }

func (c *Client) Logout() error { return c.tokens.Clear() }

// IsAuthenticated reports whether a token is stored and has not expired.
func (c *Client) IsAuthenticated() bool {
	token := c.Token()
	return token != "" && !IsTokenExpired(token, c.now())
}

// Session decodes the stored token. It fails with UNAUTHORIZED when there is
// no usable token.
func (c *Client) Session() (*TokenClaims, error) {
	token := c.Token()
	if token == "" || IsTokenExpired(token, c.now()) {
		return nil, &APIError{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: "Not logged in"}
	}
	return ParseClaims(token)
}

func (c *Client) clearToken() {
	if err := c.tokens.Clear(); err != nil {
		c.logger.Warn("⚠️  could not clear token", "error", err)
	}
}

// ─── Requests ─────────────────────────────────────────────────────────────────

type request struct {
	method string
	path   string
	query  url.Values
	header http.Header
	// body is sent as JSON unless raw is set
	body        any
	raw         io.Reader
	contentType string
	// whole decodes the success body as-is instead of unwrapping data
	whole bool
}

// do sends r and decodes a success body into out. Every failure is an
// *APIError.
func (c *Client) do(ctx context.Context, r request, out any) error {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	contentType := r.contentType
	switch {
	case r.raw != nil:
		body = r.raw
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return &APIError{Code: CodeUnknown, Message: err.Error(), Err: err}
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", r.method, "path", r.path, "error", err)
		return &APIError{Code: CodeNetwork, Message: networkMessage, Path: r.path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Code: CodeNetwork, Message: networkMessage, Path: r.path, Err: err}
	}
	c.logger.Debug("api request", "method", r.method, "path", r.path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		apiErr := classify(resp.StatusCode, eb)
		if apiErr.Path == "" {
			apiErr.Path = r.path
		}
		if apiErr.Code == CodeUnauthorized || apiErr.Code == CodeForbidden {
			c.clearToken()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if r.whole {
		err = decodeWhole(respBody, out)
	} else {
		err = unwrap(respBody, out)
	}
	if err != nil {
		return &APIError{Code: CodeUnknown, Status: resp.StatusCode, Path: r.path,
			Message: fmt.Sprintf("could not decode response: %v", err), Err: err}
	}
	return nil
}

// unwrap decodes the data field of an envelope, or the whole body when it
// is not one. A null data field leaves out untouched.
func unwrap(body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if body[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(body, &env); err == nil {
			if data, ok := env["data"]; ok {
				body = data
			}
		}
	}
	if bytes.Equal(body, []byte("null")) {
		return nil
	}
	return json.Unmarshal(body, out)
}

// decodeWhole decodes the body as-is. An Envelope target also accepts
// non-envelope bodies, which become its data.
func decodeWhole(body []byte, out any) error {
	env, ok := out.(*Envelope)
	if !ok {
		return json.Unmarshal(body, out)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		env.Success = true
		return nil
	}
	if body[0] == '{' {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(body, &keys); err == nil {
			_, hasData := keys["data"]
			_, hasSuccess := keys["success"]
			if hasData || hasSuccess {
				return json.Unmarshal(body, env)
			}
		}
	}
	env.Success = true
	env.Data = append(json.RawMessage(nil), body...)
	return nil
}

func fetch[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out T
	err := c.do(ctx, request{method: method, path: path, query: query, body: body}, &out)
	return out, err
}

// send is for mutations whose message matters more than their data.
func send(ctx context.Context, c *Client, method, path string, query url.Values, body any) (*Envelope, error) {
	env := &Envelope{}
	if err := c.do(ctx, request{method: method, path: path, query: query, body: body, whole: true}, env); err != nil {
		return nil, err
	}
	return env, nil
}

// cached reads reference data through the client's cache, if any.
func cached[T any](ctx context.Context, c *Client, key string, load func(context.Context) (T, error)) (T, error) {
	v, hit, err := cache.Fetch(ctx, c.cache, key, load)
	if hit {
		c.logger.Debug("cache hit", "key", key)
	}
	return v, err
}

// tokenScope names the caller in cache keys without storing the token.
func (c *Client) tokenScope() string {
	token, _ := c.tokens.Load()
	if token == "" {
		return "anonymous"
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

func pageQuery(page, size int) url.Values {
	return url.Values{"page": {fmt.Sprint(page)}, "size": {fmt.Sprint(size)}}
}

// DecodeData decodes an envelope's data into out.
func (e *Envelope) DecodeData(out any) error {
	if len(e.Data) == 0 || bytes.Equal(e.Data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}
