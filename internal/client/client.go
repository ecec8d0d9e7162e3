// ABOUTME: HTTP client for the IGV admin REST API
// ABOUTME: One attempt per call, envelope unwrapping and error classification for every resource

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer token attached to requests; "" sends none
type TokenSource interface {
	Token() string
}

// Client is the API client for the IGV backend. Categories, products,
// product images and users live under the API URL; orders under the API root.
type Client struct {
	apiURL     string
	apiRoot    string
	httpClient *http.Client
	tokens     TokenSource

	Categories    *CategoryService
	Products      *ProductService
	ProductImages *ProductImageService
	Orders        *OrderService
	Users         *UserService
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithTokenSource attaches "Authorization: Bearer" from ts to every request
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a new API client. apiRoot may be empty, in which case orders
// are served from apiURL as well.
func New(apiURL, apiRoot string, opts ...Option) *Client {
	if apiRoot == "" {
		apiRoot = apiURL
	}
	c := &Client{
		apiURL:  strings.TrimRight(apiURL, "/"),
		apiRoot: strings.TrimRight(apiRoot, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Categories = &CategoryService{c: c}
	c.Products = &ProductService{c: c}
	c.ProductImages = &ProductImageService{c: c}
	c.Orders = &OrderService{c: c}
	c.Users = &UserService{c: c}
	return c
}

// APIURL returns the base URL of the /api resources
func (c *Client) APIURL() string {
	return c.apiURL
}

// endpoint joins base, path and the non-empty query
func endpoint(base, path string, query url.Values) string {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// send issues exactly one request. It returns the response for any HTTP
// status; only transport-level failures come back as errors.
func (c *Client) send(ctx context.Context, op, method, rawURL string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, op, err)
	}

	slog.Debug("API request",
		"op", op,
		"method", method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// handleRequestError converts context and network errors to a RequestError
func (c *Client) handleRequestError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &RequestError{Op: op, Kind: KindCanceled, Err: err}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &RequestError{Op: op, Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &RequestError{Op: op, Kind: KindTimeout, Err: err}
	}
	return &RequestError{
		Op:   op,
		Kind: KindTransport,
		Err:  fmt.Errorf("cannot connect to backend at %s: %w", c.apiURL, err),
	}
}

// errorBody covers the error shapes the backend produces: message may be a
// string or a list of validation messages.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

// handleErrorResponse builds a KindStatus error from a non-2xx response
func handleErrorResponse(op string, resp *http.Response) error {
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	reqErr := &RequestError{
		Op:         op,
		Kind:       KindStatus,
		StatusCode: resp.StatusCode,
		Status:     status,
	}

	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err == nil {
		reqErr.Detail = body.detail()
	}
	return reqErr
}

func (b errorBody) detail() string {
	if len(b.Message) > 0 {
		var msg string
		if err := json.Unmarshal(b.Message, &msg); err == nil && msg != "" {
			return msg
		}
		var msgs []string
		if err := json.Unmarshal(b.Message, &msgs); err == nil && len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return b.Error
}

func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// decodeEnvelope unwraps {succeed, data} from a successful response
func decodeEnvelope[T any](op string, resp *http.Response) (T, error) {
	var env Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		var zero T
		return zero, &RequestError{Op: op, Kind: KindDecode, Err: err}
	}
	return env.Data, nil
}

// call performs one request and returns the unwrapped envelope data
func call[T any](ctx context.Context, c *Client, op, method, rawURL string, body any) (T, error) {
	var zero T

	resp, err := c.send(ctx, op, method, rawURL, body)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return zero, handleErrorResponse(op, resp)
	}
	return decodeEnvelope[T](op, resp)
}

// listPage fetches a paged collection; a null data or items field reads as empty
func listPage[T any](ctx context.Context, c *Client, op, rawURL string) (*Page[T], error) {
	p, err := call[*Page[T]](ctx, c, op, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return SinglePage[T](nil), nil
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	return p, nil
}
