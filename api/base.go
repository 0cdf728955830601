package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxErrorBody caps how much of a non-2xx body is kept on a StatusError
const maxErrorBody = 512

// Doer is the transport a Client issues requests through. *http.Client
// satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the blocking Esplora API client. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient Doer
	log        zerolog.Logger
}

// NewClient creates a client for baseURL with a transport built from opts
func NewClient(baseURL string, opts *Options) (*Client, error) {
	log := zerolog.Nop()
	if opts != nil && opts.Logger != nil {
		log = *opts.Logger
	}

	httpClient, err := newHTTPClient(opts, log)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    normalizeBaseURL(baseURL),
		httpClient: httpClient,
		log:        log,
	}, nil
}

// NewClientFromHTTP pairs baseURL with a transport the caller already
// configured. The transport is not inspected.
func NewClientFromHTTP(baseURL string, httpClient Doer) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(baseURL),
		httpClient: httpClient,
		log:        zerolog.Nop(),
	}
}

// BaseURL returns the endpoint every route is appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithLogger returns a copy of c that logs through log
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	cp := *c
	cp.log = log
	return &cp
}

// Async returns an AsyncClient sharing c's base URL and transport
func (c *Client) Async() *AsyncClient {
	return &AsyncClient{c: c}
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

// execute performs exactly one round trip for r and decodes the body
func execute[T any](ctx context.Context, c *Client, r request[T]) (T, error) {
	var zero T
	url := c.baseURL + r.path

	var body io.Reader
	if r.body != nil {
		body = strings.NewReader(*r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, url, body)
	if err != nil {
		return zero, transportError(r.op, url, fmt.Errorf("failed to create request: %w", err))
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "text/plain")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", r.method).Str("url", url).Err(err).Msg("request failed")
		return zero, transportError(r.op, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, transportError(r.op, url, fmt.Errorf("failed to read response: %w", err))
	}

	c.log.Debug().
		Str("method", r.method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(data)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return zero, transportError(r.op, url, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(snippet),
		})
	}

	v, err := r.decode(data)
	if err != nil {
		return zero, decodeError(r.op, url, err)
	}

	return v, nil
}
