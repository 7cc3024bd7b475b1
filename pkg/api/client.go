package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/travelfare/travel-api-client/pkg/httpclient"
)

// Endpoint names, also used as the Endpoint field of RequestFailedError.
const (
	EndpointCountries = "countries"
	EndpointCities    = "cities"
	EndpointPrices    = "prices"
)

var endpointPaths = map[string]string{
	EndpointCountries: "/countries",
	EndpointCities:    "/cities",
	EndpointPrices:    "/prices/cheap",
}

// Config holds the remote service location.
type Config struct {
	URL string `json:"url" yaml:"url"`
}

// Client proxies the travel service endpoints. It holds no mutable state and
// is safe for concurrent use.
type Client struct {
	baseURL string
	http    httpclient.Client
	headers map[string]string
	log     Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(log Logger) Option {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// WithHeaders adds headers sent on every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// New validates cfg and builds a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: base,
		headers: map[string]string{"Accept": "application/json"},
		log:     noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(0)
	}
	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url is empty", ErrInvalidBaseURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q is not http or https", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: host is empty", ErrInvalidBaseURL)
	}
	// Endpoint paths are appended to the raw string, so anything after the
	// path would swallow them.
	if u.RawQuery != "" || u.ForceQuery {
		return "", fmt.Errorf("%w: query string is not allowed", ErrInvalidBaseURL)
	}
	if u.Fragment != "" || strings.Contains(raw, "#") {
		return "", fmt.Errorf("%w: fragment is not allowed", ErrInvalidBaseURL)
	}
	if u.User != nil {
		return "", fmt.Errorf("%w: userinfo is not allowed", ErrInvalidBaseURL)
	}
	return strings.TrimSuffix(raw, "/"), nil
}

// BaseURL returns the normalised base address.
func (c *Client) BaseURL() string { return c.baseURL }

// Countries fetches GET {url}/countries.
func (c *Client) Countries(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, EndpointCountries)
}

// Cities fetches GET {url}/cities.
func (c *Client) Cities(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, EndpointCities)
}

// Prices fetches GET {url}/prices/cheap.
func (c *Client) Prices(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, EndpointPrices)
}

// get issues a single request and returns the body untouched. Any transport
// error, non-2xx status or malformed JSON body becomes a RequestFailedError.
func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	target := c.baseURL + endpointPaths[endpoint]

	resp, err := c.http.Get(ctx, target, c.headers)
	if err != nil {
		return nil, c.fail(endpoint, target, 0, err)
	}

	body := resp.Body()
	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, c.fail(endpoint, target, status, fmt.Errorf("unexpected status, body: %s", responseSnippet(body)))
	}
	if !json.Valid(body) {
		return nil, c.fail(endpoint, target, status, errInvalidJSON)
	}

	c.log.DebugObj("api request completed", "request", map[string]any{
		"endpoint":   endpoint,
		"url":        target,
		"status":     status,
		"body_bytes": len(body),
	})
	return json.RawMessage(body), nil
}

func (c *Client) fail(endpoint, target string, status int, err error) error {
	rerr := &RequestFailedError{
		Endpoint:   endpoint,
		URL:        target,
		StatusCode: status,
		Err:        err,
	}
	c.log.ErrorObj("api request failed", "request", map[string]any{
		"endpoint": endpoint,
		"url":      target,
		"status":   status,
		"error":    err.Error(),
	})
	return rerr
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
