// Package devto is a small client for the dev.to public article listing API.
package devto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tinytelemetry/tabfeed/internal/model"
)

// maxBodyBytes bounds a listing response. The API returns 30 articles per page.
const maxBodyBytes = 8 << 20

// ErrLoadContent is wrapped by every error FetchArticles returns, whatever the
// underlying cause (transport, HTTP status, or decoding).
var ErrLoadContent = errors.New("devto: failed to load content")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code     int
	Endpoint string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.Endpoint)
}

// Client fetches article listings. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	policy     *bluemonday.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client with the shared defaults applied.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: model.DefaultRequestTimeout},
		userAgent:  model.DefaultUserAgent,
		policy:     bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchArticles performs one GET against endpoint and decodes the JSON array.
func (c *Client) FetchArticles(ctx context.Context, endpoint string) ([]model.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrLoadContent, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadContent, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, fmt.Errorf("%w: %w", ErrLoadContent, &StatusError{Code: resp.StatusCode, Endpoint: endpoint})
	}

	var articles []model.Article
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(&articles); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrLoadContent, err)
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after JSON array")
		}
		return nil, fmt.Errorf("%w: decoding response: %w", ErrLoadContent, err)
	}

	for i := range articles {
		c.normalize(&articles[i])
	}
	return articles, nil
}

// normalize strips markup from free-text fields. Descriptions occasionally
// carry HTML entities or inline tags that would render verbatim in a terminal.
func (c *Client) normalize(a *model.Article) {
	a.Title = c.plainText(a.Title)
	a.Description = c.plainText(a.Description)
	a.User.Name = c.plainText(a.User.Name)
}

func (c *Client) plainText(s string) string {
	if s == "" {
		return s
	}
	s = c.policy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
