package sheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/penwyp/go-dive-monitor/internal/util"
)

// Fetcher returns the raw CSV text of the dive log export
type Fetcher interface {
	FetchCSV(ctx context.Context) (string, error)
	Source() string
}

// Client downloads the CSV export of a published Google Sheet
type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time

	mu        sync.Mutex
	lastStamp int64
}

// ClientOption customizes a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock replaces the clock used for cache-busting stamps
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a sheet client for cfg. Requests carry no timeout of
// their own; cancel ctx to abandon one.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source describes where the data comes from
func (c *Client) Source() string {
	return c.cfg.Describe()
}

// nextStamp returns a strictly increasing epoch-millisecond stamp so two
// fetches in the same millisecond still get distinct URLs
func (c *Client) nextStamp() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	stamp := c.now().UnixMilli()
	if stamp <= c.lastStamp {
		stamp = c.lastStamp + 1
	}
	c.lastStamp = stamp
	return stamp
}

// FetchCSV performs one GET of the export URL and returns the body text
func (c *Client) FetchCSV(ctx context.Context) (string, error) {
	exportURL, err := c.cfg.ExportURL(c.nextStamp())
	if err != nil {
		return "", err
	}

	util.LogDebug("Fetching dive log export", util.F("url", exportURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to fetch dive log export: %v", err))
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", &NotFoundError{Resource: c.cfg.SheetID}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", &AccessDeniedError{Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		util.LogDebug(fmt.Sprintf("Unexpected HTTP status code: %d", resp.StatusCode))
		return "", &HTTPError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if looksLikeHTML(body) {
		return "", &AccessDeniedError{Status: resp.StatusCode, HTMLPayload: true}
	}

	util.LogDebug("Downloaded dive log export", util.F("bytes", len(body)))
	return string(body), nil
}

// looksLikeHTML reports whether body is a web page. A private sheet
// redirects to a sign-in page that is served with status 200.
func looksLikeHTML(body []byte) bool {
	head := bytes.TrimLeft(body, " \t\r\n\ufeff")
	if len(head) > 64 {
		head = head[:64]
	}
	head = bytes.ToLower(head)
	return bytes.HasPrefix(head, []byte("<!doctype")) || bytes.HasPrefix(head, []byte("<html"))
}
