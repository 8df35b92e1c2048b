// Package cart provides the JSON-over-HTTP cart service client.
package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/reglet-dev/stitch/internal/application/dto"
	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/version"
)

// Ensure interface compliance
var _ ports.CartService = (*Client)(nil)

const (
	addPath    = "/cart/add.js"
	changePath = "/cart/change.js"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 1 << 20

	// DefaultTimeout applies when no timeout is configured.
	DefaultTimeout = 10 * time.Second
)

// Client talks to a storefront cart endpoint.
// Both a non-2xx response and a 2xx body carrying an error status are
// reported as *apperrors.CartSubmissionError.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the cart at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid cart base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid cart base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Add appends items to the cart.
func (c *Client) Add(ctx context.Context, req dto.AddRequest) (*dto.CartSnapshot, error) {
	return c.post(ctx, "add", addPath, req)
}

// Change rewrites the properties of an existing line.
func (c *Client) Change(ctx context.Context, req dto.ChangeRequest) (*dto.CartSnapshot, error) {
	return c.post(ctx, "change", changePath, req)
}

func (c *Client) post(ctx context.Context, op, path string, payload any) (*dto.CartSnapshot, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewCartSubmissionError(op, 0, "", fmt.Errorf("failed to encode request: %w", err))
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewCartSubmissionError(op, 0, "", fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "cart request failed", "op", op, "url", endpoint, "error", err)
		return nil, apperrors.NewCartSubmissionError(op, 0, "", err)
	}
	defer func() {
		_ = resp.Body.Close() // Best-effort cleanup
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.NewCartSubmissionError(op, resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.DebugContext(ctx, "cart request complete",
		"op", op,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	var snap dto.CartSnapshot
	decodeErr := json.Unmarshal(data, &snap)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		desc := http.StatusText(resp.StatusCode)
		if decodeErr == nil {
			desc = firstNonEmpty(snap.Description, snap.Message, desc)
		}
		return nil, apperrors.NewCartSubmissionError(op, resp.StatusCode, desc, nil)
	}

	if decodeErr != nil {
		return nil, apperrors.NewCartSubmissionError(op, resp.StatusCode, "", fmt.Errorf("failed to decode response: %w", decodeErr))
	}
	if snap.IsError() {
		return nil, apperrors.NewCartSubmissionError(op, snap.Status, firstNonEmpty(snap.Description, snap.Message), nil)
	}
	return &snap, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
