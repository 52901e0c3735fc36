package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/courselight/courselight/internal/cachestore"
	"github.com/courselight/courselight/internal/logging"
	"github.com/courselight/courselight/internal/reporting"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues HTTP calls for resource operations and records their
// cache effects in the shared store. One client serves every resource of
// one upstream API.
type Client struct {
	store      *cachestore.Store
	baseURL    string
	httpClient HTTPClient

	// maxRetries counts extra attempts beyond the first, spent only on
	// transport errors and 5xx responses. 4xx is terminal.
	maxRetries     int
	initialBackoff time.Duration
	afterFunc      func(time.Duration) <-chan time.Time
}

type ClientOption func(*Client)

func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
	}
}

func WithInitialBackoff(backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.initialBackoff = backoff
	}
}

// WithAfterFunc overrides the backoff timer so tests control time.
func WithAfterFunc(afterFunc func(time.Duration) <-chan time.Time) ClientOption {
	return func(c *Client) {
		c.afterFunc = afterFunc
	}
}

func NewClient(store *cachestore.Store, baseURL string, httpClient HTTPClient, options ...ClientOption) *Client {
	client := &Client{
		store:          store,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     httpClient,
		maxRetries:     2,
		initialBackoff: 250 * time.Millisecond,
		afterFunc:      time.After,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

func (c *Client) Store() *cachestore.Store {
	return c.store
}

// Resource declares one backend collection by name and base path, e.g.
// ("enrollment", "/enrollment").
type Resource struct {
	client   *Client
	name     string
	basePath string
}

func (c *Client) Resource(name string, basePath string) *Resource {
	return &Resource{
		client:   c,
		name:     name,
		basePath: "/" + strings.Trim(basePath, "/"),
	}
}

func (r *Resource) Name() string {
	return r.name
}

func (r *Resource) url(path string) string {
	return r.client.baseURL + r.basePath + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) do(ctx context.Context, method string, url string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	backoff := c.initialBackoff
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-c.afterFunc(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}

		data, err := c.doOnce(ctx, method, url, payload)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !errorIsRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method string, url string, payload []byte) ([]byte, error) {
	logger := logging.FromContext(ctx)

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		reporting.Report(ctx, err, map[string]string{"url": url})
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range sessionCookiesFromContext(ctx) {
		req.AddCookie(cookie)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	logger.InfoContext(ctx, "upstream request completed",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, data)
	}

	return data, nil
}
