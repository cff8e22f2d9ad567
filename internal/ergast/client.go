package ergast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/bcdxn/f1next/internal/domain"
)

// DefaultURL is the Ergast-format endpoint describing the next race of the current season.
const DefaultURL = "https://api.jolpi.ca/ergast/f1/current/next.json"

// Fetcher retrieves the next race weekend.
type Fetcher interface {
	FetchNext(ctx context.Context, forceRefresh bool) (domain.Weekend, error)
}

// ResponseCache stores raw API responses keyed by request URL.
type ResponseCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte) error
	Clear() error
}

// New returns a new Ergast API Client.
func New(opts ...ClientOption) *Client {
	// create a default instance of the client
	c := &Client{
		url:        DefaultURL,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	// apply given options
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFetcher returns the fetcher matching the configuration: a fixture backed fetcher when
// testFile is set, otherwise an API client built with opts.
func NewFetcher(testFile string, opts ...ClientOption) Fetcher {
	if testFile != "" {
		return &FileFetcher{FilePath: testFile}
	}
	return New(opts...)
}

// Client fetches the next race weekend from the Ergast API, keeping the last good response in an
// optional cache.
type Client struct {
	url        string
	httpClient *http.Client
	cache      ResponseCache
	logger     *slog.Logger
}

/* Client Optional Functional Parameters
------------------------------------------------------------------------------------------------- */

type ClientOption = func(c *Client)

// WithURL configures the URL of the next race endpoint; primarily used for testing.
func WithURL(url string) ClientOption {
	return func(c *Client) { c.url = url }
}

// WithHTTPClient configures the HTTP client, e.g. to set a timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache configures the cache used to store API responses.
func WithCache(rc ResponseCache) ClientOption {
	return func(c *Client) { c.cache = rc }
}

// WithLogger configures the logger to use within the client.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

/* Client API
------------------------------------------------------------------------------------------------- */

// FetchNext returns the next race weekend. A cached response is used unless forceRefresh is set,
// in which case the cache is cleared first. When the download fails the cache is cleared as well
// and a *NetworkError is returned; there are no retries.
func (c *Client) FetchNext(ctx context.Context, forceRefresh bool) (domain.Weekend, error) {
	if forceRefresh {
		c.logger.Debug("clearing response cache")
		c.clearCache()
	}

	if c.cache != nil {
		if body, ok := c.cache.Get(c.url); ok {
			c.logger.Debug("using cached response", "url", c.url, "bytes", len(body))
			return ParseNext(body)
		}
	}

	body, err := c.download(ctx)
	if err != nil {
		c.logger.Error("error downloading next race", "url", c.url, "err", err)
		c.clearCache()
		return domain.Weekend{}, err
	}

	w, err := ParseNext(body)
	if err != nil {
		return domain.Weekend{}, err
	}
	if c.cache != nil {
		if err := c.cache.Set(c.url, body); err != nil {
			c.logger.Warn("error caching response", "err", err)
		}
	}
	return w, nil
}

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

// download issues the single GET request to the API and returns the body of a 2xx response.
func (c *Client) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating next race request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "f1next")

	c.logger.Debug("fetching next race", "url", c.url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Err: fmt.Errorf("ergast api returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Timeout: isTimeout(err), Err: err}
	}
	c.logger.Debug("downloaded next race", "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}

func (c *Client) clearCache() {
	if c.cache == nil {
		return
	}
	if err := c.cache.Clear(); err != nil {
		c.logger.Warn("error clearing response cache", "err", err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// FileFetcher reads the next race from a local JSON file in the API response format. Used for
// testing in place of the network.
type FileFetcher struct {
	FilePath string
}

func (f *FileFetcher) FetchNext(_ context.Context, _ bool) (domain.Weekend, error) {
	body, err := os.ReadFile(f.FilePath)
	if err != nil {
		return domain.Weekend{}, fmt.Errorf("failed to read race file %s: %w", f.FilePath, err)
	}
	return ParseNext(body)
}
