// Package snkrdunk talks to the SNKRDUNK storefront API. The API is
// undocumented; endpoints and response shapes drift between versions,
// which is why callers get back plain decoded JSON and run it through
// the extract package instead of binding to typed response structs.
package snkrdunk

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"

	"github.com/guarzo/snkrsearch/internal/cache"
)

const defaultBaseURL = "https://snkrdunk.com"

// Config holds client settings.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string

	// Requests per second against the API.
	RateLimit rate.Limit

	CacheEnabled bool
	CachePath    string
	CacheTTL     time.Duration

	Debug bool
}

// DefaultConfig returns conservative defaults: 15s timeout, 2 req/s,
// cached responses for 10 minutes.
func DefaultConfig() Config {
	return Config{
		BaseURL:        defaultBaseURL,
		RequestTimeout: 15 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		RateLimit:      rate.Limit(2),
		CacheEnabled:   true,
		CachePath:      "/tmp/snkrsearch_cache.json",
		CacheTTL:       10 * time.Minute,
	}
}

// Client is the HTTP boundary to SNKRDUNK.
type Client struct {
	config  Config
	client  *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 15 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Limit(2)
	}

	var c *cache.Cache
	if config.CacheEnabled {
		var err error
		c, err = cache.New(config.CachePath)
		if err != nil {
			// Continue without cache
			c = nil
		}
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.RequestTimeout},
		limiter: rate.NewLimiter(config.RateLimit, 1),
		cache:   c,
	}
}

func (c *Client) Available() bool {
	return true
}

func (c *Client) ProviderName() string {
	return "SNKRDUNK"
}

// getJSON fetches path with the given query parameters and decodes the
// body as JSON. Non-2xx status and non-JSON bodies are errors; network
// and decode failures never reach the extraction layer.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.config.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("snkrdunk %s: HTTP %d: %s", path, resp.StatusCode, string(body))
	}

	reader, err := c.getReader(resp)
	if err != nil {
		return nil, fmt.Errorf("creating reader: %w", err)
	}

	var decoded any
	if err := json.NewDecoder(reader).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("snkrdunk %s: decoding body: %w", path, err)
	}

	return decoded, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Referer", "https://snkrdunk.com/")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, br")
}

// getReader unwraps the response body according to Content-Encoding.
// Go's transport only decompresses gzip transparently when it set the
// header itself, and we ask for brotli too.
func (c *Client) getReader(resp *http.Response) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "br":
		return brotli.NewReader(resp.Body), nil
	default:
		return resp.Body, nil
	}
}

// cachedJSON runs fetch through the response cache under key.
func (c *Client) cachedJSON(key string, fetch func() (any, error)) (any, error) {
	if c.cache != nil {
		var data any
		if found, _ := c.cache.Get(key, &data); found {
			return data, nil
		}
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Put(key, data, c.config.CacheTTL)
	}

	return data, nil
}
