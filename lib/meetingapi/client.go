package meetingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"jwmeeting-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://neri-gut.github.io/jw-scraping"

const (
	defaultTimeout   = time.Second * 10
	defaultCacheTTL  = time.Hour
	defaultUserAgent = "jwmeeting-backend/1.0"
)

type ClientOptions struct {
	// BaseUrl defaults to the hosted corpus, a trailing slash is
	// stripped
	BaseUrl string
	// Timeout applies per request, defaults to 10s
	Timeout   time.Duration
	UserAgent string
	// DisableCache makes every accessor call hit the network
	DisableCache bool
	// CacheTTL defaults to an hour
	CacheTTL time.Duration
}

// Client reads the static weekly content corpus. All accessors go
// through a url-keyed response cache, see the package tests for the
// freshness contract.
type Client struct {
	baseUrl string
	http    *resty.Client
	cache   *responseCache

	closeOnce sync.Once
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := strings.TrimRight(opts.BaseUrl, "/")
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	http := resty.New()
	http.SetTimeout(timeout)
	http.SetHeader("Accept", "application/json")
	http.SetHeader("User-Agent", userAgent)
	// a single attempt per request, retry policy belongs to callers
	http.SetRetryCount(0)
	telemetry.InstrumentResty(http, "lib/meetingapi/http")

	return &Client{
		baseUrl: baseUrl,
		http:    http,
		cache:   newResponseCache(!opts.DisableCache, ttl),
	}
}

// Close releases the transport. It is safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.http.GetClient().CloseIdleConnections()
		c.cache.Clear()
	})
}

func (c *Client) url(endpoint string) string {
	return c.baseUrl + "/" + endpoint
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	url := c.url(endpoint)
	return c.cache.GetOrFetch(url, func() ([]byte, error) {
		res, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, &RequestError{Url: url, Err: err}
		}
		if res.IsError() {
			return nil, &RequestError{Url: url, Err: &StatusError{Code: res.StatusCode()}}
		}
		return res.Body(), nil
	})
}

func getDocument[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var out T
	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(body, &out)
	if err != nil {
		return out, &RequestError{
			Url: c.url(endpoint),
			Err: fmt.Errorf("%w: %s", ErrDecode, err.Error()),
		}
	}
	return out, nil
}

// Index returns the corpus metadata document.
func (c *Client) Index(ctx context.Context) (Index, error) {
	return getDocument[Index](ctx, c, "index.json")
}

// Latest returns the most recent week's full content.
func (c *Client) Latest(ctx context.Context) (WeekDocument, error) {
	return getDocument[WeekDocument](ctx, c, "latest.json")
}

// Weeks returns the listing of every available week.
func (c *Client) Weeks(ctx context.Context) (WeekList, error) {
	return getDocument[WeekList](ctx, c, "weeks.json")
}

// Stats returns the corpus-wide statistics document.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	return getDocument[Stats](ctx, c, "stats.json")
}

// WeekData returns the full content for one week. weekNumber is
// expected in 1..53, out of range values simply request a path that
// does not exist and surface the resulting status error.
func (c *Client) WeekData(ctx context.Context, year, weekNumber int) (WeekDocument, error) {
	return getDocument[WeekDocument](ctx, c, fmt.Sprintf("data/%d/week-%02d.json", year, weekNumber))
}

// ClearCache removes every cached response regardless of age.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

func (c *Client) CacheStats() CacheStats {
	return c.cache.Stats()
}
