package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/skytraxdata/airline-reviews/config"
)

// Client fetches pages from the review site. The coordinator reads every
// page twice (header pass, then review pass), so fetched bodies are kept
// in a bounded LRU cache and the second pass never touches the network.
type Client struct {
	http    *resty.Client
	cache   *lru.Cache[string, string]
	metrics *Metrics
}

// NewClient builds a fetch client configured from cfg.
func NewClient(cfg *config.Config, metrics *Metrics) (*Client, error) {
	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)

	var cache *lru.Cache[string, string]
	if cfg.CacheSize > 0 {
		var err error
		cache, err = lru.New[string, string](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create page cache: %w", err)
		}
	}

	return &Client{
		http:    httpClient,
		cache:   cache,
		metrics: metrics,
	}, nil
}

// FetchPage performs one GET and returns the body as text. Transport
// errors and non-200 statuses are propagated; there is no retry.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			c.metrics.IncCacheHit()
			return body, nil
		}
	}

	start := time.Now()
	res, err := c.http.R().SetContext(ctx).Get(url)
	c.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		c.metrics.IncRequest("error")
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		c.metrics.IncRequest("error")
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, res.StatusCode())
	}
	c.metrics.IncRequest("ok")

	body := res.String()
	if c.cache != nil {
		c.cache.Add(url, body)
	}
	return body, nil
}
