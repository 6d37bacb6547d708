package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "assetkit/1.0"

// Config defines client behavior. The zero value means no timeout, no
// retries and no rate limit.
type Config struct {
	Timeout   time.Duration
	Retries   int
	RateLimit float64 // requests per second, 0 = unlimited
	UserAgent string
	Headers   map[string]string
}

const (
	retryWait    = 500 * time.Millisecond
	retryMaxWait = 10 * time.Second
)

// Client wraps resty with a rate limiter
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Mu      sync.RWMutex
}

// NewClient creates an HTTP client over the pooled retryablehttp transport
func NewClient(cfg Config) *Client {
	// Only the pooled transport is borrowed, retries are resty's
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	c := &Client{Resty: resty.New()}
	c.Resty.SetTransport(retryClient.HTTPClient.Transport)

	c.SetTimeout(cfg.Timeout)
	c.SetRetry(cfg.Retries, retryWait, retryMaxWait)
	c.SetRateLimit(cfg.RateLimit)

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	c.SetHeader("User-Agent", userAgent)
	for k, v := range cfg.Headers {
		c.SetHeader(k, v)
	}
	return c
}

// SetHeader adds default header
func (c *Client) SetHeader(key, value string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetHeader(key, value)
}

// SetTimeout configures request timeout
func (c *Client) SetTimeout(duration time.Duration) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetTimeout(duration)
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, minWait, maxWait time.Duration) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetRetryCount(maxRetries).
		SetRetryWaitTime(minWait).
		SetRetryMaxWaitTime(maxWait)
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Limiter = newLimiter(rps)
}

// Request creates a new request after waiting on the rate limiter
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	c.Mu.RLock()
	limiter := c.Limiter
	c.Mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Resty.R().SetContext(ctx), nil
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
