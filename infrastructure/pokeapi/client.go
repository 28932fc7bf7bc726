package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	DefaultBaseURL          = "https://pokeapi.co/api/v2"
	DefaultTimeout          = 10 * time.Second
	DefaultMaxResponseBytes = 10 << 20

	// errBodyLimit caps how much of an error response is carried into the
	// error message.
	errBodyLimit = 2048
)

// Config holds the upstream API client settings. Zero values fall back to
// the defaults above.
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	UserAgent        string
	MaxResponseBytes int64

	// Circuit breaker tuning. The breaker only counts transport failures
	// and 5xx responses; lookups that miss (404) or get throttled (429)
	// leave it closed.
	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerMinRequests      uint32
	BreakerFailureThreshold float64
}

// Client is a thin HTTP client for the PokeAPI with a circuit breaker in
// front of every request.
type Client struct {
	baseURL   string
	userAgent string
	maxBody   int64
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxBody := cfg.MaxResponseBytes
	if maxBody == 0 {
		maxBody = DefaultMaxResponseBytes
	}

	maxRequests := cfg.BreakerMaxRequests
	if maxRequests == 0 {
		maxRequests = 3
	}
	interval := cfg.BreakerInterval
	if interval == 0 {
		interval = 30 * time.Second
	}
	breakerTimeout := cfg.BreakerTimeout
	if breakerTimeout == 0 {
		breakerTimeout = 60 * time.Second
	}
	minRequests := cfg.BreakerMinRequests
	if minRequests == 0 {
		minRequests = 5
	}
	failureThreshold := cfg.BreakerFailureThreshold
	if failureThreshold == 0 {
		failureThreshold = 0.6
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "pokeapi",
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= failureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logrus.Warnf("[POKEAPI] circuit breaker %s changed from %v to %v", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var respErr *ResponseError
			if errors.As(err, &respErr) {
				return respErr.StatusCode < 500
			}
			var connErr *ConnectionError
			return !errors.As(err, &connErr)
		},
	})

	return &Client{
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		maxBody:   maxBody,
		http:      &http.Client{Timeout: timeout},
		breaker:   breaker,
	}
}

// FetchJSON requests a path relative to the API base URL and decodes the
// JSON response into out.
func (c *Client) FetchJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	body, err := c.do(ctx, target)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("pokeapi: decode response: %w", err)
	}
	return nil
}

// FetchBytes requests an absolute URL and returns the raw body. Sprites
// live on a CDN outside the API base URL, which is why this takes a full
// URL.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	return c.do(ctx, rawURL)
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, rawURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &ConnectionError{Err: err}
		}
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 400:
		return nil, &ResponseError{StatusCode: resp.StatusCode, Body: trimBody(body)}
	}
	return body, nil
}

func trimBody(body []byte) string {
	if len(body) > errBodyLimit {
		return string(body[:errBodyLimit])
	}
	return string(body)
}
