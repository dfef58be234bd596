package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is where json-server listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:3000"

const requestIDHeader = "X-Request-Id"

type Config struct {
	BaseURL string
	// Timeout of zero leaves requests bounded only by the caller's context.
	Timeout time.Duration
	// MaxRetries of zero disables retrying. Only idempotent methods retry.
	MaxRetries        int
	RequestsPerSecond float64
	UserAgent         string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return c
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, target any) error {
	return c.Do(ctx, http.MethodGet, path, nil, target)
}

func (c *Client) Post(ctx context.Context, path string, body, target any) error {
	return c.Do(ctx, http.MethodPost, path, body, target)
}

func (c *Client) Put(ctx context.Context, path string, body, target any) error {
	return c.Do(ctx, http.MethodPut, path, body, target)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do performs one JSON round trip. An empty method means GET. A nil body
// sends no payload; a nil target discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, body, target any) error {
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindEncode, Method: method, URL: url, Err: err}
		}
		payload = b
	}

	retries := c.maxRetries
	if !idempotent(method) {
		retries = 0
	}

	requestID := uuid.NewString()
	var lastErr *Error
	for i := 0; i <= retries; i++ {
		if i > 0 {
			// Backoff: 100ms, 200ms, 400ms...
			backoff := time.Duration(1<<uint(i-1)) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return &Error{Kind: KindNetwork, Method: method, URL: url, Err: ctx.Err()}
			}
			c.logger.Debug("retrying request", "method", method, "url", url, "request_id", requestID, "attempt", i, "error", lastErr)
		}

		err := c.roundTrip(ctx, method, url, requestID, payload, target)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			break
		}
	}
	return lastErr
}

func (c *Client) roundTrip(ctx context.Context, method, url, requestID string, payload []byte, target any) *Error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindNetwork, Method: method, URL: url, Err: err}
		}
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, URL: url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Error{
			Kind:       KindStatus,
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        errors.New(resp.Status),
		}
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, URL: url, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return &Error{Kind: KindDecode, Method: method, URL: url, Err: err}
	}
	return nil
}
