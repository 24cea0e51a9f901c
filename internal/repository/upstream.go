package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/tutor-dash-api/pkg/errors"
)

// RetryPolicy controls how the upstream client reacts to failed requests.
// Retryable decides per attempt: status is the HTTP status of the response
// (0 when the request never completed), err the transport error if any.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Retryable   func(status int, err error) bool
}

// DefaultRetryPolicy retries transport failures and 5xx responses with a
// linearly growing backoff. Client errors are never retried.
func DefaultRetryPolicy(maxAttempts int, backoff time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
		Retryable: func(status int, err error) bool {
			return err != nil || status >= http.StatusInternalServerError
		},
	}
}

type fetchObserver interface {
	ObserveUpstreamFetch(endpoint string, duration time.Duration)
}

// UpstreamClient is the single HTTP door to the legacy booking API. All
// entity repositories share one instance so retry and timeout behavior
// stay uniform.
type UpstreamClient struct {
	baseURL string
	http    *http.Client
	retry   RetryPolicy
	metrics fetchObserver
	logger  *zap.Logger
}

// NewUpstreamClient constructs the client. metrics may be nil.
func NewUpstreamClient(baseURL string, timeout time.Duration, retry RetryPolicy, metrics fetchObserver, logger *zap.Logger) *UpstreamClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpstreamClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retry:   retry,
		metrics: metrics,
		logger:  logger,
	}
}

// GetJSON performs a GET against the upstream API and decodes the JSON
// response into dest, retrying per the client's policy.
func (c *UpstreamClient) GetJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	attempts := c.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveUpstreamFetch(path, time.Since(start))
		}
	}()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return appErrors.Wrap(ctx.Err(), appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "upstream request cancelled")
			case <-time.After(c.retry.Backoff * time.Duration(attempt-1)):
			}
		}

		status, err := c.do(ctx, path, query, dest)
		if err == nil {
			return nil
		}
		lastErr = err

		if c.retry.Retryable == nil || !c.retry.Retryable(status, err) {
			break
		}
		c.logger.Warn("retrying upstream request",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Int("status", status),
			zap.Error(err))
	}

	return appErrors.Wrap(lastErr, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream request failed")
}

func (c *UpstreamClient) do(ctx context.Context, path string, query url.Values, dest interface{}) (int, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}

	if dest == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response %s: %w", path, err)
	}
	return resp.StatusCode, nil
}
