package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tf-anguskong/homelab-monitor/internal/rate"
)

// Backoff returns the retry sleep duration for the given attempt number.
func Backoff(attempt int) time.Duration {
	switch attempt {
	case 0:
		return 100 * time.Millisecond
	case 1:
		return 250 * time.Millisecond
	default:
		return 500 * time.Millisecond
	}
}

// Executor handles rate-limited, retrying HTTP execution with JSON decoding.
// Only transport failures and 5xx responses are retried; 4xx responses go
// straight to the vendor error handler.
type Executor struct {
	logger       *zap.Logger
	rateMgr      *rate.Manager
	http         *http.Client
	retryMax     int
	vendorTag    string
	errorHandler func(status int, body []byte) error
	observer     func(status int, elapsed time.Duration)
}

// New creates an Executor. errorHandler is called on 4xx failure responses to
// produce a vendor-specific error; if nil, a default error is returned.
// observer, if non-nil, is called once per completed HTTP attempt.
func New(
	logger *zap.Logger,
	rateMgr *rate.Manager,
	httpClient *http.Client,
	retryMax int,
	vendorTag string,
	errorHandler func(status int, body []byte) error,
) *Executor {
	return &Executor{
		logger:       logger,
		rateMgr:      rateMgr,
		http:         httpClient,
		retryMax:     retryMax,
		vendorTag:    vendorTag,
		errorHandler: errorHandler,
	}
}

// SetObserver installs a per-attempt observer (used for metrics).
func (e *Executor) SetObserver(fn func(status int, elapsed time.Duration)) {
	e.observer = fn
}

// DoJSON executes req with rate limiting and retries, then JSON-decodes the
// response into out. rateLimitKey scopes the rate limiter per vendor host.
func (e *Executor) DoJSON(ctx context.Context, req *http.Request, rateLimitKey string, out any) error {
	if e.rateMgr != nil {
		if err := e.rateMgr.Wait(ctx, rateLimitKey); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= e.retryMax; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return fmt.Errorf("rewind request body: %w", err)
			}
			req.Body = body
		}

		start := time.Now()
		resp, err := e.http.Do(req)
		if err != nil {
			lastErr = err
			e.logger.Warn(e.vendorTag+".http_failed",
				zap.String("url", req.URL.String()),
				zap.Error(err),
				zap.Int("attempt", attempt))
			time.Sleep(Backoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		elapsed := time.Since(start)

		if e.observer != nil {
			e.observer(resp.StatusCode, elapsed)
		}

		if resp.StatusCode >= 500 {
			e.logger.Warn(e.vendorTag+".server_error",
				zap.Int("status", resp.StatusCode),
				zap.String("url", req.URL.String()),
				zap.Duration("latency", elapsed))
			lastErr = fmt.Errorf("%s server error: %d", e.vendorTag, resp.StatusCode)
			time.Sleep(Backoff(attempt))
			continue
		}

		if resp.StatusCode >= 400 {
			if e.errorHandler != nil {
				return e.errorHandler(resp.StatusCode, body)
			}
			return fmt.Errorf("%s returned %d", e.vendorTag, resp.StatusCode)
		}

		if out != nil && len(body) > 0 {
			if err := json.Unmarshal(body, out); err != nil {
				e.logger.Warn(e.vendorTag+".decode_failed",
					zap.Error(err),
					zap.String("url", req.URL.String()))
				return fmt.Errorf("decode failed: %w", err)
			}
		}

		e.logger.Debug(e.vendorTag+".http_success",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", elapsed))

		return nil
	}

	return fmt.Errorf("%s request failed after %d attempts: %w", e.vendorTag, e.retryMax, lastErr)
}
