// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the network backends.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// Retrier sends requests through an optional rate limiter and retries
// HTTP 429 (Too Many Requests) and 503 (Service Unavailable) responses.
type Retrier struct {
	Client *http.Client

	// Limiter paces every attempt, retries included. Nil means unlimited.
	Limiter *rate.Limiter

	// MaxRetries is the number of retries after the first attempt (default 5).
	MaxRetries int
}

// NewRetrier returns a Retrier allowing rps requests per second. A
// non-positive rps disables rate limiting.
func NewRetrier(client *http.Client, rps float64, maxRetries int) *Retrier {
	r := &Retrier{Client: client, MaxRetries: maxRetries}
	if rps > 0 {
		r.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return r
}

// Do executes req. The delay between attempts starts at RetryBaseDelay and
// doubles each attempt, unless the response carries a Retry-After header in
// seconds, which takes precedence.
//
// On each retryable response the body is drained and closed before waiting.
// If the context is cancelled while waiting Do returns ctx.Err(). After
// exhausting retries the last retryable response is returned as-is.
func (r *Retrier) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	for attempt := 0; ; attempt++ {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// DoWithRetry executes req without rate limiting. When maxRetries is 0 the
// default (5) is used.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	return (&Retrier{Client: client, MaxRetries: maxRetries}).Do(ctx, req)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
