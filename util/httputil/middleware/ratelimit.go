package middleware

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ClientRateLimit throttles outgoing requests using token bucket limiter.
// Waiting honours request context, so cancelled or expired requests fail fast.
type ClientRateLimit struct {
	Limiter *rate.Limiter
}

// NewClientRateLimit returns throttling middleware allowing perSecond requests with given burst.
// Non-positive perSecond disables throttling.
func NewClientRateLimit(perSecond float64, burst int) *ClientRateLimit {
	if perSecond <= 0 {
		return &ClientRateLimit{}
	}

	if burst < 1 {
		burst = 1
	}

	return &ClientRateLimit{
		Limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Preprocess implementation, blocks until limiter permits request.
// Requests that cannot get a token before their deadline fail with context.DeadlineExceeded.
func (c *ClientRateLimit) Preprocess(req *http.Request) (*http.Request, error) {
	if c.Limiter == nil {
		return req, nil
	}

	ctx := req.Context()

	err := c.Limiter.Wait(ctx)
	if err != nil {
		if _, ok := ctx.Deadline(); ok && !errors.Is(ctx.Err(), context.Canceled) {
			return nil, errors.Wrap(context.DeadlineExceeded, err.Error())
		}

		return nil, err
	}

	return req, nil
}

// Postprocess noop
func (c *ClientRateLimit) Postprocess(resp *http.Response) (*http.Response, error) {
	return resp, nil
}
