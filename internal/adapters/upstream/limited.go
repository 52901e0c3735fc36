package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/courselight/courselight/internal/ratelimiting"
	"github.com/courselight/courselight/internal/resource"
)

// Time reserved per upstream request when deciding whether a queued
// request can still meet the caller's deadline.
const maxUpstreamRequestTime = 10 * time.Second

type callBudget interface {
	Spend(ctx context.Context, reserve time.Duration, call func()) bool
}

// limitedHTTPClient bounds the number of upstream requests within a
// sliding window so the gateway never overruns the LMS API's quota.
type limitedHTTPClient struct {
	inner  resource.HTTPClient
	budget callBudget
}

func (c *limitedHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	spent := c.budget.Spend(req.Context(), maxUpstreamRequestTime, func() {
		resp, err = c.inner.Do(req)
	})
	if !spent {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, fmt.Errorf("upstream request budget exhausted: %w", ctxErr)
		}
		return nil, fmt.Errorf("upstream request budget exhausted before deadline")
	}

	return resp, err
}

func NewLimitedHTTPClient(inner resource.HTTPClient, limit int, window time.Duration) resource.HTTPClient {
	budget := ratelimiting.NewCallBudget(
		limit,
		window,
		time.Now,
		func(d time.Duration) <-chan time.Time {
			return time.After(d)
		},
	)

	return &limitedHTTPClient{
		inner:  inner,
		budget: budget,
	}
}
