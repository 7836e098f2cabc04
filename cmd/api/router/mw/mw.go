package mw

import (
	"context"
	"strconv"
	"time"

	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/metrics"
	"TubeFuss.com/pkg/security"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Metrics records count and latency per route.
func Metrics() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(string(c.Method()), route, c.Response.StatusCode(), time.Since(start))
	}
}

// RateLimit 按客户端IP限流. Limiter errors let the request through.
func RateLimit(limiter security.Limiter) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		res, err := limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			hlog.CtxWarnf(ctx, "rate limiter unavailable: %v", err)
			c.Next(ctx)
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		if !res.Allowed {
			metrics.RateLimited.Inc()
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds()+0.5)))
			pack.SendError(c, errno.TooManyRequestsErr)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}
