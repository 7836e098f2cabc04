package mw

import (
	"context"
	"testing"
	"time"

	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/pkg/security"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/pkg/errors"
)

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (*security.RateLimitResult, error) {
	return nil, errors.New("redis down")
}

func newServer(limiter security.Limiter) *server.Hertz {
	h := server.New()
	h.Use(Metrics(), RateLimit(limiter))
	h.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		pack.OK(c, nil, "pong")
	})
	return h
}

func TestRateLimit(t *testing.T) {
	h := newServer(security.NewLocalLimiter(time.Minute, 2))

	for i, want := range []int{200, 200, 429} {
		resp := ut.PerformRequest(h.Engine, "GET", "/ping", nil).Result()
		if resp.StatusCode() != want {
			t.Fatalf("request %d = %d, want %d", i, resp.StatusCode(), want)
		}
		if want == 429 && len(resp.Header.Peek("Retry-After")) == 0 {
			t.Error("Retry-After missing")
		}
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	h := newServer(brokenLimiter{})
	if resp := ut.PerformRequest(h.Engine, "GET", "/ping", nil).Result(); resp.StatusCode() != 200 {
		t.Errorf("status = %d", resp.StatusCode())
	}
}
