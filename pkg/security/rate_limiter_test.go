package security

import (
	"context"
	"testing"
	"time"
)

func TestLocalLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(time.Minute, 2)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		res, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if res.Allowed != want {
			t.Fatalf("request %d allowed = %v, want %v", i+1, res.Allowed, want)
		}
	}

	if res, _ := l.Allow(ctx, "5.6.7.8"); !res.Allowed {
		t.Error("keys must be limited independently")
	}

	now = now.Add(time.Minute)
	res, _ := l.Allow(ctx, "1.2.3.4")
	if !res.Allowed || res.Remaining != 1 {
		t.Errorf("new window: allowed=%v remaining=%d", res.Allowed, res.Remaining)
	}
}

func TestSlidingWindowResult(t *testing.T) {
	l := NewSlidingWindowLimiter(nil, time.Second, 3)
	now := time.Now()
	if r := l.result(3, now); !r.Allowed || r.Remaining != 0 {
		t.Errorf("at the limit: %+v", r)
	}
	if r := l.result(4, now); r.Allowed || r.RetryAfter != time.Second {
		t.Errorf("over the limit: %+v", r)
	}
}
