package security

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitResult 限流结果
type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int64         `json:"remaining"`
	ResetTime  time.Time     `json:"reset_time"`
	RetryAfter time.Duration `json:"retry_after"`
}

// Limiter decides whether one more request for key fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (*RateLimitResult, error)
}

// SlidingWindowLimiter 滑动窗口限流, backed by a redis sorted set per key.
type SlidingWindowLimiter struct {
	redis       redis.UniversalClient
	window      time.Duration
	maxRequests int64
	prefix      string
}

func NewSlidingWindowLimiter(client redis.UniversalClient, window time.Duration, maxRequests int64) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		redis:       client,
		window:      window,
		maxRequests: maxRequests,
		prefix:      "ratelimit:",
	}
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	now := time.Now()
	windowStart := now.Add(-l.window)
	key = l.prefix + key

	pipe := l.redis.TxPipeline()
	// 清理过期记录
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return l.result(countCmd.Val(), now), nil
}

func (l *SlidingWindowLimiter) result(count int64, now time.Time) *RateLimitResult {
	res := &RateLimitResult{
		Allowed:   count <= l.maxRequests,
		Remaining: l.maxRequests - count,
		ResetTime: now.Add(l.window),
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = l.window
	}
	return res
}

// LocalLimiter is the in-process fixed window used when redis is not configured.
type LocalLimiter struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int64
	counters    map[string]*localWindow
	now         func() time.Time
}

type localWindow struct {
	start time.Time
	count int64
}

func NewLocalLimiter(window time.Duration, maxRequests int64) *LocalLimiter {
	return &LocalLimiter{
		window:      window,
		maxRequests: maxRequests,
		counters:    make(map[string]*localWindow),
		now:         time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (*RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.counters[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &localWindow{start: now}
		l.counters[key] = w
		l.evict(now)
	}
	w.count++

	res := &RateLimitResult{
		Allowed:   w.count <= l.maxRequests,
		Remaining: l.maxRequests - w.count,
		ResetTime: w.start.Add(l.window),
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = res.ResetTime.Sub(now)
	}
	return res, nil
}

func (l *LocalLimiter) evict(now time.Time) {
	for k, w := range l.counters {
		if now.Sub(w.start) >= l.window {
			delete(l.counters, k)
		}
	}
}
