package lock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Locker serialises work per key. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// ToggleKey builds the lock key for a (subject, target) toggle.
func ToggleKey(kind, target, subject string) string {
	return strings.Join([]string{"toggle", kind, target, subject}, ":")
}

type RedisLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

func NewRedisLocker(client redis.UniversalClient, expiry time.Duration) *RedisLocker {
	return &RedisLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(32),
		redsync.WithRetryDelay(50*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "acquire lock %s failed", key)
	}
	return func() {
		if ok, err := mutex.UnlockContext(context.Background()); !ok || err != nil {
			hlog.Warnf("release lock %s failed: %v", key, err)
		}
	}, nil
}

// LocalLocker is a keyed mutex for single-instance deployments.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*entry)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	if err := ctx.Err(); err != nil {
		l.release(key, e)
		return nil, err
	}
	return func() { l.release(key, e) }, nil
}

func (l *LocalLocker) release(key string, e *entry) {
	e.mu.Unlock()
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}
